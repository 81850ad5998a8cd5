package objectid

import (
	"crypto/rand"
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// Length длина текстового представления идентификатора
const Length = 24

var (
	// ErrInvalidHex возвращается, когда строка не является 24-символьным hex-идентификатором
	ErrInvalidHex = errors.New("objectid: invalid hex identifier")
)

// ID 12-байтовый идентификатор: 4 байта unix-времени, 5 байт случайного значения процесса и 3 байта счетчика.
// Нулевое значение означает отсутствие идентификатора.
type ID [12]byte

// Nil пустой идентификатор
var Nil ID

var (
	processUnique = readProcessUnique()
	counter       = readCounterSeed()
)

// New генерирует новый идентификатор
func New() ID {
	return NewWithTime(time.Now())
}

// NewWithTime генерирует идентификатор с заданной временной меткой
func NewWithTime(t time.Time) ID {
	var id ID
	binary.BigEndian.PutUint32(id[0:4], uint32(t.Unix()))
	copy(id[4:9], processUnique[:])

	c := atomic.AddUint32(&counter, 1)
	id[9] = byte(c >> 16)
	id[10] = byte(c >> 8)
	id[11] = byte(c)

	return id
}

// Parse разбирает 24-символьное hex-представление
func Parse(s string) (ID, error) {
	if len(s) != Length {
		return Nil, fmt.Errorf("%w: %q has length %d", ErrInvalidHex, s, len(s))
	}

	var id ID
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return Nil, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	return id, nil
}

// MustParse как Parse, но паникует при ошибке. Используется для констант и в тестах.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsValid проверяет, что строка является корректным идентификатором
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Hex возвращает текстовое представление
func (id ID) Hex() string {
	return hex.EncodeToString(id[:])
}

func (id ID) String() string {
	return id.Hex()
}

// IsZero true для пустого идентификатора
func (id ID) IsZero() bool {
	return id == Nil
}

// Timestamp время создания, зашитое в идентификатор
func (id ID) Timestamp() time.Time {
	return time.Unix(int64(binary.BigEndian.Uint32(id[0:4])), 0)
}

// MarshalJSON сериализует идентификатор в hex-строку
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}

// UnmarshalJSON разбирает hex-строку
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}

	*id = parsed
	return nil
}

// Value реализует driver.Valuer: в БД хранится hex-строка
func (id ID) Value() (driver.Value, error) {
	return id.Hex(), nil
}

// Scan реализует sql.Scanner
func (id *ID) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*id = Nil
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidHex, src)
	}

	parsed, err := Parse(s)
	if err != nil {
		return err
	}

	*id = parsed
	return nil
}

func readProcessUnique() [5]byte {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Errorf("objectid: cannot initialize process unique value: %v", err))
	}
	return b
}

func readCounterSeed() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(fmt.Errorf("objectid: cannot initialize counter: %v", err))
	}
	return binary.BigEndian.Uint32(b[:])
}
