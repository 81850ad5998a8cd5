package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidPhone(t *testing.T) {
	for _, phone := range []string{"11999999999", "+55 (11) 99999-9999", "1234.5678"} {
		assert.True(t, IsValidPhone(phone), phone)
	}
	for _, phone := range []string{"", "1234567", "1234567890123456", "11-9999-abcd", "١٢٣٤٥٦٧٨"} {
		assert.False(t, IsValidPhone(phone), phone)
	}
}

func TestParseDateTime(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)

	local, err := ParseDateTime("2024-06-10T09:00", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 9, 0, 0, 0, loc), local)

	withSeconds, err := ParseDateTime(" 2024-06-10T09:00:00 ", loc)
	require.NoError(t, err)
	assert.True(t, withSeconds.Equal(local))

	zoned, err := ParseDateTime("2024-06-10T12:00:00Z", loc)
	require.NoError(t, err)
	assert.True(t, zoned.Equal(local))

	_, err = ParseDateTime("10/06/2024 09:00", loc)
	assert.ErrorIs(t, err, ErrInvalidDateTime)
}
