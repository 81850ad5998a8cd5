package lock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWaitDeadline(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		wait    time.Duration
		at      time.Duration
		expired bool
	}{
		{name: "zero wait never expires", wait: 0, at: time.Hour, expired: false},
		{name: "negative wait never expires", wait: -time.Second, at: time.Hour, expired: false},
		{name: "before deadline", wait: time.Second, at: 500 * time.Millisecond, expired: false},
		{name: "at deadline", wait: time.Second, at: time.Second, expired: true},
		{name: "after deadline", wait: time.Second, at: 2 * time.Second, expired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deadline := waitDeadline(now, tt.wait)
			assert.Equal(t, tt.expired, waitExpired(deadline, now.Add(tt.at)))
		})
	}
}
