package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/stretchr/testify/assert"
)

func TestToRetryOptionsStopsAfterAttempts(t *testing.T) {
	cfg := RetryConfig{Attempts: 3, Delay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	calls := 0
	err := retry.Do(func() error {
		calls++
		return errors.New("connection refused")
	}, cfg.ToRetryOptions()...)

	assert.Error(t, err)
	assert.Equal(t, "connection refused", err.Error())
	assert.Equal(t, 3, calls)
}

func TestToRetryOptionsReturnsOnSuccess(t *testing.T) {
	cfg := RetryConfig{Attempts: 5, Delay: time.Millisecond, MaxDelay: time.Millisecond}

	calls := 0
	err := retry.Do(func() error {
		calls++
		if calls < 2 {
			return errors.New("not yet")
		}
		return nil
	}, cfg.ToRetryOptions()...)

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	assert.Equal(t, uint(defaultAttempts), cfg.Attempts)
	assert.LessOrEqual(t, cfg.Delay, cfg.MaxDelay)
}
