package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "3d 0h 30m 15s", FormatUptime("72h30m15s"))
	assert.Equal(t, "2h 5m 0s", FormatUptime("2h5m"))
	assert.Equal(t, "4m 20s", FormatUptime("4m20s"))
	assert.Equal(t, "9s", FormatUptime("9s"))
}

func TestFormatUptimeUnparseable(t *testing.T) {
	assert.Equal(t, "not-a-duration", FormatUptime("not-a-duration"))
}

func TestFormatTimeUnparseable(t *testing.T) {
	assert.Equal(t, "yesterday", FormatTime("yesterday"))
}
