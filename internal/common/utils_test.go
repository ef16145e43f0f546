package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandByteArray(t *testing.T) {
	a := GenerateRandByteArray(16)
	b := GenerateRandByteArray(16)
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
	assert.Empty(t, GenerateRandByteArray(0))
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte("secret1")
	WipeByteArray(buf)
	assert.Equal(t, make([]byte, 7), buf)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}

func TestDayKeyAndMonthKey(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 23, 59, 0, 0, time.Local)
	assert.Equal(t, "2024-03-07", DayKey(ts))
	assert.Equal(t, "2024-03", MonthKey(ts))
}
