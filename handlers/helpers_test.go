package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAsID(t *testing.T) {
	cases := []struct {
		in   any
		want uint
		ok   bool
	}{
		{in: float64(12), want: 12, ok: true},
		{in: "12", want: 12, ok: true},
		{in: " 12 ", want: 12, ok: true},
		{in: float64(12.5), ok: false},
		{in: float64(0), ok: false},
		{in: float64(-3), ok: false},
		{in: "abc", ok: false},
		{in: nil, ok: false},
		{in: true, ok: false},
	}
	for _, tc := range cases {
		got, ok := asID(tc.in)
		assert.Equal(t, tc.ok, ok, "asID(%v)", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "asID(%v)", tc.in)
		}
	}
}

func TestAsString(t *testing.T) {
	assert.Equal(t, "5", asString(float64(5)), "numeric section ids keep their integer form")
	assert.Equal(t, "TCS-1", asString("TCS-1"))
	assert.Equal(t, "", asString(nil))
}

func TestAsBool(t *testing.T) {
	assert.True(t, asBool(true))
	assert.True(t, asBool("true"))
	assert.False(t, asBool("false"))
	assert.False(t, asBool(nil))
	assert.False(t, asBool(float64(1)))
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2025-09-25", normalizeDate("2025-09-25"))
	assert.Equal(t, "2025-09-25", normalizeDate("2025-09-25T08:30:00.000Z"))
	assert.Equal(t, time.Now().Format("2006-01-02"), normalizeDate(""))
	assert.Equal(t, time.Now().Format("2006-01-02"), normalizeDate("   "))
}
