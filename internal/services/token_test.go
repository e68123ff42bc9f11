package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayWindow(t *testing.T) {
	// 02:30 в UTC+5:30 это еще предыдущие сутки по UTC
	ist := time.FixedZone("IST", 5*3600+1800)
	from, to := DayWindow(time.Date(2025, 12, 28, 2, 30, 0, 0, ist))

	assert.Equal(t, time.Date(2025, 12, 27, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC), to)
}

func TestFormatToken(t *testing.T) {
	day := time.Date(2025, 12, 27, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "20251227001", FormatToken(day, 1))
	assert.Equal(t, "20251227042", FormatToken(day, 42))
	assert.Equal(t, "202512271007", FormatToken(day, 1007))
}

func TestParseTokenSequence(t *testing.T) {
	testCases := []struct {
		token    string
		expected int
	}{
		{token: "20251227001", expected: 1},
		{token: "20251227015", expected: 15},
		{token: "202512271007", expected: 1007},
		{token: "20251227-7", expected: 7},
		{token: "20251227-12", expected: 12},
		{token: "42", expected: 42},
		{token: "7", expected: 7},
		{token: "", expected: 0},
		{token: "abc", expected: 0},
		{token: "20251227-x", expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.token, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseTokenSequence(tc.token))
		})
	}
}

func TestNextToken(t *testing.T) {
	assign := NextToken(time.Date(2025, 12, 27, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "20251227001", assign(nil))
	assert.Equal(t, "20251227002", assign([]string{"20251227001"}))
	assert.Equal(t, "20251227008", assign([]string{"20251227-7"}))
	assert.Equal(t, "20251227043", assign([]string{"42"}))
	assert.Equal(t, "20251227001", assign([]string{"garbage"}))
	assert.Equal(t, "20251227006", assign([]string{"20251227002", "20251227005", "20251227-3", "20251227004"}))
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2025, 12, 27, 10, 7, 3, 0, time.UTC)

	first := newOrderNumber(now)
	second := newOrderNumber(now)

	assert.Regexp(t, regexp.MustCompile(`^QS20251227100703[0-9A-F]{6}$`), first)
	assert.NotEqual(t, first, second)
}
