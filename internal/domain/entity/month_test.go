package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"March", "March", true},
		{"march", "March", true},
		{" DECEMBER ", "December", true},
		{"1", "January", true},
		{"12", "December", true},
		{"0", "", false},
		{"13", "", false},
		{"Mar", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseMonth(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonthHelpers(t *testing.T) {
	assert.True(t, IsValidMonth("July"))
	assert.False(t, IsValidMonth("july"), "Хранится только каноническое написание")
	assert.Equal(t, 7, MonthNumber("July"))
	assert.Equal(t, 0, MonthNumber("Julember"))

	name, ok := MonthFromNumber(2)
	assert.True(t, ok)
	assert.Equal(t, "February", name)

	month, year := CurrentPeriod(time.Date(2024, time.October, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "October", month)
	assert.Equal(t, 2024, year)
}
