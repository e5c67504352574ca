package entity

import (
	"strconv"
	"strings"
	"time"
)

// Months - канонические названия месяцев, в которых хранятся вопросы и результаты
var Months = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ParseMonth принимает название месяца в любом регистре или номер 1..12
// и возвращает каноническое название.
func ParseMonth(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return MonthFromNumber(n)
	}
	for _, m := range Months {
		if strings.EqualFold(m, s) {
			return m, true
		}
	}
	return "", false
}

// MonthFromNumber возвращает название месяца по номеру (1 = January)
func MonthFromNumber(n int) (string, bool) {
	if n < 1 || n > 12 {
		return "", false
	}
	return Months[n-1], true
}

// IsValidMonth проверяет, что строка - каноническое название месяца
func IsValidMonth(s string) bool {
	for _, m := range Months {
		if m == s {
			return true
		}
	}
	return false
}

// MonthNumber возвращает номер месяца (1..12) или 0 для неизвестного названия
func MonthNumber(s string) int {
	for i, m := range Months {
		if m == s {
			return i + 1
		}
	}
	return 0
}

// CurrentPeriod возвращает месяц и год для момента t
func CurrentPeriod(t time.Time) (string, int) {
	return t.Month().String(), t.Year()
}
