package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Renal37/quickserve/internal/database"
	"github.com/google/uuid"
)

const tokenDateLayout = "20060102"

// DayWindow возвращает границы суток UTC [00:00, следующие 00:00), в которые попадает now.
func DayWindow(now time.Time) (time.Time, time.Time) {
	utc := now.UTC()
	start := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// FormatToken собирает токен вида YYYYMMDD + номер, дополненный нулями до трех цифр.
func FormatToken(day time.Time, sequence int) string {
	return fmt.Sprintf("%s%03d", day.UTC().Format(tokenDateLayout), sequence)
}

// ParseTokenSequence извлекает порядковый номер из токена. Поддерживаются
// текущий формат YYYYMMDDNNN, старый формат YYYYMMDD-N и просто число.
// Нераспознанный токен дает 0.
func ParseTokenSequence(token string) int {
	token = strings.TrimSpace(token)

	if len(token) > len(tokenDateLayout)+2 && isDigits(token) {
		if seq, err := strconv.Atoi(token[len(tokenDateLayout):]); err == nil {
			return seq
		}
	}

	if i := strings.LastIndex(token, "-"); i >= 0 {
		if seq, err := strconv.Atoi(token[i+1:]); err == nil && seq >= 0 {
			return seq
		}
		return 0
	}

	if isDigits(token) {
		if seq, err := strconv.Atoi(token); err == nil {
			return seq
		}
	}

	return 0
}

// NextToken возвращает функцию назначения токена для суток day.
// Следующий номер считается от наибольшего номера за сутки, время размещения
// заказов не учитывается: заказ с более ранним placed_at может быть сохранен позже.
func NextToken(day time.Time) database.TokenAssigner {
	return func(dayTokens []string) string {
		highest := 0
		for _, token := range dayTokens {
			if seq := ParseTokenSequence(token); seq > highest {
				highest = seq
			}
		}
		return FormatToken(day, highest+1)
	}
}

// newOrderNumber глобально уникальный номер заказа: QS + время + случайный суффикс.
func newOrderNumber(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return "QS" + now.UTC().Format("20060102150405") + strings.ToUpper(suffix)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
