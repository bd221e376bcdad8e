// Package money работает с денежными суммами в минимальных единицах валюты (центах).
// Вся арифметика ведется в int64; десятичная строка появляется только при форматировании.
package money

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAmount возвращается при некорректной десятичной записи суммы
var ErrInvalidAmount = errors.New("money: invalid amount")

const (
	fractionDigits = 2
	unitsPerMajor  = 100
)

// ParseDecimal переводит десятичную строку в основных единицах ("500.00", "12.5", "7")
// в минимальные единицы. Больше двух знаков после точки не допускается.
func ParseDecimal(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}

	negative := false
	if s[0] == '-' || s[0] == '+' {
		negative = s[0] == '-'
		s = s[1:]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || (hasFrac && frac == "") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if len(frac) > fractionDigits {
		return 0, fmt.Errorf("%w: more than %d fraction digits in %q", ErrInvalidAmount, fractionDigits, s)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	for len(frac) < fractionDigits {
		frac += "0"
	}
	minor, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	const maxMajor = (1<<63 - 1) / unitsPerMajor
	if major > maxMajor-1 {
		return 0, fmt.Errorf("%w: %q overflows", ErrInvalidAmount, s)
	}

	total := major*unitsPerMajor + minor
	if negative {
		total = -total
	}
	return total, nil
}

// Format форматирует сумму в минимальных единицах для отображения: 50000 -> "500.00"
func Format(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/unitsPerMajor, minor%unitsPerMajor)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Amount сумма в минимальных единицах с JSON-представлением в виде десятичной строки.
// При декодировании принимается как строка ("500.00"), так и JSON-число (500.5).
type Amount int64

// MarshalJSON кодирует сумму строкой "500.00"
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(Format(int64(a)))), nil
}

// UnmarshalJSON декодирует десятичную строку или число
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		raw = unquoted
	}

	v, err := ParseDecimal(raw)
	if err != nil {
		return err
	}
	*a = Amount(v)
	return nil
}

// Minor возвращает сумму в минимальных единицах
func (a Amount) Minor() int64 {
	return int64(a)
}

func (a Amount) String() string {
	return Format(int64(a))
}
