package tools

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// PathExists проверяет существует ли путь
func PathExists(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	}
	return true
}

// FirstNonEmpty возвращает первую непустую строку
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ParseOptionalDecimal разбирает десятичное число; пустая строка дает nil
func ParseOptionalDecimal(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return &d, nil
}
