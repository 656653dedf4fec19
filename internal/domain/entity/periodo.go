package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/cfdi-visor/internal/domain"
)

// PeriodKey construye la clave YYYY-MM. ok es false si falta el año o el mes.
func PeriodKey(year, month int) (key string, ok bool) {
	if year <= 0 || month <= 0 {
		return "", false
	}
	return fmt.Sprintf("%d-%02d", year, month), true
}

// periodKeyPtr variante para campos anulables del backend.
func periodKeyPtr(year, month *int) (string, bool) {
	if year == nil || month == nil {
		return "", false
	}
	return PeriodKey(*year, *month)
}

// ParsePeriod separa una clave YYYY-MM en año y mes.
func ParsePeriod(key string) (year, month int, err error) {
	y, m, found := strings.Cut(strings.TrimSpace(key), "-")
	if !found {
		return 0, 0, fmt.Errorf("periodo %q: %w", key, domain.ErrInvalidInput)
	}
	year, err = strconv.Atoi(y)
	if err != nil || year <= 0 {
		return 0, 0, fmt.Errorf("periodo %q: %w", key, domain.ErrInvalidInput)
	}
	month, err = strconv.Atoi(m)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("periodo %q: %w", key, domain.ErrInvalidInput)
	}
	return year, month, nil
}

// NormalizePeriod valida key y la devuelve como YYYY-MM ("2024-3" → "2024-03").
func NormalizePeriod(key string) (string, error) {
	y, m, err := ParsePeriod(key)
	if err != nil {
		return "", err
	}
	k, _ := PeriodKey(y, m)
	return k, nil
}
