// Package format содержит форматирование цен и строк для витрины (локаль sk-SK).
package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	nbsp           = " "
	currencySymbol = "€"
	zeroPrice      = "0,00" + nbsp + currencySymbol
)

var hundred = decimal.NewFromInt(100)

// Price форматирует сумму как Intl.NumberFormat('sk-SK', EUR): "1 234,56 €"
// (разделители — неразрывные пробелы).
func Price(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(nbsp)
		}
		b.WriteRune(r)
	}
	b.WriteString(",")
	b.WriteString(frac)
	b.WriteString(nbsp)
	b.WriteString(currencySymbol)

	return b.String()
}

// PriceOf принимает значения из шаблонов: decimal, указатель на decimal, числа и строки.
// Всё, что не удаётся разобрать, выводится как "0,00 €".
func PriceOf(v any) string {
	switch p := v.(type) {
	case decimal.Decimal:
		return Price(p)
	case *decimal.Decimal:
		if p == nil {
			return zeroPrice
		}
		return Price(*p)
	case float64:
		if !Finite(p) {
			return zeroPrice
		}
		return Price(decimal.NewFromFloat(p))
	case float32:
		if !Finite(float64(p)) {
			return zeroPrice
		}
		return Price(decimal.NewFromFloat32(p))
	case int:
		return Price(decimal.NewFromInt(int64(p)))
	case int64:
		return Price(decimal.NewFromInt(p))
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(p))
		if err != nil {
			return zeroPrice
		}
		return Price(d)
	}
	return zeroPrice
}

// Finite сообщает, можно ли превратить число в decimal: NaN и ±Inf нельзя.
func Finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Discount — скидка в процентах: round((1 - sale/price) * 100).
// 0, если акционной цены нет или она не ниже обычной.
func Discount(price decimal.Decimal, sale *decimal.Decimal) int {
	if sale == nil || !sale.IsPositive() || !price.IsPositive() || sale.GreaterThanOrEqual(price) {
		return 0
	}

	pct := decimal.NewFromInt(1).Sub(sale.Div(price)).Mul(hundred).Round(0)
	return int(pct.IntPart())
}
