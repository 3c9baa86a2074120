package domain

import "github.com/shopspring/decimal"

func init() {
	// Бэкенд отдаёт и принимает цены числами, а не строками.
	decimal.MarshalJSONWithoutQuotes = true
}

// Money — денежная сумма в валюте магазина.
type Money = decimal.Decimal

const DefaultCurrency = "EUR"
