package services

import "github.com/shopspring/decimal"

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
