package output

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as USD with grouping and 2 decimals.
func FormatCurrency(amount decimal.Decimal) string {
	cur := money.GetCurrency(money.USD)
	places := int32(cur.Fraction)
	minor := amount.Round(places).Mul(decimal.New(1, places)).IntPart()
	return money.New(minor, money.USD).Display()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }
