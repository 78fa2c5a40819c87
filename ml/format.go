package ml

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders v as dollars with thousands grouping, e.g. $1,234.50.
func FormatCurrency(v float64) string {
	return currencyPrinter.Sprintf("$%.2f", v)
}

// Insight is the sentence shown under an estimate.
func Insight(record FeatureRecord, revenue float64) string {
	return currencyPrinter.Sprintf(
		"With %d customers per day and an average order value of %s, your estimated daily revenue is %s.",
		record.CustomersPerDay, FormatCurrency(record.AvgOrderValue), FormatCurrency(revenue))
}
