package assistant

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var englishPrinter = message.NewPrinter(language.English)

// formatAmount renders a monetary total with comma grouping, e.g. 45000
// becomes "45,000".
func formatAmount(total decimal.Decimal) string {
	f, _ := total.Float64()
	return englishPrinter.Sprintf("%v", number.Decimal(f))
}
