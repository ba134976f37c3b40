package expiry

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"fruteria/internal/models"
)

var mxPrinter = message.NewPrinter(language.MustParse("es-MX"))

// FormatDate renders a date as DD/MM/YYYY.
func FormatDate(d models.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("02/01/2006")
}

// FormatCurrency renders an amount in Mexican pesos, e.g. "$1,234.50" or
// "-$35.50". Whole pesos are grouped by the es-MX printer and centavos are
// taken from the decimal itself, so no digit passes through a float.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	pesos := rounded.Truncate(0)
	centavos := rounded.Sub(pesos).Shift(2).IntPart()
	symbol := mxPrinter.Sprint(currency.Symbol(currency.MXN))

	return fmt.Sprintf("%s%s%s.%02d", sign, symbol, mxPrinter.Sprint(number.Decimal(pesos.IntPart())), centavos)
}
