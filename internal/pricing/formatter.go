package pricing

import (
	"strconv"
	"strings"
)

// FormatPrice normalizes any price-bearing string into the canonical
// "RM X,XXX.XX" display form. Strings with no parseable number pass
// through unchanged so that free-text prices like "Contact us" survive
// display untouched. Formatting is idempotent.
func FormatPrice(price string) string {
	stripped := stripNonNumeric(price)
	if stripped == "" {
		return price
	}

	amount, ok := leadingDecimal(stripped)
	if !ok {
		return price
	}

	return "RM " + groupThousands(strconv.FormatFloat(amount, 'f', 2, 64))
}

// AmountOf extracts the numeric magnitude from a price string the same
// way totaling does: strip everything but digits and dots, then parse.
// Unparseable input contributes zero.
func AmountOf(price string) float64 {
	amount, ok := leadingDecimal(stripNonNumeric(price))
	if !ok {
		return 0
	}
	return amount
}

func stripNonNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// leadingDecimal parses the longest leading decimal number of s,
// tolerating trailing junk such as a second dot from "RM 1.500.00".
func leadingDecimal(s string) (float64, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end < len(s) && s[end] == '.' {
		frac := end + 1
		for frac < len(s) && s[frac] >= '0' && s[frac] <= '9' {
			frac++
		}
		if frac > end+1 || end > 0 {
			end = frac
		}
	}
	if end == 0 {
		return 0, false
	}

	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// groupThousands inserts "," separators into the integer part of a
// number already formatted with exactly two fraction digits.
func groupThousands(formatted string) string {
	dot := strings.IndexByte(formatted, '.')
	intPart, fracPart := formatted[:dot], formatted[dot:]

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	b.WriteString(fracPart)
	return b.String()
}
