package pricing

import (
	"regexp"
	"strconv"
	"strings"

	"exhibit/storefront/internal/domain"
)

// Pattern identifies which price-string grammar matched. Patterns are
// tried in declaration order and the first match wins, so the matching
// priority is an explicit contract rather than an accident of regex
// ordering.
type Pattern int

const (
	Unrecognized Pattern = iota
	TwoTierSided         // "RM 300 (Single) / RM 400 (Double sided)"
	TwoTierPrint         // "RM 400 (Frame only) / RM 500 (inc. print)"
	SingleTier           // first "RM <amount>" anywhere in the string
)

func (p Pattern) String() string {
	switch p {
	case TwoTierSided:
		return "TwoTierSided"
	case TwoTierPrint:
		return "TwoTierPrint"
	case SingleTier:
		return "SingleTier"
	default:
		return "Unrecognized"
	}
}

// Option labels emitted by ParseOptions. The first option of a pattern
// is the storefront's "from" price.
const (
	LabelSingleSided = "Single Sided"
	LabelDoubleSided = "Double Sided"
	LabelFrameOnly   = "Frame Only"
	LabelWithPrint   = "With Print"
	LabelStandard    = "Standard"
)

// amountPattern: digits with optional "," thousands separators at
// 3-digit boundaries and an optional 2-digit fraction.
const amountPattern = `((?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d{2})?)`

var (
	sidedRegexp  = regexp.MustCompile(`(?i)RM\s*` + amountPattern + `\s*\(Single\)\s*/\s*RM\s*` + amountPattern + `\s*\(Double sided\)`)
	printRegexp  = regexp.MustCompile(`(?i)RM\s*` + amountPattern + `\s*\(Frame only\)\s*/\s*RM\s*` + amountPattern + `\s*\(inc\.\s*print\)`)
	singleRegexp = regexp.MustCompile(`RM\s*` + amountPattern)
)

// Classify reports which grammar a catalog price string conforms to.
func Classify(price string) Pattern {
	switch {
	case sidedRegexp.MatchString(price):
		return TwoTierSided
	case printRegexp.MatchString(price):
		return TwoTierPrint
	case singleRegexp.MatchString(price):
		return SingleTier
	default:
		return Unrecognized
	}
}

// ParseOptions derives the selectable price options from a catalog
// price string. Unrecognized strings yield an empty result, never an
// error; callers fall back to displaying the raw string.
func ParseOptions(price string) []domain.PriceOption {
	switch Classify(price) {
	case TwoTierSided:
		m := sidedRegexp.FindStringSubmatch(price)
		return []domain.PriceOption{
			option(LabelSingleSided, m[1]),
			option(LabelDoubleSided, m[2]),
		}
	case TwoTierPrint:
		m := printRegexp.FindStringSubmatch(price)
		return []domain.PriceOption{
			option(LabelFrameOnly, m[1]),
			option(LabelWithPrint, m[2]),
		}
	case SingleTier:
		m := singleRegexp.FindStringSubmatch(price)
		return []domain.PriceOption{option(LabelStandard, m[1])}
	default:
		return nil
	}
}

func option(label, amount string) domain.PriceOption {
	plain := strings.ReplaceAll(amount, ",", "")
	value, _ := strconv.ParseFloat(plain, 64)
	return domain.PriceOption{
		Label:        label,
		Value:        FormatPrice("RM " + plain),
		NumericValue: value,
	}
}
