package calculator

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var inr = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders amount in whole rupees with Indian digit grouping,
// e.g. ₹47,333.
func FormatINR(amount float64) string {
	return inr.Sprintf("₹%d", int64(math.Round(amount)))
}

// Formatted is a Breakdown rendered for display.
type Formatted struct {
	Transportation string `json:"transportation"`
	Accommodation  string `json:"accommodation"`
	Food           string `json:"food"`
	Activities     string `json:"activities"`
	Miscellaneous  string `json:"miscellaneous"`
	Total          string `json:"total"`
	PerPerson      string `json:"perPerson"`
}

// Format renders every amount of b with FormatINR.
func Format(b Breakdown) Formatted {
	return Formatted{
		Transportation: FormatINR(b.Transportation),
		Accommodation:  FormatINR(b.Accommodation),
		Food:           FormatINR(b.Food),
		Activities:     FormatINR(b.Activities),
		Miscellaneous:  FormatINR(b.Miscellaneous),
		Total:          FormatINR(b.Total),
		PerPerson:      FormatINR(b.PerPerson),
	}
}
