// Package format renders backend values for display. Missing values render
// as NotAvailable.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const NotAvailable = "N/A"

var printer = message.NewPrinter(language.AmericanEnglish)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// Number groups thousands and keeps at most two decimals: 1234567.5 -> "1,234,567.5".
func Number(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return grouped(*v)
}

func grouped(v float64) string {
	s := printer.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Currency formats an amount in the given ISO currency (USD when empty):
// 5000 -> "$5,000", -12.5 -> "-$12.5".
func Currency(v *float64, code string) string {
	if v == nil {
		return NotAvailable
	}
	if code == "" {
		code = "USD"
	}
	symbol, ok := currencySymbols[strings.ToUpper(code)]
	if !ok {
		symbol = strings.ToUpper(code) + " "
	}

	sign := ""
	if *v < 0 {
		sign = "-"
	}
	return sign + symbol + grouped(math.Abs(*v))
}

// Percentage renders v as given, e.g. 12.5 -> "12.5%".
func Percentage(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + "%"
}

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime accepts the timestamp forms the backend emits, with or without a
// zone. Zone-less values are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// Date renders "Mar 5, 2025".
func Date(s string) string {
	t, err := ParseTime(s)
	if err != nil {
		return NotAvailable
	}
	return t.Format("Jan 2, 2006")
}

// DateTime renders "Mar 5, 2025, 06:30 PM".
func DateTime(s string) string {
	t, err := ParseTime(s)
	if err != nil {
		return NotAvailable
	}
	return t.Format("Jan 2, 2006, 03:04 PM")
}

// RelativeTime describes how long before now s was, in whole days:
// "Today", "Yesterday", "3 days ago", "2 weeks ago", "4 months ago", "1 years ago".
func RelativeTime(s string, now time.Time) string {
	t, err := ParseTime(s)
	if err != nil {
		return NotAvailable
	}

	days := int(math.Floor(now.Sub(t).Hours() / 24))
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	case days < 365:
		return fmt.Sprintf("%d months ago", days/30)
	default:
		return fmt.Sprintf("%d years ago", days/365)
	}
}

// Truncate shortens s to at most max runes followed by "...".
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:max])) + "..."
}
