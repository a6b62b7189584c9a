package chatbot

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/electronix/assistant/internal/models"
)

// Price extraction works on lower-cased text with "k" amounts already
// expanded, so "under 50k" and "under 50000" hit the same pattern. Amounts are
// whole rupees; thousands separators are stripped before parsing.
var (
	reKiloAmount = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*k\b`)
	reUnder      = regexp.MustCompile(`(?:under|below|less than)\s+(?:rs\.?\s*)?(\d[\d,]*)`)
	reOver       = regexp.MustCompile(`(?:over|above|more than)\s+(?:rs\.?\s*)?(\d[\d,]*)`)
	reBetween    = regexp.MustCompile(`between\s+(?:rs\.?\s*)?(\d[\d,]*)\s+and\s+(?:rs\.?\s*)?(\d[\d,]*)`)
	reSpan       = regexp.MustCompile(`(?:rs\.?\s*)?(\d[\d,]*)\s*to\s*(?:rs\.?\s*)?(\d[\d,]*)`)
	reExact      = regexp.MustCompile(`rs\.?\s*(\d[\d,]*)`)
)

// ExtractPriceRange pulls a price constraint out of free text. Patterns are
// tried in a fixed order and the first match wins; nil means no price clause
// was found (callers must not substitute a numeric zero). The extractor does
// not reorder an inverted "between 5000 and 1000" — downstream queries treat
// such a range as matching nothing.
func ExtractPriceRange(text string) *models.PriceRange {
	t := expandKiloAmounts(strings.ToLower(text))

	if m := reUnder.FindStringSubmatch(t); m != nil {
		max := parseAmount(m[1])
		return &models.PriceRange{Max: &max}
	}
	if m := reOver.FindStringSubmatch(t); m != nil {
		min := parseAmount(m[1])
		return &models.PriceRange{Min: &min}
	}
	if m := reBetween.FindStringSubmatch(t); m != nil {
		min, max := parseAmount(m[1]), parseAmount(m[2])
		return &models.PriceRange{Min: &min, Max: &max}
	}
	if m := reSpan.FindStringSubmatch(t); m != nil {
		min, max := parseAmount(m[1]), parseAmount(m[2])
		return &models.PriceRange{Min: &min, Max: &max}
	}
	if m := reExact.FindStringSubmatch(t); m != nil {
		exact := parseAmount(m[1])
		return &models.PriceRange{Min: &exact, Max: &exact}
	}
	return nil
}

// expandKiloAmounts rewrites "50k" / "50 k" / "1.5k" to full rupee amounts
// before any price pattern runs.
func expandKiloAmounts(t string) string {
	return reKiloAmount.ReplaceAllStringFunc(t, func(m string) string {
		sub := reKiloAmount.FindStringSubmatch(m)
		f, err := strconv.ParseFloat(sub[1], 64)
		if err != nil {
			return m
		}
		return strconv.Itoa(int(f * 1000))
	})
}

func parseAmount(s string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	return n
}
