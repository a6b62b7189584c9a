package chatbot

import (
	"regexp"
	"strings"
)

// productVocabulary is the curated set of product terms the storefront
// actually stocks. Multi-word model names come before their generic device
// class so both can match independently ("iphone 14" and "phone" are distinct
// hits; word boundaries keep "fan" out of "fantastic").
var productVocabulary = []string{
	"iphone 14", "iphone 13", "redmi note 9", "galaxy s23", "macbook",
	"laptop", "phone", "smartphone", "mobile", "tv", "television",
	"headphone", "earbuds", "camera", "watch", "smartwatch", "tablet",
	"monitor", "router", "speaker", "keyboard", "mouse", "charger",
	"power bank", "refrigerator", "fridge", "washing machine", "microwave",
	"oven", "blender", "toaster", "vacuum cleaner", "air conditioner",
	"fan", "heater", "iron", "water purifier", "juicer", "mixer",
	"dishwasher", "dryer", "cooker", "kettle", "grill",
}

var vocabPatterns = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(productVocabulary))
	for i, kw := range productVocabulary {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `s?\b`)
	}
	return out
}()

// reFreePhrase captures a product phrase following a search verb, up to a
// price clause or sentence boundary, so product names outside the static
// vocabulary still reach the catalog query.
var reFreePhrase = regexp.MustCompile(
	`(?:show me|show|find me|find|looking for|search for|searching for|do you have|i want|i need)\s+` +
		`(?:(?:a|an|some|the)\s+)?` +
		`([a-z0-9][a-z0-9 \-]*?)` +
		`(?:\s+(?:under|over|below|above|between|for|less than|more than|around|within)\b|[?.!,]|$)`)

func matchVocabulary(lower string) []string {
	var out []string
	for i, re := range vocabPatterns {
		if re.MatchString(lower) {
			out = append(out, productVocabulary[i])
		}
	}
	return out
}

// ExtractKeywords returns the product terms recognized in the text,
// deduplicated, plus at most one free-form phrase captured after a search
// verb. The result is never nil; an empty slice means nothing matched.
func ExtractKeywords(text string) []string {
	lower := strings.ToLower(text)
	keywords := matchVocabulary(lower)

	if m := reFreePhrase.FindStringSubmatch(lower); m != nil {
		phrase := strings.TrimSpace(m[1])
		if len(phrase) >= 3 && !containsTerm(keywords, phrase) {
			keywords = append(keywords, phrase)
		}
	}

	if keywords == nil {
		return []string{}
	}
	return keywords
}

func containsTerm(terms []string, candidate string) bool {
	for _, t := range terms {
		if t == candidate || strings.Contains(candidate, t) {
			return true
		}
	}
	return false
}

// categoryKeywords maps device vocabulary to the store's three catalog
// categories. Enumeration order is fixed: when a message mentions keywords
// from more than one category, the first matching category wins — categories
// are never combined.
var categoryKeywords = []struct {
	name  string
	words []string
}{
	{"Electronics", []string{
		"laptop", "macbook", "tv", "television", "monitor", "camera",
		"refrigerator", "fridge", "washing machine", "microwave", "oven",
		"air conditioner", "dishwasher", "dryer", "heater",
	}},
	{"Gadgets", []string{
		"phone", "smartphone", "mobile", "iphone", "redmi", "galaxy",
		"tablet", "watch", "smartwatch", "router", "speaker", "drone",
	}},
	{"Accessories", []string{
		"headphone", "earbuds", "charger", "power bank", "keyboard",
		"mouse", "cable", "cover", "case", "adapter",
	}},
}

var categoryPatterns = func() [][]*regexp.Regexp {
	out := make([][]*regexp.Regexp, len(categoryKeywords))
	for i, cat := range categoryKeywords {
		out[i] = make([]*regexp.Regexp, len(cat.words))
		for j, w := range cat.words {
			out[i][j] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `s?\b`)
		}
	}
	return out
}()

// InferCategory maps the text to exactly one catalog category, or "" when no
// category keyword appears.
func InferCategory(text string) string {
	lower := strings.ToLower(text)
	for i, cat := range categoryKeywords {
		for _, re := range categoryPatterns[i] {
			if re.MatchString(lower) {
				return cat.name
			}
		}
	}
	return ""
}
