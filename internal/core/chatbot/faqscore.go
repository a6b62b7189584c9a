package chatbot

import (
	"sort"
	"strings"

	"github.com/electronix/assistant/internal/models"
)

// Scoring constants. Deliberately crude and explainable: tunable additive
// weights over term overlap, so the assistant's FAQ ranking stays auditable
// without a trained ranker.
const (
	faqScoreThreshold = 5
	priorityBoost     = 15
	substringBonus    = 10
	wordBonus         = 3
	minScoredWordLen  = 4
)

// priorityTerms get a heavy boost: return-policy questions must outrank
// generic term overlap.
var priorityTerms = []string{"return", "refund", "exchange", "policy", "warranty", "replacement"}

// ScoredFaq is a FAQ entry with its relevance score for one message. It only
// lives for the duration of reply construction.
type ScoredFaq struct {
	models.Faq
	Score int
}

// ScoreFaqs ranks the FAQ list against the message. The result is sorted by
// descending score and filtered to entries scoring above the threshold; ties
// keep the original FAQ order (stable sort). An unrelated message yields an
// empty slice, never an error.
func ScoreFaqs(faqs []models.Faq, message string) []ScoredFaq {
	msg := strings.ToLower(message)
	words := strings.Fields(msg)

	msgHasPriority := false
	for _, term := range priorityTerms {
		if strings.Contains(msg, term) {
			msgHasPriority = true
			break
		}
	}

	var scored []ScoredFaq
	for _, faq := range faqs {
		q := strings.ToLower(faq.Question)
		score := 0

		if msgHasPriority {
			for _, term := range priorityTerms {
				if strings.Contains(q, term) {
					score += priorityBoost
					break
				}
			}
		}

		// Mutual substring catches paraphrase in either direction.
		if strings.Contains(q, msg) || strings.Contains(msg, q) {
			score += substringBonus
		}

		for _, w := range words {
			if len(w) >= minScoredWordLen && strings.Contains(q, w) {
				score += wordBonus
			}
		}

		if score > faqScoreThreshold {
			scored = append(scored, ScoredFaq{Faq: faq, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
