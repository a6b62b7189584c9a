package chatbot

import (
	"regexp"
	"strings"
)

// Intent is the classified purpose of a user message. It is computed per
// message and never persisted.
type Intent int

const (
	IntentGreeting Intent = iota
	IntentSocialMedia
	IntentPaymentInfo
	IntentOrderStatus
	IntentFaqPolicy
	IntentStoreInfo
	IntentProductQuery
	IntentFallback
)

func (i Intent) String() string {
	switch i {
	case IntentGreeting:
		return "greeting"
	case IntentSocialMedia:
		return "social_media"
	case IntentPaymentInfo:
		return "payment_info"
	case IntentOrderStatus:
		return "order_status"
	case IntentFaqPolicy:
		return "faq_policy"
	case IntentStoreInfo:
		return "store_info"
	case IntentProductQuery:
		return "product_query"
	default:
		return "fallback"
	}
}

var (
	reGreeting = regexp.MustCompile(`\b(hi|hello|hey|salam|good (morning|afternoon|evening))\b`)
	reSocial   = regexp.MustCompile(`\b(social media|facebook|instagram|twitter|tiktok|youtube|connect|follow)\b`)
	rePayment  = regexp.MustCompile(`\b(payment|pay|cash on delivery|cod|card|easypaisa|jazzcash|bank transfer|installment)\b`)
	reOrder    = regexp.MustCompile(`\b(order|track|tracking|status|delivery|ship|shipping|shipped)\b`)
	reFaq      = regexp.MustCompile(`\b(policy|policies|return|refund|warranty|faq|exchange|how to|procedure|help)\b`)
	reStore    = regexp.MustCompile(`\b(address|location|where|hours|timing|open|close|contact|phone|email)\b`)
	reProduct  = regexp.MustCompile(`\b(products?|items?|devices?|models?|specs|about|details|recommend|buy|shop|appliances?|gadgets?|electronics|household)\b`)
)

// intentRules is the precedence order of the router. The order is a designed
// ranking, not alphabetical: rule vocabularies overlap ("return" belongs to
// both FaqPolicy and the catalog), so earlier rules deliberately shadow later
// ones. The product rule sits last among the specific rules because it is
// intentionally broad: any recognized product or category keyword anywhere in
// the text counts.
var intentRules = []struct {
	intent Intent
	match  func(string) bool
}{
	{IntentGreeting, reGreeting.MatchString},
	{IntentSocialMedia, reSocial.MatchString},
	{IntentPaymentInfo, rePayment.MatchString},
	{IntentOrderStatus, reOrder.MatchString},
	{IntentFaqPolicy, reFaq.MatchString},
	{IntentStoreInfo, reStore.MatchString},
	{IntentProductQuery, func(s string) bool {
		return reProduct.MatchString(s) || len(matchVocabulary(s)) > 0 || InferCategory(s) != ""
	}},
}

// Classify evaluates the ordered rule list against the lower-cased input and
// returns the first matching intent, or IntentFallback when nothing matches.
// It is a pure function: calling it twice with the same text always yields the
// same intent.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	for _, r := range intentRules {
		if r.match(lower) {
			return r.intent
		}
	}
	return IntentFallback
}
