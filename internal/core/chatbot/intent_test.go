package chatbot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Intent
	}{
		{"greeting", "Hi there!", IntentGreeting},
		{"greeting salam", "salam, kya haal hai", IntentGreeting},
		{"social media", "follow us on instagram?", IntentSocialMedia},
		{"payment", "what payment methods do you accept", IntentPaymentInfo},
		{"payment cod", "can I pay cash on delivery", IntentPaymentInfo},
		{"order status", "where is my order ORD12345", IntentOrderStatus},
		{"tracking", "tracking for my parcel please", IntentOrderStatus},
		{"faq policy", "what is your return policy", IntentFaqPolicy},
		{"warranty", "does the warranty cover water damage", IntentFaqPolicy},
		{"store info", "where are you located", IntentStoreInfo},
		{"store hours", "what are your opening hours", IntentStoreInfo},
		{"product keyword", "do you have a laptop under 100k", IntentProductQuery},
		{"product verb", "can you recommend something nice", IntentProductQuery},
		{"category only", "any good gadgets?", IntentProductQuery},
		{"fallback", "tell me a joke", IntentFallback},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Classify(tc.text))
		})
	}
}

func TestClassifyPrecedence(t *testing.T) {
	// Vocabularies overlap; earlier rules must shadow later ones.
	require.Equal(t, IntentGreeting, Classify("hello, what is your return policy"))
	require.Equal(t, IntentOrderStatus, Classify("where is my order"))
	require.Equal(t, IntentFaqPolicy, Classify("return policy for phones"))
	require.Equal(t, IntentPaymentInfo, Classify("card payment for a laptop"))
}

func TestClassifyIsDeterministic(t *testing.T) {
	const msg = "show me a phone between 20k and 50k"
	first := Classify(msg)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Classify(msg))
	}
}
