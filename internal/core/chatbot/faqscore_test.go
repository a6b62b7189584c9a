package chatbot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/electronix/assistant/internal/models"
)

var testFaqs = []models.Faq{
	{ID: "f1", Question: "What is the return policy?", Answer: "14-day returns on unopened items."},
	{ID: "f2", Question: "How do I get a refund?", Answer: "Refunds are issued within 5 business days."},
	{ID: "f3", Question: "How long does shipping take?", Answer: "2-4 business days nationwide."},
	{ID: "f4", Question: "Do products come with a warranty?", Answer: "One year official warranty."},
}

func TestScoreFaqsRanking(t *testing.T) {
	scored := ScoreFaqs(testFaqs, "what is your return policy")

	require.NotEmpty(t, scored)
	require.Equal(t, "f1", scored[0].ID)
	for i := 1; i < len(scored); i++ {
		require.LessOrEqual(t, scored[i].Score, scored[i-1].Score)
	}
	// Shipping shares no terms with the message and must be filtered out.
	for _, s := range scored {
		require.NotEqual(t, "f3", s.ID)
	}
}

func TestScoreFaqsPriorityBoost(t *testing.T) {
	scored := ScoreFaqs(testFaqs, "i want a refund for my broken blender")

	require.NotEmpty(t, scored)
	require.Equal(t, "f2", scored[0].ID)
	require.GreaterOrEqual(t, scored[0].Score, priorityBoost)
}

func TestScoreFaqsUnrelatedMessageYieldsNothing(t *testing.T) {
	require.Empty(t, ScoreFaqs(testFaqs, "tell me something nice"))
	require.Empty(t, ScoreFaqs(nil, "return policy"))
}

func TestScoreFaqsStableTies(t *testing.T) {
	faqs := []models.Faq{
		{ID: "a", Question: "Can I exchange an item?"},
		{ID: "b", Question: "Can I exchange a gift?"},
	}
	scored := ScoreFaqs(faqs, "exchange")
	require.Len(t, scored, 2)
	require.Equal(t, scored[0].Score, scored[1].Score)
	require.Equal(t, "a", scored[0].ID)
	require.Equal(t, "b", scored[1].ID)
}
