package chatbot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/electronix/assistant/internal/models"
)

type stubCatalog struct {
	products  []models.Product
	popular   []models.Product
	err       error
	gotFilter models.ProductFilter
}

func (s *stubCatalog) FindProducts(ctx context.Context, f models.ProductFilter, limit int) ([]models.Product, error) {
	s.gotFilter = f
	return s.products, s.err
}

func (s *stubCatalog) FindPopular(ctx context.Context, limit int) ([]models.Product, error) {
	return s.popular, nil
}

type stubFaqs struct {
	faqs []models.Faq
	err  error
}

func (s *stubFaqs) ListFaqs(ctx context.Context) ([]models.Faq, error) { return s.faqs, s.err }

type stubSocial struct {
	links []models.SocialLink
	err   error
}

func (s *stubSocial) ListSocialLinks(ctx context.Context) ([]models.SocialLink, error) {
	return s.links, s.err
}

type stubOrders struct {
	order *models.Order
	err   error
}

func (s *stubOrders) FindOrderByID(ctx context.Context, userID, orderID string) (*models.Order, error) {
	return s.order, s.err
}

type stubHistory struct {
	recent    []models.ChatExchange
	appendErr error
	appended  []*models.ChatExchange
}

func (s *stubHistory) AppendExchange(ctx context.Context, e *models.ChatExchange) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.appended = append(s.appended, e)
	return nil
}

func (s *stubHistory) ListRecentExchanges(ctx context.Context, userID string, n int) ([]models.ChatExchange, error) {
	return s.recent, nil
}

type stubLLM struct {
	reply     string
	err       error
	gotPrompt string
}

func (s *stubLLM) Complete(ctx context.Context, prompt string) (string, error) {
	s.gotPrompt = prompt
	return s.reply, s.err
}

type engineFixture struct {
	catalog *stubCatalog
	faqs    *stubFaqs
	social  *stubSocial
	orders  *stubOrders
	history *stubHistory
	llm     *stubLLM
	engine  *Engine
}

func newFixture(t *testing.T) *engineFixture {
	t.Helper()
	f := &engineFixture{
		catalog: &stubCatalog{},
		faqs:    &stubFaqs{},
		social:  &stubSocial{},
		orders:  &stubOrders{},
		history: &stubHistory{},
		llm:     &stubLLM{},
	}
	engine, err := NewEngine(f.catalog, f.faqs, f.social, f.orders, f.history, f.llm, Config{
		StoreBaseURL: "https://shop.test",
		LLMTimeout:   time.Second,
		Logger:       zerolog.Nop(),
	})
	require.NoError(t, err)
	f.engine = engine
	return f
}

func TestNewEngineRejectsNilCollaborators(t *testing.T) {
	_, err := NewEngine(nil, &stubFaqs{}, &stubSocial{}, &stubOrders{}, &stubHistory{}, &stubLLM{}, Config{})
	require.Error(t, err)

	_, err = NewEngine(&stubCatalog{}, &stubFaqs{}, &stubSocial{}, &stubOrders{}, &stubHistory{}, nil, Config{})
	require.Error(t, err)
}

func TestHandleMessageRejectsEmptyInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.HandleMessage(context.Background(), "u1", "   ")
	require.ErrorIs(t, err, ErrEmptyMessage)
	require.Empty(t, f.history.appended)
}

func TestHandleMessageGreeting(t *testing.T) {
	f := newFixture(t)

	reply, err := f.engine.HandleMessage(context.Background(), "u1", "hello!")
	require.NoError(t, err)
	require.Equal(t, replyGreeting, reply.Text)
	require.NotEmpty(t, reply.ExchangeID)

	require.Len(t, f.history.appended, 1)
	require.Equal(t, "u1", f.history.appended[0].UserID)
	require.Equal(t, "hello!", f.history.appended[0].Message)
	require.Equal(t, reply.Text, f.history.appended[0].Reply)
	require.Equal(t, reply.ExchangeID, f.history.appended[0].ID)
}

func TestHandleMessageProductQuery(t *testing.T) {
	f := newFixture(t)
	f.catalog.products = []models.Product{
		{ID: "p1", Name: "ThinkPad E14", Available: true, Tiers: []models.PriceTier{{Price: 95000}}},
	}

	reply, err := f.engine.HandleMessage(context.Background(), "u1", "do you have a laptop under 100k")
	require.NoError(t, err)

	require.Contains(t, reply.Text, "ThinkPad E14")
	require.Contains(t, reply.Text, "Rs 95000")
	require.Contains(t, reply.Text, "https://shop.test/products/p1")

	require.True(t, f.catalog.gotFilter.AvailableOnly)
	require.Contains(t, f.catalog.gotFilter.Terms, "laptop")
	require.NotNil(t, f.catalog.gotFilter.Price)
	require.Equal(t, 100000, *f.catalog.gotFilter.Price.Max)
}

func TestHandleMessageProductQueryNoMatchNamesSlots(t *testing.T) {
	f := newFixture(t)
	f.catalog.popular = []models.Product{
		{ID: "p9", Name: "Dawlance Fridge", Tiers: []models.PriceTier{{Price: 80000}}},
	}

	reply, err := f.engine.HandleMessage(context.Background(), "u1", "do you have a laptop under 100k")
	require.NoError(t, err)

	require.Contains(t, reply.Text, "couldn't find")
	require.Contains(t, reply.Text, "laptop")
	require.Contains(t, reply.Text, "100000")
	require.Contains(t, reply.Text, "Dawlance Fridge")
}

func TestHandleMessageProductQueryNoMatchNoPopular(t *testing.T) {
	f := newFixture(t)

	reply, err := f.engine.HandleMessage(context.Background(), "u1", "show me a laptop")
	require.NoError(t, err)
	require.Contains(t, reply.Text, "Would you like me to check something else?")
}

func TestHandleMessageOrderStatus(t *testing.T) {
	t.Run("asks for an order id", func(t *testing.T) {
		f := newFixture(t)
		reply, err := f.engine.HandleMessage(context.Background(), "u1", "where is my order?")
		require.NoError(t, err)
		require.Equal(t, replyAskOrderID, reply.Text)
	})

	t.Run("order found", func(t *testing.T) {
		f := newFixture(t)
		f.orders.order = &models.Order{
			OrderID:   "ORD12345",
			Status:    "Shipped",
			UpdatedAt: time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
		}
		reply, err := f.engine.HandleMessage(context.Background(), "u1", "status of ord12345 please")
		require.NoError(t, err)
		require.Contains(t, reply.Text, "ORD12345")
		require.Contains(t, reply.Text, "Shipped")
	})

	t.Run("order not found", func(t *testing.T) {
		f := newFixture(t)
		reply, err := f.engine.HandleMessage(context.Background(), "u1", "track ORD12345")
		require.NoError(t, err)
		require.Equal(t, "Order ORD12345 not found. Please verify your order ID.", reply.Text)
	})
}

func TestHandleMessageFaq(t *testing.T) {
	f := newFixture(t)
	f.faqs.faqs = []models.Faq{
		{ID: "f1", Question: "What is the return policy?", Answer: "14-day returns."},
		{ID: "f2", Question: "How do I get a refund?", Answer: "Within 5 days."},
	}

	reply, err := f.engine.HandleMessage(context.Background(), "u1", "what is your return policy")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(reply.Text, "14-day returns."))
	require.Contains(t, reply.Text, "Related questions:")
	require.Contains(t, reply.Text, "How do I get a refund?")
}

func TestHandleMessageFaqNoRelevantEntry(t *testing.T) {
	f := newFixture(t)
	f.faqs.faqs = []models.Faq{{ID: "f1", Question: "How long does shipping take?", Answer: "2-4 days."}}

	// FaqPolicy intent, but nothing scores above threshold.
	reply, err := f.engine.HandleMessage(context.Background(), "u1", "help")
	require.NoError(t, err)
	require.Equal(t, replyDefaultPolicy, reply.Text)
}

func TestHandleMessageSocial(t *testing.T) {
	f := newFixture(t)
	f.social.links = []models.SocialLink{
		{Platform: "Instagram", URL: "https://instagram.com/electronix"},
	}

	reply, err := f.engine.HandleMessage(context.Background(), "u1", "follow you on instagram?")
	require.NoError(t, err)
	require.Contains(t, reply.Text, "Instagram")
	require.Contains(t, reply.Text, "https://instagram.com/electronix")
}

func TestHandleMessageSocialStoreFailureDegrades(t *testing.T) {
	f := newFixture(t)
	f.social.err = errors.New("db down")

	reply, err := f.engine.HandleMessage(context.Background(), "u1", "instagram link?")
	require.NoError(t, err)
	require.Equal(t, replySocialFallback, reply.Text)
}

func TestHandleMessageFallback(t *testing.T) {
	f := newFixture(t)
	f.history.recent = []models.ChatExchange{
		{Message: "do you deliver to karachi", Reply: "Yes, nationwide."},
	}
	f.llm.reply = "We are open every day except Sunday."

	reply, err := f.engine.HandleMessage(context.Background(), "u1", "tell me a joke")
	require.NoError(t, err)
	require.Equal(t, "We are open every day except Sunday.", reply.Text)

	require.Contains(t, f.llm.gotPrompt, "User: do you deliver to karachi")
	require.Contains(t, f.llm.gotPrompt, "Bot: Yes, nationwide.")
	require.Contains(t, f.llm.gotPrompt, "User: tell me a joke")
}

func TestHandleMessageFallbackTruncatesLongReplies(t *testing.T) {
	f := newFixture(t)
	f.llm.reply = strings.Repeat("a", 400)

	reply, err := f.engine.HandleMessage(context.Background(), "u1", "tell me a joke")
	require.NoError(t, err)
	require.Len(t, reply.Text, maxFallbackReplyLen+3)
	require.True(t, strings.HasSuffix(reply.Text, "..."))
}

func TestHandleMessageFallbackTruncationKeepsValidUTF8(t *testing.T) {
	f := newFixture(t)
	// The byte cap lands in the middle of a two-byte rune.
	f.llm.reply = "a" + strings.Repeat("é", 200)

	reply, err := f.engine.HandleMessage(context.Background(), "u1", "tell me a joke")
	require.NoError(t, err)
	require.True(t, utf8.ValidString(reply.Text))
	require.True(t, strings.HasSuffix(reply.Text, "..."))
	require.LessOrEqual(t, len(reply.Text), maxFallbackReplyLen+3)
}

func TestHandleMessageFallbackDegrades(t *testing.T) {
	t.Run("llm error", func(t *testing.T) {
		f := newFixture(t)
		f.llm.err = errors.New("quota exceeded")

		reply, err := f.engine.HandleMessage(context.Background(), "u1", "tell me a joke")
		require.NoError(t, err)
		require.Equal(t, replyAssistantDown, reply.Text)
		// The apology turn is still persisted.
		require.Len(t, f.history.appended, 1)
		require.Equal(t, replyAssistantDown, f.history.appended[0].Reply)
	})

	t.Run("llm empty output", func(t *testing.T) {
		f := newFixture(t)
		f.llm.reply = "  "

		reply, err := f.engine.HandleMessage(context.Background(), "u1", "tell me a joke")
		require.NoError(t, err)
		require.Equal(t, replyAssistantEmpty, reply.Text)
	})
}

func TestHandleMessageHistoryAppendFailure(t *testing.T) {
	f := newFixture(t)
	f.history.appendErr = errors.New("insert failed")

	reply, err := f.engine.HandleMessage(context.Background(), "u1", "hello")
	require.NoError(t, err)
	require.Equal(t, replyGreeting, reply.Text)
	require.Empty(t, reply.ExchangeID)
}
