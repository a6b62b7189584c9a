package chatbot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/electronix/assistant/internal/models"
)

// Collaborator contracts consumed by the engine. They are deliberately narrow:
// the Postgres client satisfies all of the store interfaces, and tests swap in
// hand-rolled mocks per interface.

type CatalogStore interface {
	FindProducts(ctx context.Context, filter models.ProductFilter, limit int) ([]models.Product, error)
	FindPopular(ctx context.Context, limit int) ([]models.Product, error)
}

type FaqStore interface {
	ListFaqs(ctx context.Context) ([]models.Faq, error)
}

type SocialLinkStore interface {
	ListSocialLinks(ctx context.Context) ([]models.SocialLink, error)
}

type OrderStore interface {
	FindOrderByID(ctx context.Context, userID, orderID string) (*models.Order, error)
}

type HistoryStore interface {
	AppendExchange(ctx context.Context, exchange *models.ChatExchange) error
	ListRecentExchanges(ctx context.Context, userID string, n int) ([]models.ChatExchange, error)
}

// Responder is the external generative collaborator used when no rule matches.
type Responder interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyMessage marks malformed input rejected before rule evaluation. It is
// the only error HandleMessage returns; every collaborator failure degrades to
// reply text instead.
var ErrEmptyMessage = errors.New("chatbot: message must be a non-empty string")

const (
	defaultLLMTimeout = 10 * time.Second

	// maxFallbackReplyLen caps generative replies so chat bubbles stay short.
	maxFallbackReplyLen = 300

	replyGreeting = "Hello! How can I assist you with electronic products today?"

	replySocialFallback = "Visit our store: https://electronix.com"

	replyPaymentInfo = "We accept cash on delivery, debit/credit cards, EasyPaisa, JazzCash and bank transfer. Payment is verified before your order ships."

	replyStoreInfo = "Electronix, Main Boulevard, Gulberg III, Lahore.\nOpen Mon-Sat 10am-9pm.\nReach us at support@electronix.com or +92-300-1234567."

	replyAskOrderID = "Please provide your Order ID (format: ORD12345) to check status."

	replyFaqContact = "For return assistance, please contact support@electronix.com or call +92-300-1234567."

	replyDefaultPolicy = "Our standard return policy:\n" +
		"- 14-day return window\n" +
		"- Unopened items only\n" +
		"- Proof of purchase required\n\n" +
		"For specific cases, contact support@electronix.com"

	replyAssistantDown = "Sorry, the AI assistant is currently unavailable. Please try again later."

	replyAssistantEmpty = "I'm still learning about that. Could you rephrase or ask about our products/policies?"

	replyStoreDown = "Sorry, something went wrong on our side. Please try again in a moment."
)

var reOrderToken = regexp.MustCompile(`(?i)\bord\d{4,}\b`)

// Config carries the engine knobs that are not collaborators.
type Config struct {
	// StoreBaseURL prefixes product links in replies.
	StoreBaseURL string
	// LLMTimeout bounds the single generative fallback call. No retries: a
	// second attempt would make conversational latency unpredictable.
	LLMTimeout time.Duration
	Logger     zerolog.Logger
}

// Reply is the outcome of one chat turn.
type Reply struct {
	Text       string
	ExchangeID string
}

// Engine runs one chat turn: classify the message, dispatch to the matching
// intent handler, build the reply, and persist the exchange exactly once. It
// holds no per-request state and is safe for concurrent use.
type Engine struct {
	catalog    CatalogStore
	faqs       FaqStore
	social     SocialLinkStore
	orders     OrderStore
	history    HistoryStore
	llm        Responder
	storeURL   string
	llmTimeout time.Duration
	log        zerolog.Logger
}

func NewEngine(catalog CatalogStore, faqs FaqStore, social SocialLinkStore, orders OrderStore, history HistoryStore, llm Responder, cfg Config) (*Engine, error) {
	if catalog == nil || faqs == nil || social == nil || orders == nil || history == nil {
		return nil, errors.New("chatbot: all stores must be non-nil")
	}
	if llm == nil {
		return nil, errors.New("chatbot: responder must not be nil")
	}
	timeout := cfg.LLMTimeout
	if timeout <= 0 {
		timeout = defaultLLMTimeout
	}
	storeURL := strings.TrimRight(cfg.StoreBaseURL, "/")
	if storeURL == "" {
		storeURL = "https://electronix.com"
	}
	return &Engine{
		catalog:    catalog,
		faqs:       faqs,
		social:     social,
		orders:     orders,
		history:    history,
		llm:        llm,
		storeURL:   storeURL,
		llmTimeout: timeout,
		log:        cfg.Logger,
	}, nil
}

// HandleMessage is the single entry point for a chat turn. The only error it
// returns is ErrEmptyMessage for blank input; collaborator failures are
// logged and converted into apologetic reply text, so a turn never surfaces
// an internal error to the user. The exchange is appended to history exactly
// once, fallback included; if even the append fails the reply still goes out
// with an empty exchange ID.
func (e *Engine) HandleMessage(ctx context.Context, userID, text string) (Reply, error) {
	message := strings.TrimSpace(text)
	if message == "" {
		return Reply{}, ErrEmptyMessage
	}

	intent := Classify(message)
	reply := e.dispatch(ctx, userID, message, intent)

	e.log.Debug().
		Str("user_id", userID).
		Str("intent", intent.String()).
		Msg("chat turn handled")

	exchange := &models.ChatExchange{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		Reply:     reply,
		Timestamp: time.Now().UTC(),
	}
	if err := e.history.AppendExchange(ctx, exchange); err != nil {
		e.log.Error().Err(err).Str("user_id", userID).Msg("append chat exchange failed")
		return Reply{Text: reply}, nil
	}
	return Reply{Text: reply, ExchangeID: exchange.ID}, nil
}

func (e *Engine) dispatch(ctx context.Context, userID, message string, intent Intent) string {
	switch intent {
	case IntentGreeting:
		return replyGreeting
	case IntentSocialMedia:
		return e.socialReply(ctx)
	case IntentPaymentInfo:
		return replyPaymentInfo
	case IntentOrderStatus:
		return e.orderStatusReply(ctx, userID, message)
	case IntentFaqPolicy:
		return e.faqReply(ctx, message)
	case IntentStoreInfo:
		return replyStoreInfo
	case IntentProductQuery:
		return e.productReply(ctx, message)
	default:
		return e.fallbackReply(ctx, userID, message)
	}
}

func (e *Engine) socialReply(ctx context.Context) string {
	links, err := e.social.ListSocialLinks(ctx)
	if err != nil {
		e.log.Error().Err(err).Msg("list social links failed")
		return replySocialFallback
	}
	if len(links) == 0 {
		return replySocialFallback
	}
	var b strings.Builder
	b.WriteString("Connect with us on:")
	for _, l := range links {
		fmt.Fprintf(&b, "\n- %s: %s", l.Platform, l.URL)
	}
	return b.String()
}

func (e *Engine) orderStatusReply(ctx context.Context, userID, message string) string {
	token := reOrderToken.FindString(message)
	if token == "" {
		return replyAskOrderID
	}
	orderID := strings.ToUpper(token)

	order, err := e.orders.FindOrderByID(ctx, userID, orderID)
	if err != nil {
		e.log.Error().Err(err).Str("order_id", orderID).Msg("order lookup failed")
		return replyStoreDown
	}
	if order == nil {
		return fmt.Sprintf("Order %s not found. Please verify your order ID.", orderID)
	}
	return fmt.Sprintf("Order %s:\n- Status: %s\n- Last update: %s",
		order.OrderID, order.Status, order.UpdatedAt.Format("Mon, 02 Jan 2006"))
}

func (e *Engine) faqReply(ctx context.Context, message string) string {
	faqs, err := e.faqs.ListFaqs(ctx)
	if err != nil {
		e.log.Error().Err(err).Msg("list faqs failed")
		return replyStoreDown
	}
	if len(faqs) == 0 {
		return replyFaqContact
	}

	scored := ScoreFaqs(faqs, message)
	if len(scored) == 0 {
		return replyDefaultPolicy
	}

	reply := scored[0].Answer
	if len(scored) > 1 {
		reply += "\n\nRelated questions:"
		for i, f := range scored[1:] {
			if i == 2 {
				break
			}
			reply += fmt.Sprintf("\n%d. %s", i+1, f.Question)
		}
	}
	return reply
}

func (e *Engine) productReply(ctx context.Context, message string) string {
	keywords := ExtractKeywords(message)
	category := InferCategory(message)
	price := ExtractPriceRange(message)

	filter := BuildFilter(keywords, category, price)
	products, err := e.catalog.FindProducts(ctx, filter, resultPageSize)
	if err != nil {
		e.log.Error().Err(err).Msg("catalog query failed")
		return replyStoreDown
	}
	if len(products) == 0 {
		return e.noMatchReply(ctx, keywords, category, price)
	}

	var b strings.Builder
	b.WriteString("Here are some options:")
	for i, p := range products {
		availability := "In stock"
		if !p.Available {
			availability = "Currently out of stock"
		}
		fmt.Fprintf(&b, "\n%d. %s - Rs %d (%s)\n   View: %s/products/%s",
			i+1, p.Name, p.MinPrice(), availability, e.storeURL, p.ID)
	}
	b.WriteString("\n\nAsk about a specific product for more details!")
	return b.String()
}

// noMatchReply names the exact slots that produced zero matches, then softens
// the failure with popular alternatives.
func (e *Engine) noMatchReply(ctx context.Context, keywords []string, category string, price *models.PriceRange) string {
	var parts []string
	if len(keywords) > 0 {
		parts = append(parts, fmt.Sprintf("matching %q", strings.Join(keywords, "/")))
	}
	if category != "" {
		parts = append(parts, "in "+category)
	}
	if price != nil {
		parts = append(parts, describePrice(price))
	}

	msg := "I couldn't find any products"
	if len(parts) > 0 {
		msg += " " + strings.Join(parts, " ")
	}
	msg += "."

	popular, err := e.catalog.FindPopular(ctx, suggestionLimit)
	if err != nil {
		e.log.Error().Err(err).Msg("popular products lookup failed")
		popular = nil
	}
	if len(popular) == 0 {
		return msg + " Would you like me to check something else?"
	}

	msg += "\n\nYou might like:"
	for i, p := range popular {
		msg += fmt.Sprintf("\n%d. %s - Rs %d", i+1, p.Name, p.MinPrice())
	}
	return msg
}

func describePrice(price *models.PriceRange) string {
	switch {
	case price.Min != nil && price.Max != nil && *price.Min == *price.Max:
		return fmt.Sprintf("at Rs %d", *price.Min)
	case price.Min != nil && price.Max != nil:
		return fmt.Sprintf("between Rs %d and Rs %d", *price.Min, *price.Max)
	case price.Max != nil:
		return fmt.Sprintf("under Rs %d", *price.Max)
	default:
		return fmt.Sprintf("over Rs %d", *price.Min)
	}
}

func (e *Engine) fallbackReply(ctx context.Context, userID, message string) string {
	recent, err := e.history.ListRecentExchanges(ctx, userID, WindowSize)
	if err != nil {
		e.log.Error().Err(err).Str("user_id", userID).Msg("recent history lookup failed")
		recent = nil
	}

	prompt := fmt.Sprintf(
		"You are a helpful assistant for an electronics store in Pakistan. Keep responses concise (1-2 sentences max).\nChat history:\n%s\nUser: %s",
		RenderWindow(recent), message)

	llmCtx, cancel := context.WithTimeout(ctx, e.llmTimeout)
	defer cancel()

	raw, err := e.llm.Complete(llmCtx, prompt)
	if err != nil {
		e.log.Error().Err(err).Msg("generative fallback failed")
		return replyAssistantDown
	}

	reply := strings.TrimSpace(raw)
	if reply == "" {
		return replyAssistantEmpty
	}
	if len(reply) > maxFallbackReplyLen {
		// Cut on a rune boundary so a multibyte reply never yields broken UTF-8.
		cut := maxFallbackReplyLen
		for cut > 0 && !utf8.RuneStart(reply[cut]) {
			cut--
		}
		reply = reply[:cut] + "..."
	}
	return reply
}
