package domain

import (
	"sync"
	"time"
)

// Intent is the coarse category of a user request, selected by keyword
// scoring over the message text. The set is closed: the classifier always
// returns exactly one of these values.
type Intent string

const (
	IntentGreeting         Intent = "greeting"
	IntentProductSearch    Intent = "product_search"
	IntentCategoryBrowse   Intent = "category_browse"
	IntentRecommendation   Intent = "recommendation"
	IntentOrderStatus      Intent = "order_status"
	IntentDeliveryTracking Intent = "delivery_tracking"
	IntentPriceInquiry     Intent = "price_inquiry"
	IntentHelp             Intent = "help"
	IntentPayment          Intent = "payment"
	IntentReturn           Intent = "return"
	IntentThanks           Intent = "thanks"
	IntentAddToCart        Intent = "add_to_cart"
	IntentUnknown          Intent = "unknown"
)

// PriceRange is a price bound extracted from the message. The extractor only
// ever sets one side: "moins de 500" sets Max, "minimum 200" sets Min.
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Entities holds the structured values extracted from a message alongside
// the intent. Keywords may be empty but is never nil.
type Entities struct {
	Category    string      `json:"category,omitempty"`
	ProductName string      `json:"productName,omitempty"`
	PriceRange  *PriceRange `json:"priceRange,omitempty"`
	Keywords    []string    `json:"keywords"`
}

// NLPResult is the transient output of one classification pass. Confidence
// is the raw accumulated score of the winning intent, not normalized.
type NLPResult struct {
	Intent     Intent   `json:"intent"`
	Entities   Entities `json:"entities"`
	Confidence float64  `json:"confidence"`
}

// BotReply is what the dispatcher returns for one user message. Products,
// Category and Suggestions are optional — most canned replies carry text only.
type BotReply struct {
	Text        string    `json:"text"`
	Products    []Product `json:"products,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
}

// MessageRole distinguishes the two sides of a conversation.
type MessageRole string

const (
	RoleUser MessageRole = "user"
	RoleBot  MessageRole = "bot"
)

// ChatMessage is one turn in a session's message list. Messages are
// immutable once appended; clearing the session discards them all.
type ChatMessage struct {
	ID        string      `json:"id"`
	Role      MessageRole `json:"type"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	Products  []Product   `json:"products,omitempty"`
	Category  *Category   `json:"category,omitempty"`
	Intent    Intent      `json:"intent,omitempty"`
}

// ChatSession holds the in-memory message list for one conversation.
// A session is shared between concurrent requests through the session
// cache, so the list is only reachable through Append and Snapshot,
// both serialized on the session's own lock.
type ChatSession struct {
	ID        string
	UserID    string
	CreatedAt time.Time

	mu       sync.Mutex
	messages []ChatMessage
}

// NewChatSession creates an empty session.
func NewChatSession(id, userID string) *ChatSession {
	return &ChatSession{ID: id, UserID: userID, CreatedAt: time.Now()}
}

// Append adds messages to the session, typically both sides of one turn.
func (s *ChatSession) Append(msgs ...ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msgs...)
}

// Snapshot returns a copy of the message list, safe to encode while
// another turn appends.
func (s *ChatSession) Snapshot() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ChatMessage(nil), s.messages...)
}

// ChatTurn is the outcome of one processed message: both sides of the
// exchange plus the suggestion chips for the latest bubble.
type ChatTurn struct {
	SessionID   string      `json:"session_id"`
	UserMessage ChatMessage `json:"user_message"`
	BotMessage  ChatMessage `json:"bot_message"`
	Suggestions []string    `json:"suggestions,omitempty"`
}

// Strategy labels which algorithm or source produced a recommendation list.
const (
	StrategyPopularity     = "popularity"
	StrategyItemSimilarity = "item_similarity"
	StrategyFallback       = "fallback"
)

// RecommendationResult is the triple every recommendation path resolves to.
// Callers never see an error: remote failures degrade to the local top-rated
// list with Strategy set to "fallback".
type RecommendationResult struct {
	Text     string    `json:"text"`
	Products []Product `json:"products"`
	Strategy string    `json:"strategy"`
}

// RecommenderResponse is the payload shape of the remote recommendation
// service. ProductID values are opaque until mapped back to the catalog.
type RecommenderResponse struct {
	Recommendations []ScoredProduct `json:"recommendations,omitempty"`
	SimilarProducts []ScoredProduct `json:"similar_products,omitempty"`
	Products        []ScoredProduct `json:"products,omitempty"`
	StrategyUsed    string          `json:"strategy_used,omitempty"`
}

// ScoredProduct is one entry in a remote recommendation list.
type ScoredProduct struct {
	ProductID int     `json:"product_id"`
	Score     float64 `json:"score"`
}

// ChatBackendRequest is the payload sent to the remote chat service.
type ChatBackendRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

// ChatBackendResponse is what the remote chat service answers with.
type ChatBackendResponse struct {
	Text        string    `json:"text"`
	Products    []Product `json:"products,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
}
