package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/louardi/souk-assistant-go/internal/domain"
	"github.com/louardi/souk-assistant-go/internal/infra/observability"
	"github.com/louardi/souk-assistant-go/internal/infra/resilience"
	"github.com/louardi/souk-assistant-go/internal/nlp"
	"github.com/louardi/souk-assistant-go/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Assistant orchestrates one chat turn: classify the message, dispatch to
// the intent handler, and append both sides of the exchange to the session.
//
// When a message classifies as unknown and a remote chat backend is
// configured, the turn is forwarded there first — the richer NLP service may
// understand what the keyword table did not. Its failure is invisible to the
// user: the local apology response is the fallback.
type Assistant struct {
	responder   *Responder
	chatBackend port.ChatBackendCaller
	sessions    port.Cache[*domain.ChatSession]
	metrics     *observability.Metrics
	logger      *zap.Logger

	// Serializes the get-or-create window so two turns racing on the
	// same new session id cannot each create a session and drop the
	// other's messages.
	sessionMu sync.Mutex
}

// NewAssistant creates the assistant service with all dependencies injected.
// chatBackend may be nil; unknown intents then resolve locally.
func NewAssistant(
	responder *Responder,
	chatBackend port.ChatBackendCaller,
	sessions port.Cache[*domain.ChatSession],
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Assistant {
	return &Assistant{
		responder:   responder,
		chatBackend: chatBackend,
		sessions:    sessions,
		metrics:     metrics,
		logger:      logger,
	}
}

// HandleMessage processes one user message and returns the full turn,
// including the session id (freshly minted when the caller did not send one).
func (a *Assistant) HandleMessage(ctx context.Context, sessionID, userID, text string) (*domain.ChatTurn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "Assistant.HandleMessage")
	defer span.End()

	if strings.TrimSpace(text) == "" {
		return nil, &domain.ErrValidation{Field: "message", Message: "must not be empty"}
	}

	start := time.Now()
	defer func() {
		a.metrics.RecordRequestDuration("chat_message", time.Since(start))
	}()

	session := a.getOrCreateSession(sessionID, userID)
	span.SetAttributes(attribute.String("session.id", session.ID))

	result := nlp.Classify(text)
	a.metrics.IncrIntent(result.Intent)

	a.logger.Info("chat message received",
		zap.String("session_id", session.ID),
		zap.String("intent", string(result.Intent)),
		zap.Float64("confidence", result.Confidence),
		zap.Int("message_length", len(text)),
	)

	reply, err := a.reply(ctx, userID, text, result)
	if err != nil {
		return nil, err
	}

	userMsg := domain.ChatMessage{
		ID:        uuid.New().String(),
		Role:      domain.RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	}
	botMsg := domain.ChatMessage{
		ID:        uuid.New().String(),
		Role:      domain.RoleBot,
		Content:   reply.Text,
		Timestamp: time.Now(),
		Products:  reply.Products,
		Category:  reply.Category,
		Intent:    result.Intent,
	}

	session.Append(userMsg, botMsg)
	// Re-Set to refresh the session's TTL: an active conversation stays alive.
	a.sessions.Set(session.ID, session)
	a.metrics.IncrMessage(domain.RoleUser)
	a.metrics.IncrMessage(domain.RoleBot)

	// Suggestions ride on the turn, not the stored message: the storefront
	// renders chips for the latest bubble only.
	return &domain.ChatTurn{
		SessionID:   session.ID,
		UserMessage: userMsg,
		BotMessage:  botMsg,
		Suggestions: reply.Suggestions,
	}, nil
}

// reply picks the local handler or, for unknown intents, tries the remote
// chat backend with the local handler as fallback.
func (a *Assistant) reply(ctx context.Context, userID, text string, result domain.NLPResult) (*domain.BotReply, error) {
	if result.Intent != domain.IntentUnknown || a.chatBackend == nil {
		return a.responder.Respond(ctx, result)
	}

	reply, degraded, err := resilience.WithFallback(ctx, a.logger, "chat_backend",
		func(ctx context.Context) (*domain.BotReply, error) {
			resp, err := a.chatBackend.SendMessage(ctx, &domain.ChatBackendRequest{
				Message: text,
				UserID:  userID,
			})
			if err != nil {
				return nil, err
			}
			if resp.Text == "" {
				return nil, &domain.ErrExternalService{Service: "chat-backend",
					Err: &domain.ErrValidation{Field: "text", Message: "empty remote reply"}}
			}
			return &domain.BotReply{
				Text:        resp.Text,
				Products:    resp.Products,
				Suggestions: resp.Suggestions,
			}, nil
		},
		func(ctx context.Context) (*domain.BotReply, error) {
			return a.responder.Respond(ctx, result)
		},
	)
	if degraded {
		a.metrics.IncrExternalError("chat-backend")
	}
	return reply, err
}

func (a *Assistant) getOrCreateSession(sessionID, userID string) *domain.ChatSession {
	a.sessionMu.Lock()
	defer a.sessionMu.Unlock()

	if sessionID != "" {
		if session, ok := a.sessions.Get(sessionID); ok {
			return session
		}
	}
	id := sessionID
	if id == "" {
		id = uuid.New().String()
	}
	session := domain.NewChatSession(id, userID)
	a.sessions.Set(id, session)
	return session
}

// History returns a copy of the session's message list.
func (a *Assistant) History(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	_, span := tracer.Start(ctx, "Assistant.History")
	defer span.End()

	session, ok := a.sessions.Get(sessionID)
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "session", ID: sessionID}
	}
	return session.Snapshot(), nil
}

// ClearSession discards a session and all its messages.
func (a *Assistant) ClearSession(ctx context.Context, sessionID string) error {
	_, span := tracer.Start(ctx, "Assistant.ClearSession")
	defer span.End()

	if _, ok := a.sessions.Get(sessionID); !ok {
		return &domain.ErrNotFound{Resource: "session", ID: sessionID}
	}
	a.sessions.Delete(sessionID)
	return nil
}
