package handler

import (
	"encoding/json"
	"net/http"

	"github.com/louardi/souk-assistant-go/internal/domain"
	"github.com/louardi/souk-assistant-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// 1. Chat — POST /v1/chat/message
// ============================================================

type chatMessageRequest struct {
	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	Message   string `json:"message"`
}

type chatMessageResponse struct {
	SessionID   string             `json:"session_id"`
	UserMessage domain.ChatMessage `json:"user_message"`
	BotMessage  domain.ChatMessage `json:"bot_message"`
	Suggestions []string           `json:"suggestions,omitempty"`
}

func chatMessageHandler(assistant *service.Assistant, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/chat/message")
		defer span.End()

		var req chatMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.SessionID != "" {
			span.SetAttributes(attribute.String("session.id", req.SessionID))
		}

		turn, err := assistant.HandleMessage(ctx, req.SessionID, req.UserID, req.Message)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, chatMessageResponse{
			SessionID:   turn.SessionID,
			UserMessage: turn.UserMessage,
			BotMessage:  turn.BotMessage,
			Suggestions: turn.Suggestions,
		})
	}
}

// ============================================================
// 1b. Chat history — GET /v1/chat/sessions/{sessionId}/messages
// ============================================================

func chatHistoryHandler(assistant *service.Assistant, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/chat/sessions/{sessionId}/messages")
		defer span.End()

		sessionID := chi.URLParam(r, "sessionId")
		if sessionID == "" {
			writeError(w, http.StatusBadRequest, "sessionId is required")
			return
		}
		span.SetAttributes(attribute.String("session.id", sessionID))

		messages, err := assistant.History(ctx, sessionID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
	}
}

// ============================================================
// 1c. Clear session — DELETE /v1/chat/sessions/{sessionId}/messages
// ============================================================

func chatClearHandler(assistant *service.Assistant, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/chat/sessions/{sessionId}/messages")
		defer span.End()

		sessionID := chi.URLParam(r, "sessionId")
		if sessionID == "" {
			writeError(w, http.StatusBadRequest, "sessionId is required")
			return
		}

		if err := assistant.ClearSession(ctx, sessionID); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
