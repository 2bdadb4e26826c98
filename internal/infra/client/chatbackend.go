package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/louardi/souk-assistant-go/internal/domain"
	"github.com/louardi/souk-assistant-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
)

// ChatBackendClient forwards messages to the external chat service — the
// richer NLP backend the local keyword classifier degrades gracefully from.
type ChatBackendClient struct {
	httpClient *http.Client
	baseURL    string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
}

// NewChatBackendClient creates a new ChatBackendClient.
func NewChatBackendClient(httpClient *http.Client, baseURL string, cb *gobreaker.CircuitBreaker, cfg resilience.Config) *ChatBackendClient {
	return &ChatBackendClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		cb:         cb,
		cfg:        cfg,
	}
}

// SendMessage posts the user message and returns the remote reply.
func (c *ChatBackendClient) SendMessage(ctx context.Context, req *domain.ChatBackendRequest) (*domain.ChatBackendResponse, error) {
	ctx, span := tracer.Start(ctx, "ChatBackendClient.SendMessage")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", req.UserID))

	var chatResp domain.ChatBackendResponse

	result, err := c.cb.Execute(func() (any, error) {
		var innerErr error
		innerErr = resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := json.Marshal(req)
			if err != nil {
				return err
			}

			url := fmt.Sprintf("%s/v1/chat", c.baseURL)
			httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
			if err != nil {
				return err
			}
			httpReq.Header.Set("Content-Type", "application/json")

			resp, err := c.httpClient.Do(httpReq)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("chat backend returned status %d", resp.StatusCode)
			}

			return json.NewDecoder(resp.Body).Decode(&chatResp)
		})
		if innerErr != nil {
			return nil, innerErr
		}
		return &chatResp, nil
	})

	if err != nil {
		return nil, &domain.ErrExternalService{Service: "chat-backend", Err: err}
	}

	return result.(*domain.ChatBackendResponse), nil
}
