package service_test

import (
	"context"

	"github.com/louardi/souk-assistant-go/internal/domain"
)

// --- Shared mocks for the service tests ---
// The catalog ports use the real in-memory store (cheap and deterministic);
// only the remote services are mocked.

type mockRecommenderClient struct {
	response *domain.RecommenderResponse
	err      error
	calls    int
}

func (m *mockRecommenderClient) RecommendForUser(_ context.Context, _ string, _ int) (*domain.RecommenderResponse, error) {
	m.calls++
	return m.response, m.err
}

func (m *mockRecommenderClient) SimilarTo(_ context.Context, _, _ int) (*domain.RecommenderResponse, error) {
	m.calls++
	return m.response, m.err
}

func (m *mockRecommenderClient) Popular(_ context.Context, _ int) (*domain.RecommenderResponse, error) {
	m.calls++
	return m.response, m.err
}

type mockChatBackend struct {
	response *domain.ChatBackendResponse
	err      error
	calls    int
}

func (m *mockChatBackend) SendMessage(_ context.Context, _ *domain.ChatBackendRequest) (*domain.ChatBackendResponse, error) {
	m.calls++
	return m.response, m.err
}

// firstVariant is the deterministic stand-in for the canned-reply RNG.
func firstVariant(int) int { return 0 }
