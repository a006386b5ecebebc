package services

import (
	"context"
	"sync"

	"github.com/jwebster45206/treasure-hunt/pkg/chat"
)

// MockLLMAPI is a mock implementation of LLMService for testing
type MockLLMAPI struct {
	InitModelFunc    func(ctx context.Context, modelName string) error
	ChatFunc         func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)
	IsModelReadyFunc func(ctx context.Context, modelName string) (bool, error)

	// Track calls for testing
	InitModelCalls    []string
	ChatCalls         []ChatCall
	IsModelReadyCalls []string

	// Responses are returned in order by Chat when ChatFunc is nil.
	// Once exhausted, Chat falls back to DefaultResponse.
	Responses       []string
	DefaultResponse string

	mu sync.Mutex // protects all fields above
}

type ChatCall struct {
	Messages []chat.ChatMessage
}

// NewMockLLMAPI creates a new mock LLM service
func NewMockLLMAPI(responses ...string) *MockLLMAPI {
	return &MockLLMAPI{
		InitModelCalls:    make([]string, 0),
		ChatCalls:         make([]ChatCall, 0),
		IsModelReadyCalls: make([]string, 0),
		Responses:         responses,
		DefaultResponse:   "look around",
	}
}

// InitModel mocks model initialization
func (m *MockLLMAPI) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InitModelCalls = append(m.InitModelCalls, modelName)

	if m.InitModelFunc != nil {
		return m.InitModelFunc(ctx, modelName)
	}
	return nil
}

// Chat mocks response generation
func (m *MockLLMAPI) Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	recorded := make([]chat.ChatMessage, len(messages))
	copy(recorded, messages)
	m.ChatCalls = append(m.ChatCalls, ChatCall{Messages: recorded})

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, messages)
	}

	if len(m.Responses) > 0 {
		next := m.Responses[0]
		m.Responses = m.Responses[1:]
		return &chat.ChatResponse{Message: next}, nil
	}

	return &chat.ChatResponse{
		Message: m.DefaultResponse,
	}, nil
}

// IsModelReady mocks model readiness check
func (m *MockLLMAPI) IsModelReady(ctx context.Context, modelName string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.IsModelReadyCalls = append(m.IsModelReadyCalls, modelName)

	if m.IsModelReadyFunc != nil {
		return m.IsModelReadyFunc(ctx, modelName)
	}
	return true, nil
}

// Reset clears all call tracking
func (m *MockLLMAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InitModelCalls = make([]string, 0)
	m.ChatCalls = make([]ChatCall, 0)
	m.IsModelReadyCalls = make([]string, 0)
}

// SetChatError sets up the mock to return an error on Chat
func (m *MockLLMAPI) SetChatError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatFunc = func(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
		return nil, err
	}
}

// SetIsModelReadyError sets up the mock to return an error on IsModelReady
func (m *MockLLMAPI) SetIsModelReadyError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IsModelReadyFunc = func(ctx context.Context, modelName string) (bool, error) {
		return false, err
	}
}

// SetModelNotReady sets up the mock to return false for IsModelReady
func (m *MockLLMAPI) SetModelNotReady() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IsModelReadyFunc = func(ctx context.Context, modelName string) (bool, error) {
		return false, nil
	}
}

// GetCalls returns a copy of the call tracking data in a thread-safe way
func (m *MockLLMAPI) GetCalls() ([]string, []ChatCall, []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	initCalls := make([]string, len(m.InitModelCalls))
	copy(initCalls, m.InitModelCalls)

	chatCalls := make([]ChatCall, len(m.ChatCalls))
	copy(chatCalls, m.ChatCalls)

	readyCalls := make([]string, len(m.IsModelReadyCalls))
	copy(readyCalls, m.IsModelReadyCalls)

	return initCalls, chatCalls, readyCalls
}
