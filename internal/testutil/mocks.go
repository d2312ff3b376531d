package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wordaday/internal/domain"
)

// MockGenerator is a mock for generation.Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateWord(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) DefineWord(ctx context.Context, word string) (string, error) {
	args := m.Called(ctx, word)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) GenerateImage(ctx context.Context, word string) ([]byte, error) {
	args := m.Called(ctx, word)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockGenerator) Summarize(ctx context.Context, word string, submissions []string) ([]string, error) {
	args := m.Called(ctx, word, submissions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockAnnouncer is a mock for service.Announcer
type MockAnnouncer struct {
	mock.Mock
}

func (m *MockAnnouncer) Announce(word domain.Word, archived *domain.ArchivedWord) {
	m.Called(word, archived)
}
