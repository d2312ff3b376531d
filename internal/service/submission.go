package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wordaday/internal/domain"
	"wordaday/internal/repository"
)

// SubmissionService turns raw interpretations into durable ledger
// entries and handles likes on the current pool.
type SubmissionService struct {
	store  repository.LedgerStore
	logger *zap.Logger
}

// NewSubmissionService creates a new submission service.
func NewSubmissionService(store repository.LedgerStore, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{store: store, logger: logger}
}

// Submit validates text, resolves attribution and appends the submission
// to the ledger. The submission is stamped with the current word inside
// the same mutation that appends it.
func (s *SubmissionService) Submit(ctx context.Context, text, username string) (*domain.Submission, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: submission text is empty", domain.ErrValidation)
	}
	if utf8.RuneCountInString(text) > domain.MaxSubmissionLen {
		return nil, fmt.Errorf("%w: submission text exceeds %d characters", domain.ErrValidation, domain.MaxSubmissionLen)
	}

	username = strings.TrimSpace(username)
	if username == "" {
		username = RandomUsername()
	}

	sub := domain.Submission{
		ID:        uuid.NewString(),
		Text:      text,
		Username:  username,
		Likes:     0,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.store.Mutate(ctx, func(l domain.Ledger) (domain.Ledger, error) {
		if l.Current == nil {
			return domain.Ledger{}, domain.ErrNoCurrentWord
		}
		sub.Word = l.Current.Word
		l.Submissions = append(l.Submissions, sub)
		return l, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Submission accepted",
		zap.String("id", sub.ID),
		zap.String("word", sub.Word),
		zap.String("username", sub.Username),
	)

	return &sub, nil
}

// Like increments the like count of the submission with the given id.
// A miss is usually a rollover racing with the like; the like is dropped.
func (s *SubmissionService) Like(ctx context.Context, id string) (*domain.Submission, error) {
	var liked domain.Submission

	_, err := s.store.Mutate(ctx, func(l domain.Ledger) (domain.Ledger, error) {
		sub := l.FindSubmission(id)
		if sub == nil {
			return domain.Ledger{}, fmt.Errorf("%w: submission %s", domain.ErrNotFound, id)
		}
		sub.Likes++
		liked = *sub
		return l, nil
	})
	if err != nil {
		return nil, err
	}

	return &liked, nil
}
