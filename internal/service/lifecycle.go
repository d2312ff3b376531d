package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"wordaday/internal/domain"
	"wordaday/internal/generation"
	"wordaday/internal/repository"
)

// Announcer is notified after a rollover establishes a new word. Calls
// are best-effort; implementations log their own failures.
type Announcer interface {
	Announce(word domain.Word, archived *domain.ArchivedWord)
}

// errLedgerChanged signals that another writer replaced the current word
// between the rollover's snapshot read and its commit. Only possible when
// several processes share one database.
var errLedgerChanged = errors.New("ledger changed during rollover")

// LifecycleService drives the day-rollover state machine: archiving the
// outgoing word, clearing the pool and establishing the next word as one
// atomic ledger mutation.
type LifecycleService struct {
	store     repository.LedgerStore
	gen       generation.Generator
	announcer Announcer
	loc       *time.Location
	logger    *zap.Logger

	// rollover guard: at most one rollover in flight per process
	mu  sync.Mutex
	now func() time.Time
}

// NewLifecycleService creates a new lifecycle service. announcer may be
// nil when no announcement channel is configured.
func NewLifecycleService(
	store repository.LedgerStore,
	gen generation.Generator,
	announcer Announcer,
	loc *time.Location,
	logger *zap.Logger,
) *LifecycleService {
	if loc == nil {
		loc = time.UTC
	}
	return &LifecycleService{
		store:     store,
		gen:       gen,
		announcer: announcer,
		loc:       loc,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *LifecycleService) today() string {
	return domain.DayKey(s.now().In(s.loc))
}

// EnsureCurrentDay returns the word for today, rolling the day over first
// if the ledger is still on a previous one. Idempotent and safe to call
// concurrently: repeated same-day calls hit the read-only fast path, and
// the rollover guard admits one rollover at a time.
func (s *LifecycleService) EnsureCurrentDay(ctx context.Context) (*domain.Word, error) {
	today := s.today()

	led, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	if led.Current != nil && led.Current.Date == today {
		return led.Current, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the guard: a caller that waited here usually finds
	// the rollover already done.
	led, err = s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	if led.Current != nil && led.Current.Date == today {
		return led.Current, nil
	}

	word, _, err := s.rollover(ctx, led, "")
	if errors.Is(err, errLedgerChanged) {
		led, rerr := s.store.Read(ctx)
		if rerr != nil {
			return nil, rerr
		}
		if led.Current != nil {
			return led.Current, nil
		}
		return nil, err
	}
	return word, err
}

// ForceSetWord starts a new round with the supplied word, skipping word
// generation. The outgoing word, if any, is still archived and the pool
// is always cleared.
func (s *LifecycleService) ForceSetWord(ctx context.Context, raw string) (*domain.Word, error) {
	word, err := domain.NormalizeWord(raw)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	led, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	next, _, err := s.rollover(ctx, led, word)
	return next, err
}

// TriggerSummarization closes the current day immediately regardless of
// the date: the current word is archived with its winning definitions and
// a freshly generated word takes its place.
func (s *LifecycleService) TriggerSummarization(ctx context.Context) (*domain.ArchivedWord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	led, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	if led.Current == nil {
		return nil, domain.ErrNoCurrentWord
	}

	_, archived, err := s.rollover(ctx, led, "")
	return archived, err
}

// RegenerateImage replaces the current word's illustration. On generation
// failure the existing image is left untouched.
func (s *LifecycleService) RegenerateImage(ctx context.Context) (*domain.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	led, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	if led.Current == nil {
		return nil, domain.ErrNoCurrentWord
	}

	img, err := s.gen.GenerateImage(ctx, led.Current.Word)
	if err != nil {
		return nil, err
	}

	var updated domain.Word
	_, err = s.store.Mutate(ctx, func(l domain.Ledger) (domain.Ledger, error) {
		if l.Current == nil || l.Current.Word != led.Current.Word {
			return domain.Ledger{}, domain.ErrNoCurrentWord
		}
		l.Current.Image = img
		updated = *l.Current
		return l, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Regenerated image", zap.String("word", updated.Word), zap.Int("bytes", len(img)))
	return &updated, nil
}

// rollover archives the outgoing word (if any), produces the next word
// and commits the whole transition as one ledger mutation. The generation
// calls run before the mutation, so a failed mandatory call leaves the
// ledger completely untouched.
func (s *LifecycleService) rollover(ctx context.Context, snapshot domain.Ledger, forced string) (*domain.Word, *domain.ArchivedWord, error) {
	today := s.today()

	var archived *domain.ArchivedWord
	if snapshot.Current != nil {
		defs := []string{domain.NoDefinitionsMessage}
		if len(snapshot.Submissions) > 0 {
			texts := make([]string, len(snapshot.Submissions))
			for i, sub := range snapshot.Submissions {
				texts[i] = sub.Text
			}
			var err error
			defs, err = s.gen.Summarize(ctx, snapshot.Current.Word, texts)
			if err != nil {
				return nil, nil, err
			}
		}
		archived = &domain.ArchivedWord{
			Word:               snapshot.Current.Word,
			Image:              snapshot.Current.Image,
			Date:               snapshot.Current.Date,
			WinningDefinitions: defs,
		}
	}

	word := forced
	if word == "" {
		var err error
		word, err = s.gen.GenerateWord(ctx)
		if err != nil {
			return nil, nil, err
		}
	}

	next := domain.Word{Word: word, Date: today}

	if img, err := s.gen.GenerateImage(ctx, word); err != nil {
		s.logger.Warn("Image generation failed, continuing without illustration",
			zap.String("word", word), zap.Error(err))
	} else {
		next.Image = img
	}

	if meaning, err := s.gen.DefineWord(ctx, word); err != nil {
		s.logger.Warn("Meaning generation failed, continuing without one",
			zap.String("word", word), zap.Error(err))
	} else {
		next.AIMeaning = meaning
	}

	outgoing := snapshot.Current
	_, err := s.store.Mutate(ctx, func(l domain.Ledger) (domain.Ledger, error) {
		if !sameWord(l.Current, outgoing) {
			return domain.Ledger{}, fmt.Errorf("%w: expected %s", errLedgerChanged, wordLabel(outgoing))
		}
		if archived != nil {
			l.Archive = append([]domain.ArchivedWord{*archived}, l.Archive...)
		}
		l.Current = &next
		l.Submissions = []domain.Submission{}
		return l, nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("Rolled over to new word",
		zap.String("word", next.Word),
		zap.String("date", next.Date),
		zap.Bool("archived_previous", archived != nil),
	)

	if s.announcer != nil {
		s.announcer.Announce(next, archived)
	}

	return &next, archived, nil
}

func sameWord(a, b *domain.Word) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Word == b.Word && a.Date == b.Date
}

func wordLabel(w *domain.Word) string {
	if w == nil {
		return "empty ledger"
	}
	return w.Word + "/" + w.Date
}
