package generation

import "context"

// Generator is the gateway to the external generation capabilities. It
// never touches the ledger; every call carries its own timeout and every
// failure wraps domain.ErrGenerationUnavailable.
type Generator interface {
	// GenerateWord invents a pronounceable fictional word, normalized to
	// 6-12 letters. No uniqueness against past words is attempted.
	GenerateWord(ctx context.Context) (string, error)

	// DefineWord produces a short fictional meaning for word.
	DefineWord(ctx context.Context, word string) (string, error)

	// GenerateImage renders an illustration for word and returns the
	// raw image bytes.
	GenerateImage(ctx context.Context, word string) ([]byte, error)

	// Summarize distills a day's submission pool into an ordered list of
	// winning definitions. Callers must not invoke it with an empty pool.
	Summarize(ctx context.Context, word string, submissions []string) ([]string, error)
}
