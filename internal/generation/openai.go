package generation

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"wordaday/internal/domain"
)

const (
	defaultBaseURL    = "https://api.openai.com"
	defaultModel      = "gpt-4o-mini"
	defaultImageModel = "dall-e-3"
	defaultImageSize  = "1024x1024"
	defaultTimeout    = 20 * time.Second
)

// Options configures the OpenAI-backed generator.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	ImageModel string
	ImageSize  string
	Timeout    time.Duration
}

// OpenAIClient implements Generator against the OpenAI HTTP API: chat
// completions for word, meaning and summary text, the images API for
// illustrations.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	model      string
	imageModel string
	imageSize  string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// NewOpenAIClient creates a generator from opts, filling in defaults for
// everything but the API key.
func NewOpenAIClient(opts Options, logger *zap.Logger) (*OpenAIClient, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.ImageModel == "" {
		opts.ImageModel = defaultImageModel
	}
	if opts.ImageSize == "" {
		opts.ImageSize = defaultImageSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	return &OpenAIClient{
		apiKey:     opts.APIKey,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		model:      opts.Model,
		imageModel: opts.ImageModel,
		imageSize:  opts.ImageSize,
		timeout:    opts.Timeout,
		httpClient: &http.Client{Timeout: opts.Timeout},
		logger:     logger,
	}, nil
}

const wordSystemPrompt = "You invent fictional words. Respond with exactly one made-up, " +
	"pronounceable word between 6 and 12 letters. No real words, no punctuation, " +
	"no explanation."

// GenerateWord asks the model for a fresh fictional word and normalizes
// the reply to the 6-12 letter shape.
func (c *OpenAIClient) GenerateWord(ctx context.Context) (string, error) {
	text, err := c.chat(ctx, wordSystemPrompt, "Invent a new word.")
	if err != nil {
		return "", err
	}

	word, err := domain.NormalizeWord(text)
	if err != nil {
		return "", fmt.Errorf("%w: unusable word %q", domain.ErrGenerationUnavailable, text)
	}
	return word, nil
}

// DefineWord asks the model for a short invented meaning of word.
func (c *OpenAIClient) DefineWord(ctx context.Context, word string) (string, error) {
	system := "You write dictionary entries for fictional words. Respond with a " +
		"single playful definition of at most two sentences. No preamble."
	text, err := c.chat(ctx, system, fmt.Sprintf("Define the word %q.", word))
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("%w: empty definition", domain.ErrGenerationUnavailable)
	}
	return text, nil
}

// GenerateImage renders an illustration for word via the images API.
func (c *OpenAIClient) GenerateImage(ctx context.Context, word string) ([]byte, error) {
	prompt := fmt.Sprintf(
		"A whimsical, colorful illustration evoking the invented word %q. No text or letters in the image.",
		word,
	)

	payload := map[string]any{
		"model":           c.imageModel,
		"prompt":          prompt,
		"n":               1,
		"size":            c.imageSize,
		"response_format": "b64_json",
	}

	var resp struct {
		Data []struct {
			B64JSON string `json:"b64_json"`
		} `json:"data"`
	}
	if err := c.post(ctx, "/v1/images/generations", payload, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, fmt.Errorf("%w: image response contained no data", domain.ErrGenerationUnavailable)
	}

	img, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", domain.ErrGenerationUnavailable, err)
	}
	return img, nil
}

// Summarize asks the model to pick the winning definitions from a day's
// submission pool, one per line.
func (c *OpenAIClient) Summarize(ctx context.Context, word string, submissions []string) ([]string, error) {
	system := "You judge a game where players invent meanings for a fictional word. " +
		"Pick up to three winning definitions: the funniest, most creative entries. " +
		"Respond with the winning definitions only, one per line, best first. " +
		"You may lightly clean up spelling but keep each player's idea intact."

	var b strings.Builder
	fmt.Fprintf(&b, "The word was %q. The submitted definitions:\n", word)
	for i, s := range submissions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}

	text, err := c.chat(ctx, system, b.String())
	if err != nil {
		return nil, err
	}

	defs := parseDefinitions(text)
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: summary contained no definitions", domain.ErrGenerationUnavailable)
	}
	return defs, nil
}

// chat runs a single chat-completion round trip and returns the trimmed
// message content.
func (c *OpenAIClient) chat(ctx context.Context, system, user string) (string, error) {
	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}

	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := c.post(ctx, "/v1/chat/completions", payload, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no choices", domain.ErrGenerationUnavailable)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (c *OpenAIClient) post(ctx context.Context, path string, payload any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", domain.ErrGenerationUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrGenerationUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGenerationUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrGenerationUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Generation request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: %s returned status %d", domain.ErrGenerationUnavailable, path, resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrGenerationUnavailable, err)
	}
	return nil
}

// parseDefinitions splits model output into one definition per line,
// stripping list markers and surrounding quotes.
func parseDefinitions(text string) []string {
	var defs []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•")
		for i, r := range line {
			if r >= '0' && r <= '9' {
				continue
			}
			if r == '.' || r == ')' {
				line = line[i+1:]
			}
			break
		}
		line = strings.Trim(strings.TrimSpace(line), `"`)
		if line != "" {
			defs = append(defs, line)
		}
	}
	return defs
}
