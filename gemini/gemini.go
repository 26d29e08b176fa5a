// Package gemini provides a lumen.Captioner backed by the Gemini API through
// google.golang.org/genai.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/phanxgames/lumen"
)

// DefaultModel is the model used when Config.Model is empty.
const DefaultModel = "gemini-3-flash-preview"

// EnvAPIKey is the environment variable NewFromEnv reads the credential from.
const EnvAPIKey = "API_KEY"

// ErrNoAPIKey is returned when no credential is configured.
var ErrNoAPIKey = errors.New("gemini: no API key")

// Config configures a Captioner.
type Config struct {
	APIKey string
	// Model defaults to DefaultModel.
	Model string
}

// generator is the slice of the genai client a Captioner needs.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Captioner generates chapter captions with a Gemini model.
type Captioner struct {
	models generator
	model  string
}

// New creates a Captioner. It fails only when the key is missing or the
// client cannot be constructed; no request is made.
func New(ctx context.Context, cfg Config) (*Captioner, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" || key == "undefined" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return newCaptioner(client.Models, cfg.Model), nil
}

func newCaptioner(models generator, model string) *Captioner {
	if model == "" {
		model = DefaultModel
	}
	return &Captioner{models: models, model: model}
}

// NewFromEnv creates a Captioner from the API_KEY environment variable. When
// the key is absent or the client fails, it prints a soft warning and returns
// nil, which lumen treats as "no captioner" and answers with its fallback.
func NewFromEnv(ctx context.Context) lumen.Captioner {
	c, err := New(ctx, Config{APIKey: os.Getenv(EnvAPIKey)})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[lumen] warning: caption service disabled: %v\n", err)
		return nil
	}
	return c
}

// Caption implements lumen.Captioner. The title is already part of prompt;
// it is only used to label errors.
func (c *Captioner) Caption(ctx context.Context, title, prompt string) (string, error) {
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini: caption %q: %w", title, err)
	}
	if resp == nil {
		return "", fmt.Errorf("gemini: caption %q: empty response", title)
	}
	return resp.Text(), nil
}
