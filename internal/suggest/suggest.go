// Package suggest asks an OpenAI-compatible model for icons matching a
// free-text description. Answers are filtered to names the catalog knows.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/Rorical/iconx/internal/catalog"
	"github.com/Rorical/iconx/internal/config"
)

// ErrNotConfigured means no profile with an API key is active.
var ErrNotConfigured = errors.New("no AI profile configured, add one with `iconx profile add`")

// Completer is the part of *openai.Client the suggester uses.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Suggester struct {
	client  Completer
	model   string
	catalog *catalog.Catalog
	log     *zerolog.Logger
}

func New(client Completer, model string, cat *catalog.Catalog, log *zerolog.Logger) *Suggester {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Suggester{client: client, model: model, catalog: cat, log: log}
}

// NewFromConfig builds a client from the active profile.
func NewFromConfig(cfg *config.Config, cat *catalog.Catalog, log *zerolog.Logger) (*Suggester, error) {
	if !cfg.HasAIProfile() {
		return nil, ErrNotConfigured
	}
	clientConfig := openai.DefaultConfig(cfg.GetAPIKey())
	if cfg.GetBaseURL() != "" {
		clientConfig.BaseURL = cfg.GetBaseURL()
	}
	return New(openai.NewClientWithConfig(clientConfig), cfg.GetModel(), cat, log), nil
}

// Suggest returns up to limit catalog icon names for description, best
// first. Names the model invents are dropped.
func (s *Suggester) Suggest(ctx context.Context, description string, limit int) ([]string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, errors.New("description is empty")
	}
	if limit <= 0 {
		limit = 5
	}

	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: s.systemPrompt(limit)},
			{Role: openai.ChatMessageRoleUser, Content: description},
		},
		Temperature: 0.2,
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no response choices returned")
	}

	answer := resp.Choices[0].Message.Content
	names := s.filter(parseNames(answer), limit)
	s.log.Debug().Str("description", description).Strs("names", names).Msg("suggest.done")
	return names, nil
}

func (s *Suggester) systemPrompt(limit int) string {
	var b strings.Builder
	b.WriteString("You pick icons from a fixed icon set. ")
	fmt.Fprintf(&b, "Reply with at most %d icon names from the list below, best match first, one per line, nothing else.\n\n", limit)
	for _, cat := range s.catalog.Categories() {
		fmt.Fprintf(&b, "%s: %s\n", cat.Name, strings.Join(cat.Icons, ", "))
	}
	return b.String()
}

func (s *Suggester) filter(candidates []string, limit int) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, limit)
	for _, c := range candidates {
		name, ok := s.catalog.Canonical(c)
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
		if len(out) == limit {
			break
		}
	}
	return out
}

// parseNames splits a model answer on lines and commas and strips list
// markers, quotes and code ticks.
func parseNames(answer string) []string {
	fields := strings.FieldsFunc(answer, func(r rune) bool {
		return r == '\n' || r == ','
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		f = strings.TrimLeft(f, "-*•0123456789.) ")
		f = strings.Trim(f, "`\"' ")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
