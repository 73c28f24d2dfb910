package consensus

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotImplemented is returned by placeholder providers.
var ErrNotImplemented = errors.New("consensus provider not implemented")

// ErrUnknownProvider is returned for provider names with no implementation.
var ErrUnknownProvider = errors.New("unknown consensus provider")

// Prompt carries the user's requirements and the candidate platforms a
// provider may choose from.
type Prompt struct {
	Budget        string
	UseCase       string
	TeamSize      string
	MonthlyVolume string
	Features      []string
	Priorities    map[string]float64
	Candidates    []string
}

// Provider is one external reasoning service asked for recommendations.
type Provider interface {
	Name() string
	Recommend(ctx context.Context, prompt Prompt) ([]string, error)
}

// PlaceholderProvider is a stub until provider wiring is added.
type PlaceholderProvider struct {
	ProviderName string
}

// Name returns the provider name.
func (p PlaceholderProvider) Name() string {
	return p.ProviderName
}

// Recommend returns ErrNotImplemented.
func (p PlaceholderProvider) Recommend(ctx context.Context, prompt Prompt) ([]string, error) {
	_ = ctx
	_ = prompt
	return nil, fmt.Errorf("%s: %w", p.ProviderName, ErrNotImplemented)
}

var knownProviders = []string{"gpt", "claude", "gemini"}

// NewProviders resolves configured provider names.
func NewProviders(names []string) ([]Provider, error) {
	out := make([]Provider, 0, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if !isKnown(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, raw)
		}
		out = append(out, PlaceholderProvider{ProviderName: name})
	}
	return out, nil
}

func isKnown(name string) bool {
	for _, k := range knownProviders {
		if k == name {
			return true
		}
	}
	return false
}
