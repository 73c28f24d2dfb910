package consensus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticProvider struct {
	name  string
	picks []string
	err   error
	delay time.Duration
	calls int
}

func (s *staticProvider) Name() string { return s.name }

func (s *staticProvider) Recommend(ctx context.Context, prompt Prompt) ([]string, error) {
	s.calls++
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.picks, s.err
}

func TestPanelTallyCountsVotes(t *testing.T) {
	panel := NewPanel([]Provider{
		&staticProvider{name: "gpt", picks: []string{"Synthesia", "HeyGen", "Synthesia"}},
		&staticProvider{name: "claude", picks: []string{"Synthesia", "Colossyan"}},
		&staticProvider{name: "gemini", picks: []string{"HeyGen"}},
	}, time.Second)

	tally := panel.Tally(context.Background(), Prompt{Budget: "enterprise"})

	assert.Equal(t, 3, tally.Total)
	assert.Equal(t, 3, tally.Responded)
	assert.Empty(t, tally.Failed)
	assert.Equal(t, 2, tally.Votes["Synthesia"])
	assert.Equal(t, 2, tally.Votes["HeyGen"])
	assert.Equal(t, 1, tally.Votes["Colossyan"])
	assert.Equal(t, "2/3 AIs recommend", tally.Label("Synthesia"))
	assert.Equal(t, "0/3 AIs recommend", tally.Label("Pipio"))
}

func TestPanelIsolatesFailures(t *testing.T) {
	panel := NewPanel([]Provider{
		&staticProvider{name: "gpt", picks: []string{"Fliki"}},
		&staticProvider{name: "claude", err: errors.New("upstream 503")},
		&staticProvider{name: "gemini", picks: []string{"VEED"}, delay: 500 * time.Millisecond},
	}, 50*time.Millisecond)

	start := time.Now()
	tally := panel.Tally(context.Background(), Prompt{})

	assert.Less(t, time.Since(start), 400*time.Millisecond)
	assert.Equal(t, 1, tally.Responded)
	assert.ElementsMatch(t, []string{"claude", "gemini"}, tally.Failed)
	assert.Equal(t, 1, tally.Votes["Fliki"])
	assert.Zero(t, tally.Votes["VEED"])
}

func TestPanelBreakerOpensAfterRepeatedFailures(t *testing.T) {
	failing := &staticProvider{name: "gpt", err: errors.New("boom")}
	panel := NewPanel([]Provider{failing}, time.Second)

	for i := 0; i < breakerConsecutiveFailures; i++ {
		panel.Tally(context.Background(), Prompt{})
	}
	require.Equal(t, breakerConsecutiveFailures, failing.calls)

	tally := panel.Tally(context.Background(), Prompt{})
	assert.Equal(t, breakerConsecutiveFailures, failing.calls, "open breaker should short-circuit the provider")
	assert.Equal(t, []string{"gpt"}, tally.Failed)
}

func TestNewProvidersPlaceholders(t *testing.T) {
	providers, err := NewProviders([]string{"GPT", " claude ", "gemini"})
	require.NoError(t, err)
	require.Len(t, providers, 3)
	assert.Equal(t, "gpt", providers[0].Name())

	_, err = providers[1].Recommend(context.Background(), Prompt{})
	assert.ErrorIs(t, err, ErrNotImplemented)

	tally := NewPanel(providers, time.Second).Tally(context.Background(), Prompt{})
	assert.Zero(t, tally.Responded)
	assert.Len(t, tally.Failed, 3)
}

func TestNewProvidersRejectsUnknown(t *testing.T) {
	_, err := NewProviders([]string{"gpt", "llama"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
