package consensus

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"

	"dmappex-backend/internal/shared/metrics"
	"dmappex-backend/internal/shared/telemetry"
)

const (
	breakerMaxRequests         = 1
	breakerInterval            = time.Minute
	breakerTimeout             = 30 * time.Second
	breakerConsecutiveFailures = 5
)

// Tally is the joined outcome of one fan-out.
type Tally struct {
	// Votes counts, per platform, the providers that recommended it.
	Votes map[string]int
	// Total is the number of providers asked.
	Total int
	// Responded is the number of providers that answered in time.
	Responded int
	// Failed names the providers that errored, timed out or were short-circuited.
	Failed []string
}

// Label renders the agreement for a platform, e.g. "2/3 AIs recommend".
func (t Tally) Label(platform string) string {
	return fmt.Sprintf("%d/%d AIs recommend", t.Votes[platform], t.Total)
}

type member struct {
	provider Provider
	breaker  *gobreaker.CircuitBreaker[[]string]
}

// Panel fans a prompt out to every provider and joins the answers. A failing
// provider lowers the tally instead of failing the call.
type Panel struct {
	members []member
	timeout time.Duration
}

// NewPanel wraps each provider in its own circuit breaker.
func NewPanel(providers []Provider, timeout time.Duration) *Panel {
	p := &Panel{timeout: timeout, members: make([]member, 0, len(providers))}
	for _, prov := range providers {
		name := prov.Name()
		metrics.SetConsensusCircuitState(name, stateValue(gobreaker.StateClosed))
		cb := gobreaker.NewCircuitBreaker[[]string](gobreaker.Settings{
			Name:        name,
			MaxRequests: breakerMaxRequests,
			Interval:    breakerInterval,
			Timeout:     breakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerConsecutiveFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				telemetry.Warn("consensus.circuit", map[string]any{
					"provider": name,
					"from":     from.String(),
					"to":       to.String(),
				})
				metrics.SetConsensusCircuitState(name, stateValue(to))
			},
		})
		p.members = append(p.members, member{provider: prov, breaker: cb})
	}
	return p
}

// Size reports the number of providers on the panel.
func (p *Panel) Size() int {
	return len(p.members)
}

// Tally asks every provider concurrently and waits for all of them or the
// panel timeout, whichever comes first.
func (p *Panel) Tally(ctx context.Context, prompt Prompt) Tally {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	picks := make([][]string, len(p.members))
	errs := make([]error, len(p.members))

	var g errgroup.Group
	for i, m := range p.members {
		g.Go(func() error {
			picks[i], errs[i] = m.breaker.Execute(func() ([]string, error) {
				return ask(ctx, m.provider, prompt)
			})
			return nil
		})
	}
	_ = g.Wait()

	tally := Tally{Votes: make(map[string]int), Total: len(p.members)}
	for i, m := range p.members {
		name := m.provider.Name()
		if err := errs[i]; err != nil {
			tally.Failed = append(tally.Failed, name)
			metrics.IncConsensusProvider(name, resultFor(err))
			continue
		}
		metrics.IncConsensusProvider(name, "success")
		tally.Responded++
		seen := make(map[string]struct{}, len(picks[i]))
		for _, platform := range picks[i] {
			if _, dup := seen[platform]; dup {
				continue
			}
			seen[platform] = struct{}{}
			tally.Votes[platform]++
		}
	}
	return tally
}

type answer struct {
	picks []string
	err   error
}

// ask bounds a provider call by ctx even if the provider ignores it.
func ask(ctx context.Context, prov Provider, prompt Prompt) ([]string, error) {
	ch := make(chan answer, 1)
	go func() {
		picks, err := prov.Recommend(ctx, prompt)
		ch <- answer{picks: picks, err: err}
	}()
	select {
	case a := <-ch:
		return a.picks, a.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", prov.Name(), ctx.Err())
	}
}

func resultFor(err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "rejected"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "failure"
	}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
