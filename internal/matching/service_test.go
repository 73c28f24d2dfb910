package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dmappex-backend/internal/consensus"
)

type fakePanel struct {
	tally  consensus.Tally
	prompt consensus.Prompt
	calls  int
}

func (f *fakePanel) Size() int { return f.tally.Total }

func (f *fakePanel) Tally(ctx context.Context, prompt consensus.Prompt) consensus.Tally {
	f.calls++
	f.prompt = prompt
	return f.tally
}

func TestCalculateWithoutPanel(t *testing.T) {
	svc := NewService(zeroJitterEngine(), nil)

	resp, err := svc.Calculate(context.Background(), Request{Budget: BudgetProfessional, Priorities: map[string]float64{"price": 0.9}})
	require.NoError(t, err)
	assert.Equal(t, 7, resp.TotalEvaluated)
	assert.Len(t, resp.Platforms, 3)
}

func TestCalculateRecoversFromPanic(t *testing.T) {
	svc := NewService(&Engine{Catalog: DefaultCatalog()}, nil)

	_, err := svc.Calculate(context.Background(), Request{Budget: BudgetFriendly})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil pointer")
}

func TestCalculateMissingCollaborators(t *testing.T) {
	_, err := NewService(nil, nil).Calculate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrEngineMissing)

	_, err = NewService(&Engine{Jitter: NewSequenceJitter()}, nil).Calculate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrCatalogMissing)
}

func TestCalculateUsesPanelVotes(t *testing.T) {
	panel := &fakePanel{tally: consensus.Tally{
		Votes:     map[string]int{"Colossyan": 3, "Hour One": 1},
		Total:     3,
		Responded: 2,
	}}
	svc := NewService(zeroJitterEngine(), panel)
	req := Request{Budget: BudgetEnterprise, UseCase: UseCaseTraining, TeamSize: TeamLargeTeam, MonthlyVolume: VolumeHigh, Features: []string{"avatars"}}

	resp, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, 1, panel.calls)
	assert.Len(t, panel.prompt.Candidates, 10)
	assert.Equal(t, []string{"avatars"}, panel.prompt.Features)
	assert.Equal(t, "3/3 AIs recommend", resp.Platforms[0].AIConsensus)
	assert.Equal(t, "1/3 AIs recommend", resp.Platforms[1].AIConsensus)
	assert.Equal(t, "0/3 AIs recommend", resp.Platforms[2].AIConsensus)
}

func TestCalculateKeepsScoreLabelsWhenPanelSilent(t *testing.T) {
	panel := &fakePanel{tally: consensus.Tally{Total: 3, Failed: []string{"gpt", "claude", "gemini"}}}
	svc := NewService(zeroJitterEngine(), panel)

	resp, err := svc.Calculate(context.Background(), Request{Budget: BudgetProfessional})
	require.NoError(t, err)
	for _, p := range resp.Platforms {
		assert.Equal(t, ConsensusLabel(p.MatchScore), p.AIConsensus)
	}
}
