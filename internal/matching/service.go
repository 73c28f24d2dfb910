package matching

import (
	"context"
	"fmt"
	"time"

	"dmappex-backend/internal/consensus"
	"dmappex-backend/internal/shared/metrics"
	"dmappex-backend/internal/shared/telemetry"
)

// Panel is the optional multi-provider consensus collaborator.
type Panel interface {
	Size() int
	Tally(ctx context.Context, prompt consensus.Prompt) consensus.Tally
}

// Service runs match requests through the engine and, when configured, the
// consensus panel.
type Service struct {
	Engine *Engine
	Panel  Panel
}

// NewService constructs a Service. panel may be nil.
func NewService(engine *Engine, panel Panel) *Service {
	return &Service{Engine: engine, Panel: panel}
}

// Calculate produces the ranked recommendation for req. Any fault raised
// while computing is returned as an error carrying the original message.
func (s *Service) Calculate(ctx context.Context, req Request) (resp Response, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%v", rec)
		}
	}()

	if s.Engine == nil {
		return Response{}, ErrEngineMissing
	}
	if s.Engine.Catalog == nil {
		return Response{}, ErrCatalogMissing
	}

	start := time.Now()
	resp = s.Engine.Match(req)
	if s.Panel != nil && s.Panel.Size() > 0 {
		s.applyConsensus(ctx, req, &resp)
	}

	top := 0
	if len(resp.Platforms) > 0 {
		top = resp.Platforms[0].MatchScore
	}
	metrics.ObserveMatch(time.Since(start), resp.TotalEvaluated, top)
	return resp, nil
}

// applyConsensus relabels the top platforms from real provider votes. With
// no provider answering, the score-derived labels stay.
func (s *Service) applyConsensus(ctx context.Context, req Request, resp *Response) {
	tally := s.Panel.Tally(ctx, consensus.Prompt{
		Budget:        req.Budget,
		UseCase:       req.UseCase,
		TeamSize:      req.TeamSize,
		MonthlyVolume: req.MonthlyVolume,
		Features:      req.Features,
		Priorities:    req.Priorities,
		Candidates:    s.Engine.CandidatePool(req.Budget),
	})
	if tally.Responded == 0 {
		telemetry.Warn("consensus.degraded", map[string]any{
			"providers": tally.Total,
			"failed":    tally.Failed,
		})
		return
	}
	for i := range resp.Platforms {
		resp.Platforms[i].AIConsensus = tally.Label(resp.Platforms[i].Name)
	}
}
