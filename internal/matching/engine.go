package matching

import (
	"sort"
	"strings"
)

const (
	baseScore = 75
	minScore  = 60
	maxScore  = 98

	tierBonus    = 10
	useCaseBonus = 8
	teamBonus    = 5
	volumeBonus  = 5

	// consensusThreshold is the score above which all three models are said to agree.
	consensusThreshold = 90
)

// useCaseAffinity lists the platforms known to fit each use case. Some names
// are not in the catalog; they simply never match.
var useCaseAffinity = map[string]map[string]struct{}{
	UseCaseMarketing: setOf("Synthesia", "Pictory", "InVideo", "Promo"),
	UseCaseTraining:  setOf("Colossyan", "Hour One", "Elai", "DeepBrain"),
	UseCaseSocial:    setOf("Fliki", "Steve.ai", "VEED", "Lumen5"),
}

var useCaseReason = map[string]string{
	UseCaseMarketing: "Strong marketing video capabilities",
	UseCaseTraining:  "Excellent for educational and training content",
	UseCaseSocial:    "Optimized for social media content creation",
}

const (
	reasonEnterprise = "Enterprise-grade features with full team collaboration"
	reasonMidTier    = "Balanced features and pricing for growing teams"
	reasonBudget     = "Cost-effective solution for individual creators"
	reasonHighVolume = "Handles high-volume production efficiently"
)

// Engine scores and ranks catalog platforms against a request.
type Engine struct {
	Catalog *Catalog
	Jitter  JitterSource
}

// NewEngine constructs an Engine. Nil arguments fall back to the default
// catalog and a randomly seeded jitter source.
func NewEngine(catalog *Catalog, jitter JitterSource) *Engine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if jitter == nil {
		jitter = NewRandJitter(0)
	}
	return &Engine{Catalog: catalog, Jitter: jitter}
}

// BudgetTier maps a budget selector to the tier it targets.
func BudgetTier(budget string) Tier {
	switch budget {
	case BudgetFriendly:
		return TierBudget
	case BudgetProfessional:
		return TierMidTier
	default:
		return TierEnterprise
	}
}

// CandidatePool lists the platforms eligible for a budget. Entries are not
// deduplicated.
func (e *Engine) CandidatePool(budget string) []string {
	switch BudgetTier(budget) {
	case TierBudget:
		return append(e.Catalog.Platforms(TierBudget), e.Catalog.head(TierMidTier, 2)...)
	case TierMidTier:
		return append(e.Catalog.Platforms(TierMidTier), e.Catalog.head(TierEnterprise, 2)...)
	default:
		return append(e.Catalog.Platforms(TierEnterprise), e.Catalog.Platforms(TierSpecialized)...)
	}
}

// BaseScore is the deterministic part of a platform's score, before jitter
// and clamping.
func (e *Engine) BaseScore(platform string, req Request) int {
	score := baseScore

	if e.Catalog.Contains(BudgetTier(req.Budget), platform) {
		score += tierBonus
	}

	if affinity, ok := useCaseAffinity[req.UseCase]; ok {
		if _, hit := affinity[platform]; hit {
			score += useCaseBonus
		}
	}

	enterprise := e.Catalog.Contains(TierEnterprise, platform)
	budget := e.Catalog.Contains(TierBudget, platform)

	if (req.TeamSize == TeamLargeTeam && enterprise) || (req.TeamSize == TeamJustMe && budget) {
		score += teamBonus
	}
	if (req.MonthlyVolume == VolumeHigh && enterprise) || (req.MonthlyVolume == VolumeLow && budget) {
		score += volumeBonus
	}

	return score
}

// Score returns the jittered score clamped to [60, 98].
func (e *Engine) Score(platform string, req Request) int {
	return clamp(e.BaseScore(platform, req)+e.Jitter.Jitter(), minScore, maxScore)
}

// Explain builds the reasoning text for a platform. It may be empty for
// specialized platforms on requests with no recognised use case or volume.
func (e *Engine) Explain(platform string, req Request) string {
	reasons := make([]string, 0, 3)

	switch {
	case e.Catalog.Contains(TierEnterprise, platform):
		reasons = append(reasons, reasonEnterprise)
	case e.Catalog.Contains(TierMidTier, platform):
		reasons = append(reasons, reasonMidTier)
	case e.Catalog.Contains(TierBudget, platform):
		reasons = append(reasons, reasonBudget)
	}

	if reason, ok := useCaseReason[req.UseCase]; ok {
		reasons = append(reasons, reason)
	}

	if req.MonthlyVolume == VolumeHigh {
		reasons = append(reasons, reasonHighVolume)
	}

	return strings.Join(reasons, ". ")
}

// Rank scores every pool entry, orders them by score (pool order on ties)
// and keeps the top three with a consensus label attached.
func (e *Engine) Rank(pool []string, req Request) []ScoredPlatform {
	scored := make([]ScoredPlatform, 0, len(pool))
	for _, name := range pool {
		scored = append(scored, ScoredPlatform{
			Name:       name,
			MatchScore: e.Score(name, req),
			Reasoning:  e.Explain(name, req),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})
	if len(scored) > TopN {
		scored = scored[:TopN]
	}
	for i := range scored {
		scored[i].AIConsensus = ConsensusLabel(scored[i].MatchScore)
	}
	return scored
}

// Match runs the full pipeline for a request.
func (e *Engine) Match(req Request) Response {
	pool := e.CandidatePool(req.Budget)
	return Response{
		Platforms:         e.Rank(pool, req),
		OverallConfidence: OverallConfidence,
		TotalEvaluated:    len(pool),
		SynthesisMethod:   SynthesisMethod,
	}
}

// ConsensusLabel derives the agreement label from a score.
func ConsensusLabel(score int) string {
	if score > consensusThreshold {
		return "3/3 AIs recommend"
	}
	return "2/3 AIs recommend"
}

func clamp(v, lo, hi int) int {
	return min(hi, max(lo, v))
}

func setOf(items ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, item := range items {
		out[item] = struct{}{}
	}
	return out
}
