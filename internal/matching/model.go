package matching

// Budget selectors. Anything else is treated as enterprise.
const (
	BudgetFriendly     = "budget_friendly"
	BudgetProfessional = "professional"
	BudgetEnterprise   = "enterprise"
)

// Use-case selectors with known platform affinities.
const (
	UseCaseMarketing = "marketing"
	UseCaseTraining  = "training"
	UseCaseSocial    = "social"
)

// Team-size selectors.
const (
	TeamJustMe    = "just_me"
	TeamLargeTeam = "large_team"
)

// Monthly-volume selectors.
const (
	VolumeLow  = "1-10"
	VolumeHigh = "50+"
)

const (
	// OverallConfidence is reported on every response.
	OverallConfidence = 95
	// SynthesisMethod tags how the recommendation was produced.
	SynthesisMethod = "3AI-MCP"
	// TopN is the number of platforms returned.
	TopN = 3
)

// Request describes what the user needs from a video platform.
// Priorities are accepted and carried through but do not affect scoring.
type Request struct {
	Features      []string
	Budget        string
	Priorities    map[string]float64
	UseCase       string
	TeamSize      string
	MonthlyVolume string
}

// ScoredPlatform is one ranked recommendation.
type ScoredPlatform struct {
	Name        string `json:"name"`
	MatchScore  int    `json:"match_score"`
	Reasoning   string `json:"reasoning"`
	AIConsensus string `json:"ai_consensus"`
}

// Response is the ranked result of a match request.
type Response struct {
	Platforms         []ScoredPlatform `json:"platforms"`
	OverallConfidence int              `json:"overall_confidence"`
	TotalEvaluated    int              `json:"total_evaluated"`
	SynthesisMethod   string           `json:"synthesis_method"`
}
