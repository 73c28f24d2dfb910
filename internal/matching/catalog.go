package matching

// Tier is a fixed platform category.
type Tier string

const (
	TierEnterprise  Tier = "enterprise"
	TierMidTier     Tier = "mid_tier"
	TierBudget      Tier = "budget"
	TierSpecialized Tier = "specialized"
)

// Catalog maps tiers to ordered platform names. It is never mutated after
// construction; accessors hand out copies.
type Catalog struct {
	tiers   map[Tier][]string
	members map[Tier]map[string]struct{}
}

var defaultCatalog = NewCatalog(map[Tier][]string{
	TierEnterprise:  {"Synthesia", "HeyGen", "Colossyan", "Hour One", "D-ID"},
	TierMidTier:     {"Pictory", "InVideo", "Elai", "Rephrase", "Yepic"},
	TierBudget:      {"Fliki", "Vidnoz", "Steve.ai", "VEED", "Lumen5"},
	TierSpecialized: {"Movio", "DeepBrain", "Avaturn", "Oxolo", "Pipio"},
})

// DefaultCatalog returns the built-in platform catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// NewCatalog copies the given tier table into a Catalog.
func NewCatalog(tiers map[Tier][]string) *Catalog {
	c := &Catalog{
		tiers:   make(map[Tier][]string, len(tiers)),
		members: make(map[Tier]map[string]struct{}, len(tiers)),
	}
	for tier, names := range tiers {
		c.tiers[tier] = append([]string(nil), names...)
		set := make(map[string]struct{}, len(names))
		for _, name := range names {
			set[name] = struct{}{}
		}
		c.members[tier] = set
	}
	return c
}

// Platforms returns the platforms of a tier in catalog order.
func (c *Catalog) Platforms(tier Tier) []string {
	return append([]string(nil), c.tiers[tier]...)
}

// head returns at most n platforms from the front of a tier.
func (c *Catalog) head(tier Tier, n int) []string {
	names := c.tiers[tier]
	if len(names) > n {
		names = names[:n]
	}
	return append([]string(nil), names...)
}

// Contains reports whether name is listed under tier.
func (c *Catalog) Contains(tier Tier, name string) bool {
	_, ok := c.members[tier][name]
	return ok
}
