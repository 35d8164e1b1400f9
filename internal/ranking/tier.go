package ranking

const (
	// MaxRank is the number of displayable tiers. Anything above collapses
	// into the terminal Legend tier.
	MaxRank = 10

	// MaxDifficulty is the number of difficulty tiers in the question catalog.
	MaxDifficulty = 15
)

// Visual holds rendering hints for a tier. The leveling code never reads it.
type Visual struct {
	Icon         string `json:"icon"`
	GradientFrom string `json:"gradient_from"`
	GradientTo   string `json:"gradient_to"`
	Accent       string `json:"accent"`
}

// Tier is a named rank shown to students and teachers.
type Tier struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Visual Visual `json:"visual"`
}

// IsLegend reports whether the tier is the terminal overflow tier.
func (t Tier) IsLegend() bool {
	return t.Rank == MaxRank
}

// Label returns the icon followed by the display name.
func (t Tier) Label() string {
	if t.Visual.Icon == "" {
		return t.Name
	}
	return t.Visual.Icon + " " + t.Name
}

// tiers is indexed by rank-1.
var tiers = [MaxRank]Tier{
	{Rank: 1, Name: "Rookie", Visual: Visual{Icon: "🌱", GradientFrom: "#A3E635", GradientTo: "#4D7C0F", Accent: "#65A30D"}},
	{Rank: 2, Name: "Apprentice", Visual: Visual{Icon: "📗", GradientFrom: "#34D399", GradientTo: "#047857", Accent: "#10B981"}},
	{Rank: 3, Name: "Explorer", Visual: Visual{Icon: "🧭", GradientFrom: "#2DD4BF", GradientTo: "#0F766E", Accent: "#14B8A6"}},
	{Rank: 4, Name: "Reader", Visual: Visual{Icon: "📖", GradientFrom: "#38BDF8", GradientTo: "#0369A1", Accent: "#0EA5E9"}},
	{Rank: 5, Name: "Scholar", Visual: Visual{Icon: "🎓", GradientFrom: "#818CF8", GradientTo: "#4338CA", Accent: "#6366F1"}},
	{Rank: 6, Name: "Linguist", Visual: Visual{Icon: "🗣️", GradientFrom: "#A78BFA", GradientTo: "#6D28D9", Accent: "#8B5CF6"}},
	{Rank: 7, Name: "Wordsmith", Visual: Visual{Icon: "🖋️", GradientFrom: "#E879F9", GradientTo: "#A21CAF", Accent: "#D946EF"}},
	{Rank: 8, Name: "Sage", Visual: Visual{Icon: "🦉", GradientFrom: "#FB7185", GradientTo: "#BE123C", Accent: "#F43F5E"}},
	{Rank: 9, Name: "Grandmaster", Visual: Visual{Icon: "👑", GradientFrom: "#FB923C", GradientTo: "#C2410C", Accent: "#F97316"}},
	{Rank: 10, Name: "Legend", Visual: Visual{Icon: "🏆", GradientFrom: "#FDE047", GradientTo: "#CA8A04", Accent: "#EAB308"}},
}

// LevelToRank maps a catalog difficulty level to a rank. Levels above
// MaxRank collapse into the Legend tier. Non-positive levels are passed
// through unchanged; callers are expected to supply levels >= 1.
func LevelToRank(level int) int {
	if level > MaxRank {
		return MaxRank
	}
	return level
}

// Info returns the tier for a rank, clamping out-of-range values to the
// nearest boundary tier.
func Info(rank int) Tier {
	return tiers[clampRank(rank)-1]
}

// AllTiers returns every tier in ascending rank order.
func AllTiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers[:])
	return out
}

func clampRank(rank int) int {
	if rank < 1 {
		return 1
	}
	if rank > MaxRank {
		return MaxRank
	}
	return rank
}
