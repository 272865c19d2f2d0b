// Package talents implements the per-run talent tree: three branches of
// five tiers, each node rankable up to MaxRank with points earned by leveling.
package talents

// MaxRank is the highest rank of any node.
const MaxRank = 3

// Branch groups nodes into one prerequisite chain.
type Branch string

const (
	BranchOffense Branch = "offense"
	BranchDefense Branch = "defense"
	BranchUtility Branch = "utility"
)

// Branches lists branches in display order.
var Branches = []Branch{BranchOffense, BranchDefense, BranchUtility}

// Node is one talent; Tier 0 has no prerequisite.
type Node struct {
	ID          string
	Name        string
	Branch      Branch
	Tier        int
	Description string
	PerRank     float64
	apply       func(m *Mods, v float64)
}

var nodes = []Node{
	{"sharpened_edge", "Sharpened Edge", BranchOffense, 0, "+5% damage per rank", 0.05, func(m *Mods, v float64) { m.DamageMultiplier *= 1 + v }},
	{"keen_eye", "Keen Eye", BranchOffense, 1, "+3% crit chance per rank", 0.03, func(m *Mods, v float64) { m.CritChance += v }},
	{"flurry", "Flurry", BranchOffense, 2, "+6% attack speed per rank", 0.06, func(m *Mods, v float64) { m.AttackSpeedMultiplier *= 1 + v }},
	{"executioner", "Executioner", BranchOffense, 3, "+10% crit damage per rank", 0.10, func(m *Mods, v float64) { m.CritDamageMultiplier *= 1 + v }},
	{"bloodlust", "Bloodlust", BranchOffense, 4, "+2% lifesteal per rank", 0.02, func(m *Mods, v float64) { m.Lifesteal += v }},

	{"thick_hide", "Thick Hide", BranchDefense, 0, "+8% max HP per rank", 0.08, func(m *Mods, v float64) { m.MaxHPMultiplier *= 1 + v }},
	{"iron_guard", "Iron Guard", BranchDefense, 1, "-5% damage taken per rank", 0.05, func(m *Mods, v float64) { m.DamageTakenMultiplier *= 1 - v }},
	{"regrowth", "Regrowth", BranchDefense, 2, "+0.5 HP regen per second per rank", 0.5, func(m *Mods, v float64) { m.RegenPerSecond += v }},
	{"bulwark", "Bulwark", BranchDefense, 3, "+10% shield strength per rank", 0.10, func(m *Mods, v float64) { m.ShieldMultiplier *= 1 + v }},
	{"last_stand", "Last Stand", BranchDefense, 4, "+4% dodge chance per rank", 0.04, func(m *Mods, v float64) { m.DodgeChance += v }},

	{"fleet_foot", "Fleet Foot", BranchUtility, 0, "+4% move speed per rank", 0.04, func(m *Mods, v float64) { m.MoveSpeedMultiplier *= 1 + v }},
	{"magnetism", "Magnetism", BranchUtility, 1, "+15% pickup radius per rank", 0.15, func(m *Mods, v float64) { m.PickupRadiusMultiplier *= 1 + v }},
	{"scholar", "Scholar", BranchUtility, 2, "+6% XP gain per rank", 0.06, func(m *Mods, v float64) { m.XPMultiplier *= 1 + v }},
	{"prospector", "Prospector", BranchUtility, 3, "+8% coin gain per rank", 0.08, func(m *Mods, v float64) { m.CoinMultiplier *= 1 + v }},
	{"quick_hands", "Quick Hands", BranchUtility, 4, "-5% ability cooldown per rank", 0.05, func(m *Mods, v float64) { m.CooldownMultiplier *= 1 - v }},
}

var nodeByID = func() map[string]Node {
	m := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		m[n.ID] = n
	}
	return m
}()

// State is the talent allocation of one run.
type State struct {
	Ranks  map[string]int
	Points int
}

// NewState returns an empty allocation with no points.
func NewState() *State {
	return &State{Ranks: make(map[string]int)}
}

// Nodes returns every node, grouped by branch then tier.
func Nodes() []Node {
	out := make([]Node, len(nodes))
	copy(out, nodes)
	return out
}

// LookupNode returns the node with id.
func LookupNode(id string) (Node, bool) {
	n, ok := nodeByID[id]
	return n, ok
}

// NodesForBranch returns the nodes of b ordered by tier.
func NodesForBranch(b Branch) []Node {
	var out []Node
	for _, n := range nodes {
		if n.Branch == b {
			out = append(out, n)
		}
	}
	return out
}

func nodeAt(b Branch, tier int) (Node, bool) {
	for _, n := range nodes {
		if n.Branch == b && n.Tier == tier {
			return n, true
		}
	}
	return Node{}, false
}

// SpentPoints sums every allocated rank.
func SpentPoints(s *State) int {
	total := 0
	for _, r := range s.Ranks {
		total += r
	}
	return total
}

// CanUpgradeNode reports whether id can gain a rank now.
func CanUpgradeNode(s *State, id string) bool {
	if s == nil || s.Points <= 0 {
		return false
	}
	n, ok := nodeByID[id]
	if !ok || s.Ranks[id] >= MaxRank {
		return false
	}
	if n.Tier > 0 {
		prev, ok := nodeAt(n.Branch, n.Tier-1)
		if !ok || s.Ranks[prev.ID] < 1 {
			return false
		}
	}
	return true
}

// UpgradeNode spends one point on id. Returns false if not allowed.
func UpgradeNode(s *State, id string) bool {
	if !CanUpgradeNode(s, id) {
		return false
	}
	s.Points--
	s.Ranks[id]++
	return true
}

// GrantPoints adds n points to the pool.
func GrantPoints(s *State, n int) {
	if n > 0 {
		s.Points += n
	}
}

// TalentPointsForLevel is the total number of points earnable by level.
func TalentPointsForLevel(level int) int {
	if level <= 0 {
		return 0
	}
	return level / 2
}

// PointsEarnedBetween returns the points to grant when leveling from
// oldLevel to newLevel.
func PointsEarnedBetween(oldLevel, newLevel int) int {
	d := TalentPointsForLevel(newLevel) - TalentPointsForLevel(oldLevel)
	if d < 0 {
		return 0
	}
	return d
}
