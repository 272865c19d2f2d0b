package meta

// MaxPerkLevel is the highest level any perk can reach.
const MaxPerkLevel = 10

// perkCosts is the shard price of each level, index 0 buys level 1.
var perkCosts = [MaxPerkLevel]int{2, 2, 3, 3, 4, 4, 5, 5, 6, 6}

// Perk describes one levelable permanent buff.
type Perk struct {
	ID          string
	Name        string
	Description string
	PerLevel    float64 // fractional bonus per level
}

// Perk ids.
const (
	PerkVitality = "vitality"
	PerkMight    = "might"
	PerkHaste    = "haste"
	PerkWisdom   = "wisdom"
)

// Perks lists every perk in menu order.
var Perks = []Perk{
	{PerkVitality, "Vitality", "+5% max HP per level", 0.05},
	{PerkMight, "Might", "+4% damage per level", 0.04},
	{PerkHaste, "Haste", "+2% move speed per level", 0.02},
	{PerkWisdom, "Wisdom", "+5% XP gain per level", 0.05},
}

// LookupPerk returns the perk with id.
func LookupPerk(id string) (Perk, bool) {
	for _, p := range Perks {
		if p.ID == id {
			return p, true
		}
	}
	return Perk{}, false
}

// PerkModifiers is the stat bundle perks contribute to a run.
type PerkModifiers struct {
	HPMultiplier     float64
	DamageMultiplier float64
	SpeedMultiplier  float64
	XPMultiplier     float64
}

// PerkLevel returns the current level of id, or 0.
func (s *Store) PerkLevel(id string) int {
	return s.state.MetaPerks[id]
}

// NextCost returns the price of the next level, or -1 when maxed or unknown.
func (s *Store) NextCost(id string) int {
	if _, ok := LookupPerk(id); !ok {
		return -1
	}
	level := s.PerkLevel(id)
	if level >= MaxPerkLevel {
		return -1
	}
	return perkCosts[level]
}

// IsMaxed reports whether id is at MaxPerkLevel.
func (s *Store) IsMaxed(id string) bool {
	return s.PerkLevel(id) >= MaxPerkLevel
}

// CanUpgrade reports whether the next level of id is affordable.
func (s *Store) CanUpgrade(id string) bool {
	cost := s.NextCost(id)
	return cost >= 0 && s.AvailableShards() >= cost
}

// UpgradePerk buys one level of id. Returns false without changing anything
// when the perk is maxed, unknown or unaffordable.
func (s *Store) UpgradePerk(id string) bool {
	if !s.CanUpgrade(id) {
		return false
	}
	s.state.SpentCoreShards += s.NextCost(id)
	s.state.MetaPerks[id]++
	s.Save()
	return true
}

// ComputePerkModifiers derives the perk bundle from s.
func ComputePerkModifiers(s State) PerkModifiers {
	bonus := func(id string) float64 {
		p, _ := LookupPerk(id)
		return 1 + float64(s.MetaPerks[id])*p.PerLevel
	}
	return PerkModifiers{
		HPMultiplier:     bonus(PerkVitality),
		DamageMultiplier: bonus(PerkMight),
		SpeedMultiplier:  bonus(PerkHaste),
		XPMultiplier:     bonus(PerkWisdom),
	}
}

// PerkModifiers computes the perk bundle of the live state.
func (s *Store) PerkModifiers() PerkModifiers {
	return ComputePerkModifiers(s.state)
}
