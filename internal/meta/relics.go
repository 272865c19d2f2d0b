package meta

// Relic is a permanent binary unlock with one modifier contribution.
type Relic struct {
	ID          string
	Name        string
	Description string
	apply       func(*RelicModifiers)
}

// Relic ids.
const (
	RelicScholarsTome   = "scholars_tome"
	RelicGiantsBane     = "giants_bane"
	RelicIronSkin       = "iron_skin"
	RelicSwiftBoots     = "swift_boots"
	RelicSpikeWard      = "spike_ward"
	RelicEmberWard      = "ember_ward"
	RelicPhoenixFeather = "phoenix_feather"
	RelicSageStone      = "sage_stone"
)

// Relics lists every relic in display order.
var Relics = []Relic{
	{RelicScholarsTome, "Scholar's Tome", "+10% XP gain", func(m *RelicModifiers) { m.XPMultiplier *= 1.10 }},
	{RelicGiantsBane, "Giant's Bane", "+15% damage to bosses", func(m *RelicModifiers) { m.BossDamageMultiplier *= 1.15 }},
	{RelicIronSkin, "Iron Skin", "-10% damage taken", func(m *RelicModifiers) { m.DamageTakenMultiplier *= 0.90 }},
	{RelicSwiftBoots, "Swift Boots", "+5% move speed", func(m *RelicModifiers) { m.SpeedMultiplier *= 1.05 }},
	{RelicSpikeWard, "Spike Ward", "-50% spike damage taken", func(m *RelicModifiers) { m.SpikeDamageTakenMultiplier *= 0.5 }},
	{RelicEmberWard, "Ember Ward", "-50% lava damage taken", func(m *RelicModifiers) { m.LavaDamageTakenMultiplier *= 0.5 }},
	{RelicPhoenixFeather, "Phoenix Feather", "Heal 15% HP on level up", func(m *RelicModifiers) { m.HealOnLevelUpPct = max(m.HealOnLevelUpPct, 0.15) }},
	{RelicSageStone, "Sage Stone", "Start each run with 50 XP", func(m *RelicModifiers) { m.StartingXPBonus = max(m.StartingXPBonus, 50) }},
}

// RelicModifiers is the folded contribution of every unlocked relic.
type RelicModifiers struct {
	XPMultiplier               float64
	BossDamageMultiplier       float64
	DamageTakenMultiplier      float64
	SpeedMultiplier            float64
	SpikeDamageTakenMultiplier float64
	LavaDamageTakenMultiplier  float64
	HealOnLevelUpPct           float64
	StartingXPBonus            int
}

func neutralRelicModifiers() RelicModifiers {
	return RelicModifiers{
		XPMultiplier:               1,
		BossDamageMultiplier:       1,
		DamageTakenMultiplier:      1,
		SpeedMultiplier:            1,
		SpikeDamageTakenMultiplier: 1,
		LavaDamageTakenMultiplier:  1,
	}
}

// IsKnownRelic reports whether id names a relic.
func IsKnownRelic(id string) bool {
	for _, r := range Relics {
		if r.ID == id {
			return true
		}
	}
	return false
}

// IsRelicUnlocked reports whether id is unlocked.
func (s *Store) IsRelicUnlocked(id string) bool {
	return s.state.RelicsUnlocked[id]
}

// UnlockedRelicCount counts unlocked known relics.
func (s *Store) UnlockedRelicCount() int {
	n := 0
	for _, r := range Relics {
		if s.state.RelicsUnlocked[r.ID] {
			n++
		}
	}
	return n
}

// AllRelicsUnlocked reports whether no relic remains locked.
func (s *Store) AllRelicsUnlocked() bool {
	return s.UnlockedRelicCount() == len(Relics)
}

// LockedRelicIDs returns locked relic ids in display order.
func (s *Store) LockedRelicIDs() []string {
	var ids []string
	for _, r := range Relics {
		if !s.state.RelicsUnlocked[r.ID] {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// UnlockRelic unlocks id and persists. Returns false if id is unknown or
// already unlocked.
func (s *Store) UnlockRelic(id string) bool {
	if !IsKnownRelic(id) || s.state.RelicsUnlocked[id] {
		return false
	}
	s.state.RelicsUnlocked[id] = true
	s.Save()
	return true
}

// ComputeRelicModifiers folds the unlocked relics of s into one bundle.
// Multiplicative fields multiply; flag fields keep the largest value.
func ComputeRelicModifiers(s State) RelicModifiers {
	m := neutralRelicModifiers()
	for _, r := range Relics {
		if s.RelicsUnlocked[r.ID] {
			r.apply(&m)
		}
	}
	return m
}

// RelicModifiers computes the relic bundle of the live state.
func (s *Store) RelicModifiers() RelicModifiers {
	return ComputeRelicModifiers(s.state)
}
