// Package meta holds the permanent meta-progression singleton: core shards,
// perks, relics, run-upgrade unlocks, loadout and lifetime stats.
package meta

import (
	"github.com/tidwall/gjson"

	"github.com/vovakirdan/dungeon-progress/internal/safejson"
)

// MaxLoadoutSlots bounds each list in the selected loadout.
const MaxLoadoutSlots = 2

// Starter unlocks every profile has regardless of saved data.
var (
	StarterAbilities = []string{"dash"}
	StarterProcs     = []string{"burn"}
)

// BiomeMastery records lifetime progress within one biome.
type BiomeMastery struct {
	BossesDefeated int `json:"bossesDefeated"`
	BestStage      int `json:"bestStage"`
}

// Stats are lifetime counters owned by the meta layer.
type Stats struct {
	BossesKilledTotal int `json:"bossesKilledTotal"`
	HighestStage      int `json:"highestStage"`
	RunsPlayed        int `json:"runsPlayed"`
}

// Loadout is the ability/proc selection carried into the next run.
type Loadout struct {
	Abilities []string `json:"abilities"`
	Procs     []string `json:"procs"`
}

// State is the persisted meta-progression document.
type State struct {
	TotalCoreShards     int                     `json:"totalCoreShards"`
	SpentCoreShards     int                     `json:"spentCoreShards"`
	MetaPerks           map[string]int          `json:"metaPerks"`
	RelicsUnlocked      map[string]bool         `json:"relicsUnlocked"`
	RunUpgradesUnlocked map[string]bool         `json:"runUpgradesUnlocked"`
	UnlockedAbilities   map[string]bool         `json:"unlockedAbilities"`
	UnlockedProcs       map[string]bool         `json:"unlockedProcs"`
	UnlockedNodes       map[string]bool         `json:"unlockedNodes"`
	BiomeMastery        map[string]BiomeMastery `json:"biomeMastery"`
	Stats               Stats                   `json:"stats"`
	SelectedLoadout     Loadout                 `json:"selectedLoadout"`
}

// DefaultState returns a fresh meta state with starter unlocks.
func DefaultState() State {
	s := State{
		MetaPerks:           make(map[string]int, len(Perks)),
		RelicsUnlocked:      make(map[string]bool),
		RunUpgradesUnlocked: make(map[string]bool),
		UnlockedAbilities:   make(map[string]bool),
		UnlockedProcs:       make(map[string]bool),
		UnlockedNodes:       make(map[string]bool),
		BiomeMastery:        make(map[string]BiomeMastery),
		SelectedLoadout: Loadout{
			Abilities: append([]string{}, StarterAbilities...),
			Procs:     append([]string{}, StarterProcs...),
		},
	}
	for _, p := range Perks {
		s.MetaPerks[p.ID] = 0
	}
	addStarters(&s)
	return s
}

func addStarters(s *State) {
	for _, id := range StarterAbilities {
		s.UnlockedAbilities[id] = true
	}
	for _, id := range StarterProcs {
		s.UnlockedProcs[id] = true
	}
}

// AvailableShards returns spendable shards. A corrupted save where spent
// exceeds total yields 0 rather than a negative balance.
func AvailableShards(s State) int {
	if b := RawShardBalance(s); b > 0 {
		return b
	}
	return 0
}

// RawShardBalance returns total minus spent without clamping.
func RawShardBalance(s State) int {
	return s.TotalCoreShards - s.SpentCoreShards
}

// Validate rebuilds a safe State from arbitrary JSON. It accepts null,
// non-objects and partial documents, and never fails.
func Validate(raw []byte) State {
	if !gjson.ValidBytes(raw) {
		return DefaultState()
	}
	return validate(gjson.ParseBytes(raw))
}

func validate(root gjson.Result) State {
	s := DefaultState()
	if !root.IsObject() {
		return s
	}

	s.TotalCoreShards = safejson.NonNegativeInt(root.Get("totalCoreShards"))
	s.SpentCoreShards = safejson.NonNegativeInt(root.Get("spentCoreShards"))

	perks := root.Get("metaPerks")
	for _, p := range Perks {
		s.MetaPerks[p.ID] = clampInt(safejson.NonNegativeInt(perks.Get(p.ID)), 0, MaxPerkLevel)
	}

	s.RelicsUnlocked = safejson.TrueSet(root.Get("relicsUnlocked"))
	s.RunUpgradesUnlocked = safejson.TrueSet(root.Get("runUpgradesUnlocked"))
	s.UnlockedAbilities = safejson.TrueSet(root.Get("unlockedAbilities"))
	s.UnlockedProcs = safejson.TrueSet(root.Get("unlockedProcs"))
	s.UnlockedNodes = safejson.TrueSet(root.Get("unlockedNodes"))
	addStarters(&s)

	safejson.ForEachField(root.Get("biomeMastery"), func(biome string, v gjson.Result) {
		if !v.IsObject() {
			return
		}
		s.BiomeMastery[biome] = BiomeMastery{
			BossesDefeated: safejson.NonNegativeInt(v.Get("bossesDefeated")),
			BestStage:      safejson.NonNegativeInt(v.Get("bestStage")),
		}
	})

	stats := root.Get("stats")
	s.Stats = Stats{
		BossesKilledTotal: safejson.NonNegativeInt(stats.Get("bossesKilledTotal")),
		HighestStage:      safejson.NonNegativeInt(stats.Get("highestStage")),
		RunsPlayed:        safejson.NonNegativeInt(stats.Get("runsPlayed")),
	}

	if loadout := root.Get("selectedLoadout"); loadout.IsObject() {
		s.SelectedLoadout = Loadout{
			Abilities: safejson.StringList(loadout.Get("abilities"), MaxLoadoutSlots),
			Procs:     safejson.StringList(loadout.Get("procs"), MaxLoadoutSlots),
		}
	}

	return s
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
