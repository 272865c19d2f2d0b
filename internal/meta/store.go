package meta

import (
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dungeon-progress/internal/storage"
)

// DefaultKey is the storage key of the meta-progression document.
const DefaultKey = "meta_progression"

// StoreOptions configures a Store.
type StoreOptions struct {
	Key    string
	Logger *log.Logger
}

// Store owns the meta-progression singleton. Perks, relics and rewards
// mutate it only through State and persist through Save.
type Store struct {
	kv     storage.KV
	key    string
	logger *log.Logger
	state  State
	loaded bool
}

// NewStore creates a store holding default state. Call Load before use.
func NewStore(kv storage.KV, opts StoreOptions) *Store {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Store{
		kv:     kv,
		key:    opts.Key,
		logger: opts.Logger,
		state:  DefaultState(),
	}
}

// Load reads and validates the persisted document, falling back to defaults.
func (s *Store) Load() {
	s.loaded = true
	s.state = DefaultState()

	raw, found, err := s.kv.Get(s.key)
	if err != nil {
		s.logger.Warn("could not load meta progression, using defaults", "error", err)
		return
	}
	if !found {
		return
	}
	s.state = Validate([]byte(raw))
}

// Loaded reports whether Load has run.
func (s *Store) Loaded() bool {
	return s.loaded
}

// State returns the live singleton.
func (s *Store) State() *State {
	return &s.state
}

// Save persists the current state. Failures are logged; memory is kept.
func (s *Store) Save() {
	b, err := json.Marshal(s.state)
	if err != nil {
		s.logger.Warn("could not encode meta progression", "error", err)
		return
	}
	if err := s.kv.Put(s.key, string(b)); err != nil {
		s.logger.Warn("could not save meta progression", "error", err)
	}
}

// ResetAll restores defaults and persists them.
func (s *Store) ResetAll() {
	s.state = DefaultState()
	s.Save()
}

// AvailableShards returns spendable shards of the live state.
func (s *Store) AvailableShards() int {
	return AvailableShards(s.state)
}

// UnlockAbility marks an ability as permanently unlocked.
// Returns false if it already was.
func (s *Store) UnlockAbility(id string) bool {
	return s.unlockIn(s.state.UnlockedAbilities, id)
}

// UnlockProc marks a proc as permanently unlocked.
func (s *Store) UnlockProc(id string) bool {
	return s.unlockIn(s.state.UnlockedProcs, id)
}

// UnlockNode marks a meta tree node as unlocked.
func (s *Store) UnlockNode(id string) bool {
	return s.unlockIn(s.state.UnlockedNodes, id)
}

func (s *Store) unlockIn(set map[string]bool, id string) bool {
	if id == "" || set[id] {
		return false
	}
	set[id] = true
	s.Save()
	return true
}

// SetLoadout selects abilities and procs for the next run. Every id must be
// unlocked and each list may hold at most MaxLoadoutSlots entries.
func (s *Store) SetLoadout(abilities, procs []string) bool {
	if len(abilities) > MaxLoadoutSlots || len(procs) > MaxLoadoutSlots {
		return false
	}
	for _, id := range abilities {
		if !s.state.UnlockedAbilities[id] {
			return false
		}
	}
	for _, id := range procs {
		if !s.state.UnlockedProcs[id] {
			return false
		}
	}
	s.state.SelectedLoadout = Loadout{
		Abilities: append([]string{}, abilities...),
		Procs:     append([]string{}, procs...),
	}
	s.Save()
	return true
}

// RecordBiomeBoss counts a boss defeated in biome.
func (s *Store) RecordBiomeBoss(biome string) {
	if biome == "" {
		return
	}
	m := s.state.BiomeMastery[biome]
	m.BossesDefeated++
	s.state.BiomeMastery[biome] = m
}

// RecordBiomeStage raises the best stage reached in biome.
func (s *Store) RecordBiomeStage(biome string, stage int) {
	if biome == "" {
		return
	}
	m := s.state.BiomeMastery[biome]
	if stage > m.BestStage {
		m.BestStage = stage
		s.state.BiomeMastery[biome] = m
	}
}
