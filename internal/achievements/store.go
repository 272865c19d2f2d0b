package achievements

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"

	"github.com/vovakirdan/dungeon-progress/internal/safejson"
	"github.com/vovakirdan/dungeon-progress/internal/storage"
)

// Lifetime stat keys kept in the store.
const (
	StatTotalRuns             = "totalRuns"
	StatTotalKills            = "totalKills"
	StatTotalBossKills        = "totalBossKills"
	StatHighestStageEver      = "highestStageEver"
	StatLifetimeCoins         = "lifetimeCoins"
	StatLifetimeShopPurchases = "lifetimeShopPurchases"
	StatRelicsUnlocked        = "relicsUnlocked"
	StatMetaUpgradesBought    = "metaUpgradesBought"
	StatNoHitRoomsTotal       = "noHitQualifyingRoomsTotal"
	StatNoHitBossesTotal      = "noHitBossesTotal"

	// StatPickupTypesCollected is stored as a set; Stat returns its size.
	StatPickupTypesCollected = "pickupTypesCollected"
)

// DefaultKeyPrefix is the storage key prefix for per-profile blobs.
const DefaultKeyPrefix = "achievements"

// Data is the persisted achievement blob of one profile.
type Data struct {
	Unlocked    map[string]int64 // id -> unlock time in unix milliseconds
	Stats       map[string]int
	PickupTypes map[string]bool
	Progress    map[string]int
}

func newData() Data {
	return Data{
		Unlocked:    make(map[string]int64),
		Stats:       make(map[string]int),
		PickupTypes: make(map[string]bool),
		Progress:    make(map[string]int),
	}
}

// StoreOptions configures a Store.
type StoreOptions struct {
	KeyPrefix string
	Logger    *log.Logger
	Now       func() time.Time
}

// Store holds the active profile's achievement data in memory and mirrors it
// to a key/value backend. Memory is authoritative; failed writes are logged.
type Store struct {
	kv      storage.KV
	prefix  string
	logger  *log.Logger
	now     func() time.Time
	profile int
	data    Data
}

// NewStore creates a store for profile 0 with empty data. Call Load to read
// persisted state.
func NewStore(kv storage.KV, opts StoreOptions) *Store {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = DefaultKeyPrefix
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		kv:     kv,
		prefix: opts.KeyPrefix,
		logger: opts.Logger,
		now:    opts.Now,
		data:   newData(),
	}
}

func (s *Store) key(profileIndex int) string {
	return fmt.Sprintf("%s_%d", s.prefix, profileIndex)
}

// Profile returns the index of the loaded profile.
func (s *Store) Profile() int {
	return s.profile
}

// Load reads and sanitizes the blob for profileIndex. Missing, unreadable or
// corrupt data yields a fresh profile; Load never fails.
func (s *Store) Load(profileIndex int) {
	s.profile = profileIndex
	s.data = newData()

	raw, found, err := s.kv.Get(s.key(profileIndex))
	if err != nil {
		s.logger.Warn("could not load achievements, using defaults", "profile", profileIndex, "error", err)
		return
	}
	if !found {
		return
	}
	if !gjson.Valid(raw) {
		s.logger.Warn("corrupt achievements data, using defaults", "profile", profileIndex)
		return
	}
	s.data = sanitize(gjson.Parse(raw))
}

// Save writes the in-memory data to the profile's key.
func (s *Store) Save() {
	raw, err := encode(s.data)
	if err != nil {
		s.logger.Warn("could not encode achievements", "profile", s.profile, "error", err)
		return
	}
	if err := s.kv.Put(s.key(s.profile), raw); err != nil {
		s.logger.Warn("could not save achievements", "profile", s.profile, "error", err)
	}
}

// Unlock records id as unlocked now and saves immediately.
// Returns false if id was already unlocked; the original timestamp is kept.
func (s *Store) Unlock(id string) bool {
	if _, ok := s.data.Unlocked[id]; ok {
		return false
	}
	s.data.Unlocked[id] = s.now().UnixMilli()
	s.Save()
	return true
}

// IsUnlocked reports whether id has been unlocked on this profile.
func (s *Store) IsUnlocked(id string) bool {
	_, ok := s.data.Unlocked[id]
	return ok
}

// UnlockedAt returns when id was unlocked.
func (s *Store) UnlockedAt(id string) (time.Time, bool) {
	ms, ok := s.data.Unlocked[id]
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// UnlockedCount returns the number of unlocked achievements.
func (s *Store) UnlockedCount() int {
	return len(s.data.Unlocked)
}

// SetProgress stores a progress value in memory only; callers batch saves.
func (s *Store) SetProgress(id string, value int) {
	s.data.Progress[id] = value
}

// Progress returns the stored progress for id, or 0.
func (s *Store) Progress(id string) int {
	return s.data.Progress[id]
}

// IncrementStat adds by to key and returns the new value. Does not save.
func (s *Store) IncrementStat(key string, by int) int {
	s.data.Stats[key] += by
	return s.data.Stats[key]
}

// SetStat overwrites key. Used for high-water-mark stats. Does not save.
func (s *Store) SetStat(key string, value int) {
	if value < 0 {
		value = 0
	}
	s.data.Stats[key] = value
}

// Stat returns the value of key, or 0 if missing.
func (s *Store) Stat(key string) int {
	if key == StatPickupTypesCollected {
		return len(s.data.PickupTypes)
	}
	return s.data.Stats[key]
}

// MarkPickupType records that pickupType has been collected at least once.
// Returns true if it was new. Does not save.
func (s *Store) MarkPickupType(pickupType string) bool {
	if s.data.PickupTypes[pickupType] {
		return false
	}
	s.data.PickupTypes[pickupType] = true
	return true
}

// DeleteProfileAchievements removes the blob of deletedIndex and shifts every
// higher profile down by one slot, in ascending order.
func (s *Store) DeleteProfileAchievements(deletedIndex, totalProfiles int) {
	if deletedIndex < 0 || deletedIndex >= totalProfiles {
		return
	}

	if err := s.kv.Delete(s.key(deletedIndex)); err != nil {
		s.logger.Warn("could not delete achievements", "profile", deletedIndex, "error", err)
	}

	for i := deletedIndex + 1; i < totalProfiles; i++ {
		raw, found, err := s.kv.Get(s.key(i))
		if err != nil {
			s.logger.Warn("could not read achievements for reindex", "profile", i, "error", err)
			continue
		}
		if found {
			err = s.kv.Put(s.key(i-1), raw)
		} else {
			err = s.kv.Delete(s.key(i - 1))
		}
		if err != nil {
			s.logger.Warn("could not reindex achievements", "from", i, "to", i-1, "error", err)
		}
	}

	if last := totalProfiles - 1; last > deletedIndex {
		if err := s.kv.Delete(s.key(last)); err != nil {
			s.logger.Warn("could not delete achievements", "profile", last, "error", err)
		}
	}

	switch {
	case s.profile == deletedIndex:
		// The slot now holds the next profile, or nothing if it was the last.
		s.Load(deletedIndex)
	case s.profile > deletedIndex:
		s.profile--
	}
}

// KeyLister is a backend that can enumerate its keys.
type KeyLister interface {
	Keys(prefix string) ([]string, error)
}

// StoredProfiles returns, ascending, the profile indices in [0, totalProfiles)
// that have a saved blob under prefix.
func StoredProfiles(kv KeyLister, prefix string, totalProfiles int) ([]int, error) {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	keys, err := kv.Keys(prefix + "_")
	if err != nil {
		return nil, err
	}

	var indices []int
	for _, k := range keys {
		i, err := strconv.Atoi(strings.TrimPrefix(k, prefix+"_"))
		if err != nil || i < 0 || i >= totalProfiles {
			continue
		}
		indices = append(indices, i)
	}
	sort.Ints(indices)
	return indices, nil
}

// sanitize rebuilds Data from an arbitrary JSON document. Unknown top-level
// fields are dropped and numbers are clamped to bounded non-negative integers.
func sanitize(root gjson.Result) Data {
	d := newData()
	if !root.IsObject() {
		return d
	}

	safejson.ForEachField(root.Get("unlocked"), func(key string, v gjson.Result) {
		d.Unlocked[key] = safejson.NonNegativeInt64(v)
	})

	safejson.ForEachField(root.Get("stats"), func(key string, v gjson.Result) {
		if key == StatPickupTypesCollected {
			safejson.ForEachField(v, func(pickup string, flag gjson.Result) {
				if flag.Type == gjson.True {
					d.PickupTypes[pickup] = true
				}
			})
			return
		}
		d.Stats[key] = safejson.NonNegativeInt(v)
	})

	safejson.ForEachField(root.Get("progress"), func(key string, v gjson.Result) {
		d.Progress[key] = safejson.NonNegativeInt(v)
	})

	return d
}

type document struct {
	Unlocked map[string]int64 `json:"unlocked"`
	Stats    map[string]any   `json:"stats"`
	Progress map[string]int   `json:"progress"`
}

func encode(d Data) (string, error) {
	stats := make(map[string]any, len(d.Stats)+1)
	for k, v := range d.Stats {
		stats[k] = v
	}
	stats[StatPickupTypesCollected] = d.PickupTypes

	b, err := json.Marshal(document{
		Unlocked: d.Unlocked,
		Stats:    stats,
		Progress: d.Progress,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
