// Package rewards runs the boss-kill reward pipeline and merges perk and
// relic modifiers into the bundle a run is started with.
package rewards

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dungeon-progress/internal/meta"
)

const (
	// BossShards is the flat shard reward for any boss kill.
	BossShards = 2
	// FirstBossBonus is added once per run for the first boss.
	FirstBossBonus = 1
	// RelicDropChance is the probability of a relic drop per boss kill.
	RelicDropChance = 0.10
	// RoomsPerShard grants one shard for every Nth room cleared in a run.
	RoomsPerShard = 5
)

// UpgradeThresholds are the lifetime boss-kill totals at which the next run
// upgrade unlocks; index i gates the (i+1)th unlock.
var UpgradeThresholds = []int{3, 7, 12, 18, 25, 35}

// BossKill describes one boss death.
type BossKill struct {
	Stage           int
	BossNumberInRun int
	BiomeID         string
}

// BossReward is returned for UI toasts. Empty ids mean nothing dropped.
type BossReward struct {
	ShardsGained int
	RelicID      string
	RunUpgradeID string
}

// Options configures a System.
type Options struct {
	Rand   *rand.Rand
	Logger *log.Logger
}

// System applies rewards to the meta store.
type System struct {
	store  *meta.Store
	rng    *rand.Rand
	logger *log.Logger

	firstBossClaimed bool
	roomsCleared     int
}

// New creates a reward system over store. A nil Rand is seeded from the clock.
func New(store *meta.Store, opts Options) *System {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &System{store: store, rng: opts.Rand, logger: opts.Logger}
}

// ResetRunRewards clears per-run reward tracking.
func (s *System) ResetRunRewards() {
	s.firstBossClaimed = false
	s.roomsCleared = 0
}

// OnRunStart counts the run, resets per-run tracking and returns the
// modifiers to bake into the run. Call exactly once per run.
func (s *System) OnRunStart() Modifiers {
	s.store.State().Stats.RunsPlayed++
	s.ResetRunRewards()
	s.store.Save()
	return ComputeAllModifiers(*s.store.State())
}

// ProcessBossKill grants shards, rolls for a relic and a run upgrade, and
// saves once.
func (s *System) ProcessBossKill(kill BossKill) BossReward {
	st := s.store.State()
	var reward BossReward

	reward.ShardsGained = BossShards
	if !s.firstBossClaimed {
		s.firstBossClaimed = true
		reward.ShardsGained += FirstBossBonus
	}
	st.TotalCoreShards += reward.ShardsGained

	st.Stats.BossesKilledTotal++
	s.store.RecordBiomeBoss(kill.BiomeID)

	if locked := s.store.LockedRelicIDs(); len(locked) > 0 && s.rng.Float64() < RelicDropChance {
		reward.RelicID = locked[s.rng.Intn(len(locked))]
		st.RelicsUnlocked[reward.RelicID] = true
	}

	reward.RunUpgradeID = s.rollRunUpgrade()

	if kill.Stage > st.Stats.HighestStage {
		st.Stats.HighestStage = kill.Stage
	}

	s.store.Save()
	s.logger.Debug("boss reward", "stage", kill.Stage, "boss", kill.BossNumberInRun,
		"shards", reward.ShardsGained, "relic", reward.RelicID, "upgrade", reward.RunUpgradeID)
	return reward
}

// rollRunUpgrade unlocks a random locked upgrade once the lifetime boss
// total reaches the threshold of the next unlock slot.
func (s *System) rollRunUpgrade() string {
	slot := len(s.store.UnlockedRunUpgradeIDs())
	if slot >= len(UpgradeThresholds) {
		return ""
	}
	if s.store.State().Stats.BossesKilledTotal < UpgradeThresholds[slot] {
		return ""
	}
	locked := s.store.LockedRunUpgradeIDs()
	if len(locked) == 0 {
		return ""
	}
	id := locked[s.rng.Intn(len(locked))]
	s.store.State().RunUpgradesUnlocked[id] = true
	return id
}

// ProcessRoomClear grants a shard for every RoomsPerShard-th room cleared in
// the current run and returns the shards gained.
func (s *System) ProcessRoomClear(stage int) int {
	s.roomsCleared++
	if s.roomsCleared%RoomsPerShard != 0 {
		return 0
	}
	s.store.State().TotalCoreShards++
	s.store.Save()
	s.logger.Debug("room reward", "stage", stage, "rooms", s.roomsCleared)
	return 1
}

// OnRunEnd records the final stage and persists.
func (s *System) OnRunEnd(stage int, biomeID string) {
	st := s.store.State()
	if stage > st.Stats.HighestStage {
		st.Stats.HighestStage = stage
	}
	s.store.RecordBiomeStage(biomeID, stage)
	s.store.Save()
}
