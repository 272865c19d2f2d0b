// Package progression wires the event bus, achievements, meta progression,
// rewards and the talent tree into one service the game host drives.
package progression

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dungeon-progress/internal/achievements"
	"github.com/vovakirdan/dungeon-progress/internal/config"
	"github.com/vovakirdan/dungeon-progress/internal/events"
	"github.com/vovakirdan/dungeon-progress/internal/meta"
	"github.com/vovakirdan/dungeon-progress/internal/rewards"
	"github.com/vovakirdan/dungeon-progress/internal/storage"
	"github.com/vovakirdan/dungeon-progress/internal/talents"
)

// ErrNotInitialized is returned by entry points called before Initialize.
var ErrNotInitialized = errors.New("progression: service not initialized")

// Options configures a Service.
type Options struct {
	KV     storage.KV
	Config config.ProgressionConfig
	Logger *log.Logger
	// Rand overrides the reward RNG. When nil it is seeded from Config.Seed,
	// or from the clock if the seed is 0.
	Rand *rand.Rand
	Now  func() time.Time
	// OnUnlock is called once per newly unlocked achievement.
	OnUnlock achievements.UnlockFunc
}

// Service owns every progression subsystem. Use one per process.
type Service struct {
	cfg    config.ProgressionConfig
	logger *log.Logger

	bus       *events.Bus
	achStore  *achievements.Store
	engine    *achievements.Engine
	metaStore *meta.Store
	rewards   *rewards.System
	talents   *talents.State
	onUnlock  achievements.UnlockFunc

	initialized bool
	mods        rewards.Modifiers
	stage       int
	biome       string
	bossNumber  int
	level       int
}

// New builds the subsystems without touching storage.
func New(opts Options) (*Service, error) {
	if opts.KV == nil {
		return nil, fmt.Errorf("progression: storage is required")
	}
	def := config.DefaultConfig().Progression
	if opts.Config.AchievementKeyPrefix == "" {
		opts.Config.AchievementKeyPrefix = def.AchievementKeyPrefix
	}
	if opts.Config.MetaKey == "" {
		opts.Config.MetaKey = def.MetaKey
	}
	if opts.Config.TotalProfiles < 1 {
		opts.Config.TotalProfiles = def.TotalProfiles
	}
	if opts.Config.Profile < 0 || opts.Config.Profile >= opts.Config.TotalProfiles {
		return nil, fmt.Errorf("progression: profile %d out of range [0,%d)", opts.Config.Profile, opts.Config.TotalProfiles)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		seed := opts.Config.Seed
		if seed == 0 {
			seed = opts.Now().UnixNano()
		}
		opts.Rand = rand.New(rand.NewSource(seed))
	}

	bus := events.NewBus(opts.Logger.WithPrefix("events"))
	achStore := achievements.NewStore(opts.KV, achievements.StoreOptions{
		KeyPrefix: opts.Config.AchievementKeyPrefix,
		Logger:    opts.Logger.WithPrefix("achievements"),
		Now:       opts.Now,
	})
	metaStore := meta.NewStore(opts.KV, meta.StoreOptions{
		Key:    opts.Config.MetaKey,
		Logger: opts.Logger.WithPrefix("meta"),
	})

	return &Service{
		cfg:       opts.Config,
		logger:    opts.Logger,
		bus:       bus,
		achStore:  achStore,
		engine:    achievements.NewEngine(bus, achStore, achievements.EngineOptions{Logger: opts.Logger.WithPrefix("achievements"), Now: opts.Now}),
		metaStore: metaStore,
		rewards:   rewards.New(metaStore, rewards.Options{Rand: opts.Rand, Logger: opts.Logger.WithPrefix("rewards")}),
		talents:   talents.NewState(),
		onUnlock:  opts.OnUnlock,
	}, nil
}

// Initialize loads the meta singleton and the configured profile, then
// subscribes the achievement engine. Safe to call more than once.
func (s *Service) Initialize() {
	if s.initialized {
		return
	}
	s.initialized = true

	s.metaStore.Load()
	s.achStore.Load(s.cfg.Profile)
	s.engine.Init(s.unlocked)

	s.bus.On(events.NameStageEntered, func(ev events.Event) {
		if p, ok := ev.(events.StageEntered); ok && p.Stage > s.stage {
			s.stage = p.Stage
		}
	})
	s.bus.On(events.NameBiomeChanged, func(ev events.Event) {
		if p, ok := ev.(events.BiomeChanged); ok {
			s.biome = p.BiomeID
		}
	})
	s.bus.On(events.NamePlayerLevelChanged, func(ev events.Event) {
		p, ok := ev.(events.PlayerLevelChanged)
		if !ok {
			return
		}
		talents.GrantPoints(s.talents, talents.PointsEarnedBetween(s.level, p.Level))
		if p.Level > s.level {
			s.level = p.Level
		}
	})

	s.mods = rewards.ComputeAllModifiers(*s.metaStore.State())
	s.logger.Info("progression ready",
		"profile", s.cfg.Profile,
		"achievements", s.achStore.UnlockedCount(),
		"shards", s.metaStore.AvailableShards())
}

func (s *Service) unlocked(def achievements.Definition) {
	s.logger.Info("achievement unlocked", "id", def.ID, "name", def.Name, "tier", def.Tier)
	if s.onUnlock != nil {
		s.onUnlock(def)
	}
}

// Emit forwards a gameplay event to the bus.
func (s *Service) Emit(ev events.Event) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	s.bus.Emit(ev)
	return nil
}

// StartRun counts a new run, resets per-run state and returns the modifiers
// to bake into it.
func (s *Service) StartRun(metaBooster bool) (rewards.Modifiers, error) {
	if !s.initialized {
		return rewards.Modifiers{}, ErrNotInitialized
	}
	s.mods = s.rewards.OnRunStart()
	s.talents = talents.NewState()
	s.stage = 0
	s.biome = ""
	s.bossNumber = 0
	s.level = 1
	s.bus.Emit(events.RunStart{MetaBoosterActive: metaBooster})
	return s.mods, nil
}

// EndRun records the final stage. An empty biome uses the last biome seen.
func (s *Service) EndRun(stage int, biomeID string) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if biomeID == "" {
		biomeID = s.biome
	}
	s.rewards.OnRunEnd(stage, biomeID)
	s.bus.Emit(events.RunEnd{Stage: stage})
	return nil
}

// BossKilled emits the kill, applies boss rewards and announces any relic
// drop. Zero Stage, BossNumberInRun or BiomeID are filled from run tracking.
func (s *Service) BossKilled(kill rewards.BossKill) (rewards.BossReward, error) {
	if !s.initialized {
		return rewards.BossReward{}, ErrNotInitialized
	}
	s.bossNumber++
	if kill.Stage == 0 {
		kill.Stage = s.stage
	}
	if kill.BossNumberInRun == 0 {
		kill.BossNumberInRun = s.bossNumber
	}
	if kill.BiomeID == "" {
		kill.BiomeID = s.biome
	}

	s.bus.Emit(events.BossKilled{})
	reward := s.rewards.ProcessBossKill(kill)
	if reward.RelicID != "" {
		s.logger.Info("relic found", "relic", reward.RelicID)
		s.bus.Emit(events.RelicUnlocked{})
	}
	if reward.RunUpgradeID != "" {
		s.logger.Info("run upgrade unlocked", "upgrade", reward.RunUpgradeID)
	}
	return reward, nil
}

// RoomCleared emits the clear and returns shards gained from room rewards.
func (s *Service) RoomCleared() (int, error) {
	if !s.initialized {
		return 0, ErrNotInitialized
	}
	s.bus.Emit(events.RoomCleared{})
	return s.rewards.ProcessRoomClear(s.stage), nil
}

// BuyPerk upgrades perk by one level. Returns false if unaffordable, maxed or
// unknown.
func (s *Service) BuyPerk(perk string) (bool, error) {
	if !s.initialized {
		return false, ErrNotInitialized
	}
	if !s.metaStore.UpgradePerk(perk) {
		return false, nil
	}
	s.bus.Emit(events.MetaUpgradeBought{})
	if s.metaStore.IsMaxed(perk) {
		s.bus.Emit(events.MetaPerkMaxed{})
	}
	s.mods = rewards.ComputeAllModifiers(*s.metaStore.State())
	return true, nil
}

// UpgradeTalent spends a talent point of the current run.
func (s *Service) UpgradeTalent(id string) bool {
	return talents.UpgradeNode(s.talents, id)
}

// SwitchProfile saves the active profile and loads another.
func (s *Service) SwitchProfile(index int) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if index < 0 || index >= s.cfg.TotalProfiles {
		return fmt.Errorf("progression: profile %d out of range [0,%d)", index, s.cfg.TotalProfiles)
	}
	s.achStore.Save()
	s.achStore.Load(index)
	s.cfg.Profile = index
	return nil
}

// DeleteProfile removes a profile's achievements and shifts later profiles
// down by one.
func (s *Service) DeleteProfile(index int) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if index < 0 || index >= s.cfg.TotalProfiles {
		return fmt.Errorf("progression: profile %d out of range [0,%d)", index, s.cfg.TotalProfiles)
	}
	s.achStore.DeleteProfileAchievements(index, s.cfg.TotalProfiles)
	s.cfg.Profile = s.achStore.Profile()
	return nil
}

// ResetMeta wipes meta progression back to defaults.
func (s *Service) ResetMeta() error {
	if !s.initialized {
		return ErrNotInitialized
	}
	s.metaStore.ResetAll()
	s.mods = rewards.ComputeAllModifiers(*s.metaStore.State())
	return nil
}

// Bus returns the event bus.
func (s *Service) Bus() *events.Bus { return s.bus }

// Achievements returns the achievement engine.
func (s *Service) Achievements() *achievements.Engine { return s.engine }

// Meta returns the meta progression store.
func (s *Service) Meta() *meta.Store { return s.metaStore }

// Talents returns the talent allocation of the current run.
func (s *Service) Talents() *talents.State { return s.talents }

// Modifiers returns the modifier bundle of the current run.
func (s *Service) Modifiers() rewards.Modifiers { return s.mods }

// Profile returns the active profile index.
func (s *Service) Profile() int { return s.cfg.Profile }

// TotalProfiles returns the number of save slots.
func (s *Service) TotalProfiles() int { return s.cfg.TotalProfiles }
