package achievements

import (
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dungeon-progress/internal/events"
)

// MinQualifyingEnemies is the enemy count a room needs for no-hit tracking.
const MinQualifyingEnemies = 10

// RunState is the volatile per-run state used for achievement checks and HUD
// display. It is recreated on every run start and never persisted.
type RunState struct {
	Kills         int
	BossKills     int
	Coins         int
	StagesReached int
	Level         int
	StartedAt     time.Time

	TookDamage  bool
	DamageCount int
	BoosterUsed bool
	ReviveUsed  bool

	VisitedBiomes map[string]bool

	NoHitQualifyingRoomsStreak int
	NoHitQualifyingRoomsTotal  int
	NoHitTrapRooms             int

	BossFightActive    bool
	BossFightDamaged   bool
	NoHitBossStreak    int
	BossesNoHitThisRun int

	ShopPurchases int
}

func newRunState(now time.Time) *RunState {
	return &RunState{
		StartedAt:     now,
		VisitedBiomes: make(map[string]bool),
	}
}

// RoomState is the snapshot of the room currently being fought.
type RoomState struct {
	EnemyCount int
	Qualifies  bool
	Damaged    bool
	HasTraps   bool
}

// UnlockFunc is notified once per newly unlocked achievement.
type UnlockFunc func(Definition)

// EngineOptions configures an Engine.
type EngineOptions struct {
	Logger *log.Logger
	Now    func() time.Time
}

// Engine turns gameplay events into stat updates and unlocks.
type Engine struct {
	bus      *events.Bus
	store    *Store
	logger   *log.Logger
	now      func() time.Time
	onUnlock UnlockFunc
	started  bool

	run  *RunState
	room RoomState
}

// NewEngine creates an engine bound to bus and store. Handlers are not
// registered until Init is called.
func NewEngine(bus *events.Bus, store *Store, opts EngineOptions) *Engine {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		bus:    bus,
		store:  store,
		logger: opts.Logger,
		now:    opts.Now,
		run:    newRunState(opts.Now()),
	}
}

// Init subscribes the engine to the bus. Calling it again only replaces the
// unlock callback.
func (e *Engine) Init(onUnlock UnlockFunc) {
	e.onUnlock = onUnlock
	if e.started {
		return
	}
	e.started = true

	handlers := map[events.Name]events.Handler{
		events.NameRunStart:                e.onRunStart,
		events.NameRunEnd:                  e.onRunEnd,
		events.NameStageEntered:            e.onStageEntered,
		events.NameRoomStarted:             e.onRoomStarted,
		events.NameRoomCleared:             e.onRoomCleared,
		events.NamePlayerTookDamage:        e.onPlayerTookDamage,
		events.NameEnemyKilled:             e.onEnemyKilled,
		events.NameBossFightStarted:        e.onBossFightStarted,
		events.NameBossKilled:              e.onBossKilled,
		events.NameCoinsGained:             e.onCoinsGained,
		events.NameShopPurchaseMetaBooster: e.onShopPurchaseMetaBooster,
		events.NameShopPurchaseRunItem:     e.onShopPurchaseRunItem,
		events.NameRelicUnlocked:           e.onRelicUnlocked,
		events.NameMetaUpgradeBought:       e.onMetaUpgradeBought,
		events.NameBiomeChanged:            e.onBiomeChanged,
		events.NamePickupCollected:         e.onPickupCollected,
		events.NamePlayerLevelChanged:      e.onPlayerLevelChanged,
		events.NameReviveUsed:              e.onReviveUsed,
		events.NameMetaPerkMaxed:           e.onMetaPerkMaxed,
	}
	// Register in declaration order so subscription order is stable.
	for _, name := range events.All {
		e.bus.On(name, handlers[name])
	}
}

// RunState returns the live run state. Callers must not modify it.
func (e *Engine) RunState() *RunState {
	return e.run
}

// RoomState returns a copy of the current room snapshot.
func (e *Engine) RoomState() RoomState {
	return e.room
}

// Store returns the backing achievement store.
func (e *Engine) Store() *Store {
	return e.store
}

// IsUnlocked reports whether id is unlocked on the active profile.
func (e *Engine) IsUnlocked(id string) bool {
	return e.store.IsUnlocked(id)
}

// UnlockedCount returns the number of unlocked achievements.
func (e *Engine) UnlockedCount() int {
	return e.store.UnlockedCount()
}

// tryUnlock unlocks id at most once and fires the callback on the transition.
func (e *Engine) tryUnlock(id string) {
	if e.store.IsUnlocked(id) {
		return
	}
	def, ok := Lookup(id)
	if !ok {
		e.logger.Warn("unknown achievement", "id", id)
		return
	}
	if !e.store.Unlock(id) {
		return
	}
	e.logger.Debug("achievement unlocked", "id", id)
	if e.onUnlock != nil {
		e.onUnlock(def)
	}
}

// updateProgress records a cumulative value and unlocks once it meets the target.
func (e *Engine) updateProgress(id string, value int) {
	e.store.SetProgress(id, value)
	if def, ok := Lookup(id); ok && def.HasTarget() && value >= def.Target {
		e.tryUnlock(id)
	}
}

func (e *Engine) unlockAtLeast(value int, thresholds []threshold) {
	for _, t := range thresholds {
		if value >= t.at {
			e.tryUnlock(t.id)
		}
	}
}

func (e *Engine) progressAll(value int, ids ...string) {
	for _, id := range ids {
		e.updateProgress(id, value)
	}
}

type threshold struct {
	at int
	id string
}

var (
	stageThresholds = []threshold{
		{5, Stage5}, {8, Stage8}, {15, Stage15}, {20, Stage20},
		{30, Stage30}, {40, Stage40}, {50, Stage50},
	}
	roomStreakThresholds = []threshold{
		{1, NoHitRoom}, {2, NoHitRooms2Streak}, {3, NoHitRooms3Streak}, {5, NoHitRooms5Streak},
	}
	runBossThresholds = []threshold{{2, Bosses2Run}, {3, Bosses3Run}, {5, Bosses5Run}}
	runCoinThresholds = []threshold{{50, Coins50Run}, {100, Coins100Run}, {200, Coins200Run}}
	levelThresholds   = []threshold{{5, Level5Run}, {15, Level15Run}}
)

func (e *Engine) onRunStart(ev events.Event) {
	p, _ := ev.(events.RunStart)
	e.run = newRunState(e.now())
	e.room = RoomState{}
	e.run.BoosterUsed = p.MetaBoosterActive
	e.store.IncrementStat(StatTotalRuns, 1)
	e.store.Save()
}

func (e *Engine) onRunEnd(ev events.Event) {
	p, _ := ev.(events.RunEnd)
	e.raiseHighestStage(p.Stage)
	e.store.Save()
}

func (e *Engine) raiseHighestStage(stage int) {
	if stage > e.store.Stat(StatHighestStageEver) {
		e.store.SetStat(StatHighestStageEver, stage)
	}
}

func (e *Engine) onStageEntered(ev events.Event) {
	p, _ := ev.(events.StageEntered)
	stage := p.Stage
	if stage > e.run.StagesReached {
		e.run.StagesReached = stage
	}

	e.unlockAtLeast(stage, stageThresholds)

	if stage >= 10 && e.now().Sub(e.run.StartedAt) <= FastStageWindow {
		e.tryUnlock(Stage10In10Min)
	}
	if stage >= 20 && !e.run.ReviveUsed {
		e.tryUnlock(NoReviveToStage20)
	}
	if stage >= 20 && !e.run.BoosterUsed {
		e.tryUnlock(NoBoosterToStage20)
	}
	if stage >= 10 && !e.run.TookDamage {
		e.tryUnlock(NoDamageToStage10)
	}

	e.raiseHighestStage(stage)
}

func (e *Engine) onRoomStarted(ev events.Event) {
	p, _ := ev.(events.RoomStarted)
	e.room = RoomState{
		EnemyCount: p.EnemyCount,
		Qualifies:  p.EnemyCount >= MinQualifyingEnemies,
		HasTraps:   p.HasTraps,
	}
}

func (e *Engine) onRoomCleared(events.Event) {
	room := e.room
	// A room clears once; later duplicates see a non-qualifying room.
	e.room = RoomState{}
	if !room.Qualifies {
		return
	}

	if room.Damaged {
		e.run.NoHitQualifyingRoomsStreak = 0
		return
	}

	e.run.NoHitQualifyingRoomsStreak++
	e.run.NoHitQualifyingRoomsTotal++
	e.store.IncrementStat(StatNoHitRoomsTotal, 1)
	e.store.Save()

	e.unlockAtLeast(e.run.NoHitQualifyingRoomsStreak, roomStreakThresholds)

	if room.HasTraps {
		e.run.NoHitTrapRooms++
		e.updateProgress(NoHitTrapRooms5, e.run.NoHitTrapRooms)
	}
}

func (e *Engine) onPlayerTookDamage(events.Event) {
	e.run.TookDamage = true
	e.run.DamageCount++
	if e.run.BossFightActive {
		e.run.BossFightDamaged = true
	}
	if e.room.Qualifies {
		e.room.Damaged = true
	}
}

func (e *Engine) onEnemyKilled(events.Event) {
	e.run.Kills++
	total := e.store.IncrementStat(StatTotalKills, 1)
	e.progressAll(total, Kills100Total, Kills500Total, Kills1000Total)
	e.tryUnlock(FirstKill)
}

func (e *Engine) onBossFightStarted(events.Event) {
	e.run.BossFightActive = true
	e.run.BossFightDamaged = false
}

func (e *Engine) onBossKilled(events.Event) {
	e.run.BossKills++
	total := e.store.IncrementStat(StatTotalBossKills, 1)
	e.progressAll(total, Bosses10Total, Bosses20Total)
	e.tryUnlock(FirstBoss)
	e.unlockAtLeast(e.run.BossKills, runBossThresholds)

	if !e.run.BossFightDamaged {
		e.run.NoHitBossStreak++
		e.run.BossesNoHitThisRun++
		e.store.IncrementStat(StatNoHitBossesTotal, 1)
		if e.run.NoHitBossStreak >= 3 {
			e.tryUnlock(NoHitBossStreak3)
		}
	} else {
		e.run.NoHitBossStreak = 0
	}
	e.run.BossFightActive = false
	e.run.BossFightDamaged = false

	e.checkTrueDungeonGod()
	e.store.Save()
}

// checkTrueDungeonGod evaluates the legendary compound condition.
func (e *Engine) checkTrueDungeonGod() {
	r := e.run
	if r.StagesReached >= 50 &&
		!r.BoosterUsed &&
		!r.ReviveUsed &&
		r.BossesNoHitThisRun >= 5 &&
		r.DamageCount <= 3 {
		e.tryUnlock(TrueDungeonGod)
	}
}

func (e *Engine) onCoinsGained(ev events.Event) {
	p, _ := ev.(events.CoinsGained)
	if p.Amount <= 0 {
		return
	}
	e.run.Coins += p.Amount
	e.store.IncrementStat(StatLifetimeCoins, p.Amount)
	e.unlockAtLeast(e.run.Coins, runCoinThresholds)
}

func (e *Engine) onShopPurchaseMetaBooster(events.Event) {
	e.tryUnlock(BoughtMetaBooster)
}

func (e *Engine) onShopPurchaseRunItem(events.Event) {
	e.run.ShopPurchases++
	e.store.IncrementStat(StatLifetimeShopPurchases, 1)
	if e.run.ShopPurchases >= 10 {
		e.tryUnlock(ShopItems10Run)
	}
}

func (e *Engine) onRelicUnlocked(events.Event) {
	total := e.store.IncrementStat(StatRelicsUnlocked, 1)
	e.tryUnlock(FirstRelic)
	e.progressAll(total, Relics3, RelicsAll)
	e.store.Save()
}

func (e *Engine) onMetaUpgradeBought(events.Event) {
	total := e.store.IncrementStat(StatMetaUpgradesBought, 1)
	e.tryUnlock(FirstMetaUpgrade)
	e.updateProgress(MetaUpgrades10, total)
	e.store.Save()
}

func (e *Engine) onBiomeChanged(ev events.Event) {
	p, _ := ev.(events.BiomeChanged)
	if !slices.Contains(Biomes, p.BiomeID) {
		return
	}
	e.run.VisitedBiomes[p.BiomeID] = true
	if len(e.run.VisitedBiomes) >= len(Biomes) {
		e.tryUnlock(VisitAllBiomes)
	}
}

func (e *Engine) onPickupCollected(ev events.Event) {
	p, _ := ev.(events.PickupCollected)
	if !slices.Contains(PickupTypes, p.PickupType) {
		return
	}
	e.store.MarkPickupType(p.PickupType)
	e.updateProgress(AllPickupTypes, e.store.Stat(StatPickupTypesCollected))
	e.store.Save()
}

func (e *Engine) onPlayerLevelChanged(ev events.Event) {
	p, _ := ev.(events.PlayerLevelChanged)
	e.run.Level = p.Level
	e.unlockAtLeast(p.Level, levelThresholds)
}

func (e *Engine) onReviveUsed(events.Event) {
	e.run.ReviveUsed = true
}

func (e *Engine) onMetaPerkMaxed(events.Event) {
	e.tryUnlock(MaxAnyPerk)
}
