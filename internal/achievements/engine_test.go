package achievements

import (
	"testing"
	"time"

	"github.com/vovakirdan/dungeon-progress/internal/events"
)

type harness struct {
	bus      *events.Bus
	kv       *memKV
	store    *Store
	engine   *Engine
	clock    time.Time
	unlocked []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		bus:   events.NewBus(quietLogger),
		kv:    newMemKV(),
		clock: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	now := func() time.Time { return h.clock }
	h.store = NewStore(h.kv, StoreOptions{Logger: quietLogger, Now: now})
	h.store.Load(0)
	h.engine = NewEngine(h.bus, h.store, EngineOptions{Logger: quietLogger, Now: now})
	h.engine.Init(func(d Definition) { h.unlocked = append(h.unlocked, d.ID) })
	return h
}

func (h *harness) emit(evs ...events.Event) {
	for _, ev := range evs {
		h.bus.Emit(ev)
	}
}

func (h *harness) callbacks(id string) int {
	n := 0
	for _, u := range h.unlocked {
		if u == id {
			n++
		}
	}
	return n
}

func TestInitIsIdempotent(t *testing.T) {
	h := newHarness(t)

	var second []string
	h.engine.Init(func(d Definition) { second = append(second, d.ID) })

	if got := h.bus.HandlerCount(events.NameEnemyKilled); got != 1 {
		t.Fatalf("Expected 1 handler after double Init, got %d", got)
	}

	h.emit(events.EnemyKilled{})
	if len(h.unlocked) != 0 {
		t.Error("Expected old callback to be replaced")
	}
	if len(second) != 1 || second[0] != FirstKill {
		t.Errorf("Expected new callback to receive first_kill, got %v", second)
	}
	if h.engine.RunState().Kills != 1 {
		t.Errorf("Expected state not reset by second Init, got kills=%d", h.engine.RunState().Kills)
	}
}

func TestTryUnlockTwiceFiresOnce(t *testing.T) {
	for _, def := range All() {
		h := newHarness(t)
		h.engine.tryUnlock(def.ID)
		h.engine.tryUnlock(def.ID)

		if h.callbacks(def.ID) != 1 {
			t.Errorf("%s: expected exactly 1 callback, got %d", def.ID, h.callbacks(def.ID))
		}
		if len(h.store.data.Unlocked) != 1 {
			t.Errorf("%s: expected exactly 1 stored timestamp, got %d", def.ID, len(h.store.data.Unlocked))
		}
	}
}

func TestTryUnlockUnknownID(t *testing.T) {
	h := newHarness(t)
	h.engine.tryUnlock("not_a_real_achievement")
	if h.store.UnlockedCount() != 0 || len(h.unlocked) != 0 {
		t.Error("Expected unknown ids to be ignored")
	}
}

func TestHundredKills(t *testing.T) {
	h := newHarness(t)
	h.emit(events.RunStart{})
	for i := 0; i < 100; i++ {
		h.emit(events.EnemyKilled{})
	}

	if !h.engine.IsUnlocked(Kills100Total) {
		t.Error("Expected kills_100_total to unlock")
	}
	if h.engine.IsUnlocked(Kills500Total) || h.engine.IsUnlocked(Kills1000Total) {
		t.Error("Expected higher kill thresholds to stay locked")
	}
	if !h.engine.IsUnlocked(FirstKill) {
		t.Error("Expected first_kill to unlock")
	}

	p, ok := h.engine.DisplayProgress(Kills100Total)
	if !ok {
		t.Fatal("Expected progress for kills_100_total")
	}
	if p.Current != 100 || p.Target != 100 {
		t.Errorf("Expected {100 100}, got %+v", p)
	}
}

func TestDisplayProgressNoneForChallenges(t *testing.T) {
	h := newHarness(t)
	for _, def := range All() {
		_, ok := h.engine.DisplayProgress(def.ID)
		if def.Type == TypeChallenge && ok {
			t.Errorf("%s: expected no display progress for challenge", def.ID)
		}
		if def.Type == TypeMilestone && ok {
			t.Errorf("%s: expected no display progress for milestone", def.ID)
		}
	}
	if _, ok := h.engine.DisplayProgress("unknown"); ok {
		t.Error("Expected no display progress for unknown id")
	}
}

func TestEveryProgressAchievementHasDisplay(t *testing.T) {
	h := newHarness(t)
	for _, def := range All() {
		if def.Type != TypeProgress {
			continue
		}
		if _, ok := h.engine.DisplayProgress(def.ID); !ok {
			t.Errorf("%s: progress achievement missing display source", def.ID)
		}
	}
}

func qualifyingRoom(h *harness, hit bool) {
	h.emit(events.RoomStarted{EnemyCount: 12})
	if hit {
		h.emit(events.PlayerTookDamage{})
	}
	h.emit(events.RoomCleared{})
}

func TestNoHitStreakReset(t *testing.T) {
	h := newHarness(t)
	h.emit(events.RunStart{})

	qualifyingRoom(h, false)
	qualifyingRoom(h, false)
	qualifyingRoom(h, true)
	qualifyingRoom(h, false)

	run := h.engine.RunState()
	if run.NoHitQualifyingRoomsStreak != 1 {
		t.Errorf("Expected streak 1, got %d", run.NoHitQualifyingRoomsStreak)
	}
	if run.NoHitQualifyingRoomsTotal != 3 {
		t.Errorf("Expected total 3, got %d", run.NoHitQualifyingRoomsTotal)
	}
	if h.store.Stat(StatNoHitRoomsTotal) != 3 {
		t.Errorf("Expected lifetime total 3, got %d", h.store.Stat(StatNoHitRoomsTotal))
	}
	if !h.engine.IsUnlocked(NoHitRooms2Streak) {
		t.Error("Expected 2-streak to unlock")
	}
	if h.engine.IsUnlocked(NoHitRooms3Streak) {
		t.Error("Expected 3-streak to stay locked")
	}
}

func TestSmallRoomsDoNotCount(t *testing.T) {
	h := newHarness(t)
	h.emit(events.RunStart{})
	h.emit(events.RoomStarted{EnemyCount: 9}, events.RoomCleared{})

	if h.engine.RunState().NoHitQualifyingRoomsTotal != 0 {
		t.Error("Expected room with 9 enemies not to qualify")
	}
	if h.engine.IsUnlocked(NoHitRoom) {
		t.Error("Expected no_hit_room to stay locked")
	}
}

func TestDuplicateRoomClearCountsOnce(t *testing.T) {
	h := newHarness(t)
	h.emit(events.RunStart{})
	h.emit(events.RoomStarted{EnemyCount: 10}, events.RoomCleared{}, events.RoomCleared{})

	if h.engine.RunState().NoHitQualifyingRoomsTotal != 1 {
		t.Errorf("Expected 1 qualifying clear, got %d", h.engine.RunState().NoHitQualifyingRoomsTotal)
	}
}

func TestTrapRooms(t *testing.T) {
	h := newHarness(t)
	h.emit(events.RunStart{})
	for i := 0; i < 5; i++ {
		h.emit(events.RoomStarted{EnemyCount: 10, HasTraps: true})
		if i == 2 {
			h.emit(events.PlayerTookDamage{})
		}
		h.emit(events.RoomCleared{})
	}
	if h.engine.IsUnlocked(NoHitTrapRooms5) {
		t.Error("Expected trap challenge locked after only 4 clean trap rooms")
	}

	h.emit(events.RoomStarted{EnemyCount: 10, HasTraps: true}, events.RoomCleared{})
	if !h.engine.IsUnlocked(NoHitTrapRooms5) {
		t.Error("Expected trap challenge to unlock on 5th clean trap room")
	}
}

func TestNoReviveToStage20(t *testing.T) {
	t.Run("revived", func(t *testing.T) {
		h := newHarness(t)
		h.emit(events.RunStart{}, events.ReviveUsed{}, events.StageEntered{Stage: 20})
		if h.engine.IsUnlocked(NoReviveToStage20) {
			t.Error("Expected no_revive_to_stage_20 to stay locked after revive")
		}
	})

	t.Run("clean", func(t *testing.T) {
		h := newHarness(t)
		h.emit(events.RunStart{}, events.StageEntered{Stage: 20})
		if !h.engine.IsUnlocked(NoReviveToStage20) {
			t.Error("Expected no_revive_to_stage_20 to unlock")
		}
	})
}

func TestStageThresholds(t *testing.T) {
	h := newHarness(t)
	h.emit(events.RunStart{MetaBoosterActive: true}, events.StageEntered{Stage: 16})

	for _, id := range []string{Stage5, Stage8, Stage15} {
		if !h.engine.IsUnlocked(id) {
			t.Errorf("Expected %s unlocked", id)
		}
	}
	for _, id := range []string{Stage20, Stage30, Stage40, Stage50} {
		if h.engine.IsUnlocked(id) {
			t.Errorf("Expected %s locked", id)
		}
	}
	if h.store.Stat(StatHighestStageEver) != 16 {
		t.Errorf("Expected highestStageEver 16, got %d", h.store.Stat(StatHighestStageEver))
	}

	h.emit(events.StageEntered{Stage: 20})
	if h.engine.IsUnlocked(NoBoosterToStage20) {
		t.Error("Expected booster run not to unlock no_booster_to_stage_20")
	}
}

func TestStage10Timing(t *testing.T) {
	t.Run("fast", func(t *testing.T) {
		h := newHarness(t)
		h.emit(events.RunStart{})
		h.clock = h.clock.Add(9 * time.Minute)
		h.emit(events.StageEntered{Stage: 10})
		if !h.engine.IsUnlocked(Stage10In10Min) {
			t.Error("Expected speedrun achievement within 10 minutes")
		}
	})

	t.Run("slow", func(t *testing.T) {
		h := newHarness(t)
		h.emit(events.RunStart{})
		h.clock = h.clock.Add(11 * time.Minute)
		h.emit(events.StageEntered{Stage: 10})
		if h.engine.IsUnlocked(Stage10In10Min) {
			t.Error("Expected speedrun achievement locked after 11 minutes")
		}
	})
}

func TestNoDamageToStage10(t *testing.T) {
	h := newHarness(t)
	h.emit(events.RunStart{}, events.PlayerTookDamage{}, events.StageEntered{Stage: 10})
	if h.engine.IsUnlocked(NoDamageToStage10) {
		t.Error("Expected no_damage_to_stage_10 locked after damage")
	}
	if h.engine.RunState().DamageCount != 1 {
		t.Errorf("Expected damage count 1, got %d", h.engine.RunState().DamageCount)
	}
}

func TestRunStartResetsRunState(t *testing.T) {
	h := newHarness(t)
	h.emit(events.RunStart{}, events.EnemyKilled{}, events.ReviveUsed{}, events.CoinsGained{Amount: 30})
	h.emit(events.RunStart{})

	run := h.engine.RunState()
	if run.Kills != 0 || run.ReviveUsed || run.Coins != 0 {
		t.Errorf("Expected fresh run state, got %+v", run)
	}
	if h.store.Stat(StatTotalRuns) != 2 {
		t.Errorf("Expected totalRuns 2, got %d", h.store.Stat(StatTotalRuns))
	}
	if h.store.Stat(StatTotalKills) != 1 {
		t.Errorf("Expected lifetime kills to survive reset, got %d", h.store.Stat(StatTotalKills))
	}
}

func TestRunEndRaisesHighestStage(t *testing.T) {
	h := newHarness(t)
	h.emit(events.RunEnd{Stage: 12}, events.RunEnd{Stage: 7})
	if h.store.Stat(StatHighestStageEver) != 12 {
		t.Errorf("Expected high-water mark 12, got %d", h.store.Stat(StatHighestStageEver))
	}
}

func bossFight(h *harness, hits int) {
	h.emit(events.BossFightStarted{})
	for i := 0; i < hits; i++ {
		h.emit(events.PlayerTookDamage{})
	}
	h.emit(events.BossKilled{})
}

func TestBossKills(t *testing.T) {
	h := newHarness(t)
	h.emit(events.RunStart{})

	bossFight(h, 0)
	bossFight(h, 0)
	if !h.engine.IsUnlocked(FirstBoss) || !h.engine.IsUnlocked(Bosses2Run) {
		t.Error("Expected first_boss and bosses_2_run")
	}
	if h.engine.IsUnlocked(NoHitBossStreak3) {
		t.Error("Expected boss streak locked at 2")
	}

	bossFight(h, 1)
	if h.engine.RunState().NoHitBossStreak != 0 {
		t.Error("Expected boss streak reset after hit")
	}
	if h.engine.RunState().BossesNoHitThisRun != 2 {
		t.Errorf("Expected 2 no-hit bosses, got %d", h.engine.RunState().BossesNoHitThisRun)
	}

	bossFight(h, 0)
	bossFight(h, 0)
	bossFight(h, 0)
	if !h.engine.IsUnlocked(NoHitBossStreak3) {
		t.Error("Expected boss streak 3 to unlock")
	}
	if !h.engine.IsUnlocked(Bosses5Run) {
		t.Error("Expected bosses_5_run")
	}
	if h.store.Stat(StatTotalBossKills) != 6 {
		t.Errorf("Expected 6 lifetime boss kills, got %d", h.store.Stat(StatTotalBossKills))
	}
}

func TestTrueDungeonGod(t *testing.T) {
	h := newHarness(t)
	h.emit(events.RunStart{})
	h.emit(events.PlayerTookDamage{}, events.PlayerTookDamage{}, events.PlayerTookDamage{})
	h.emit(events.StageEntered{Stage: 50})
	for i := 0; i < 4; i++ {
		bossFight(h, 0)
	}
	if h.engine.IsUnlocked(TrueDungeonGod) {
		t.Fatal("Expected legendary locked with only 4 no-hit bosses")
	}
	bossFight(h, 0)
	if !h.engine.IsUnlocked(TrueDungeonGod) {
		t.Error("Expected legendary to unlock")
	}
}

func TestTrueDungeonGodTooManyHits(t *testing.T) {
	h := newHarness(t)
	h.emit(events.RunStart{}, events.StageEntered{Stage: 50})
	for i := 0; i < 4; i++ {
		h.emit(events.PlayerTookDamage{})
	}
	for i := 0; i < 5; i++ {
		bossFight(h, 0)
	}
	if h.engine.IsUnlocked(TrueDungeonGod) {
		t.Error("Expected legendary locked with 4 damage events")
	}
}

func TestCoins(t *testing.T) {
	h := newHarness(t)
	h.emit(events.RunStart{}, events.CoinsGained{Amount: 60}, events.CoinsGained{Amount: -500}, events.CoinsGained{Amount: 45})

	if !h.engine.IsUnlocked(Coins50Run) || !h.engine.IsUnlocked(Coins100Run) {
		t.Error("Expected 50 and 100 coin achievements")
	}
	if h.engine.IsUnlocked(Coins200Run) {
		t.Error("Expected 200 coin achievement locked")
	}
	if h.store.Stat(StatLifetimeCoins) != 105 {
		t.Errorf("Expected lifetime coins 105, got %d", h.store.Stat(StatLifetimeCoins))
	}
}

func TestShopPurchases(t *testing.T) {
	h := newHarness(t)
	h.emit(events.RunStart{}, events.ShopPurchaseMetaBooster{})
	for i := 0; i < 10; i++ {
		h.emit(events.ShopPurchaseRunItem{})
	}
	if !h.engine.IsUnlocked(BoughtMetaBooster) || !h.engine.IsUnlocked(ShopItems10Run) {
		t.Error("Expected shop achievements")
	}
}

func TestRelicsAndUpgrades(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 3; i++ {
		h.emit(events.RelicUnlocked{})
	}
	if !h.engine.IsUnlocked(FirstRelic) || !h.engine.IsUnlocked(Relics3) {
		t.Error("Expected relic achievements")
	}
	if h.engine.IsUnlocked(RelicsAll) {
		t.Error("Expected relics_all locked")
	}
	if p, _ := h.engine.DisplayProgress(RelicsAll); p.Current != 3 || p.Target != TotalRelics {
		t.Errorf("Expected relics_all progress 3/%d, got %+v", TotalRelics, p)
	}

	for i := 0; i < 10; i++ {
		h.emit(events.MetaUpgradeBought{})
	}
	if !h.engine.IsUnlocked(FirstMetaUpgrade) || !h.engine.IsUnlocked(MetaUpgrades10) {
		t.Error("Expected upgrade achievements")
	}

	h.emit(events.MetaPerkMaxed{})
	if !h.engine.IsUnlocked(MaxAnyPerk) {
		t.Error("Expected max_any_perk")
	}
}

func TestBiomes(t *testing.T) {
	h := newHarness(t)
	h.emit(events.RunStart{})
	for _, b := range Biomes[:len(Biomes)-1] {
		h.emit(events.BiomeChanged{BiomeID: b})
		h.emit(events.BiomeChanged{BiomeID: b})
	}
	h.emit(events.BiomeChanged{BiomeID: "moon"})
	if h.engine.IsUnlocked(VisitAllBiomes) {
		t.Fatal("Expected visit_all_biomes locked before the last biome")
	}
	h.emit(events.BiomeChanged{BiomeID: Biomes[len(Biomes)-1]})
	if !h.engine.IsUnlocked(VisitAllBiomes) {
		t.Error("Expected visit_all_biomes to unlock")
	}
}

func TestPickupsPersistAcrossRuns(t *testing.T) {
	h := newHarness(t)
	half := len(PickupTypes) / 2
	for _, p := range PickupTypes[:half] {
		h.emit(events.PickupCollected{PickupType: p})
	}
	h.emit(events.PickupCollected{}, events.RunStart{})

	reloaded := NewStore(h.kv, StoreOptions{Logger: quietLogger})
	reloaded.Load(0)
	if reloaded.Stat(StatPickupTypesCollected) != half {
		t.Errorf("Expected %d persisted pickup types, got %d", half, reloaded.Stat(StatPickupTypesCollected))
	}

	for _, p := range PickupTypes[half:] {
		h.emit(events.PickupCollected{PickupType: p})
	}
	if !h.engine.IsUnlocked(AllPickupTypes) {
		t.Error("Expected all_pickup_types to unlock")
	}
}

func TestLevels(t *testing.T) {
	h := newHarness(t)
	h.emit(events.RunStart{}, events.PlayerLevelChanged{Level: 6})
	if !h.engine.IsUnlocked(Level5Run) || h.engine.IsUnlocked(Level15Run) {
		t.Error("Expected only level 5 achievement")
	}
	if h.engine.RunState().Level != 6 {
		t.Errorf("Expected run level 6, got %d", h.engine.RunState().Level)
	}
}

func TestSaveFailureDoesNotBreakEngine(t *testing.T) {
	h := newHarness(t)
	h.kv.failPuts = true

	h.emit(events.RunStart{}, events.EnemyKilled{}, events.BossKilled{})
	if !h.engine.IsUnlocked(FirstKill) || !h.engine.IsUnlocked(FirstBoss) {
		t.Error("Expected in-memory unlocks despite failing storage")
	}
	if h.callbacks(FirstKill) != 1 {
		t.Error("Expected callback even when save fails")
	}
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, d := range All() {
		if seen[d.ID] {
			t.Errorf("Duplicate achievement id %s", d.ID)
		}
		seen[d.ID] = true
		if d.Type == TypeProgress && !d.HasTarget() {
			t.Errorf("%s: progress achievement without target", d.ID)
		}
	}
	if Count() != len(seen) {
		t.Errorf("Expected Count() %d, got %d", len(seen), Count())
	}
}
