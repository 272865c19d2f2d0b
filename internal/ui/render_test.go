package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dungeon-progress/internal/achievements"
	"github.com/vovakirdan/dungeon-progress/internal/events"
	"github.com/vovakirdan/dungeon-progress/internal/meta"
	"github.com/vovakirdan/dungeon-progress/internal/progression"
	"github.com/vovakirdan/dungeon-progress/internal/rewards"
	"github.com/vovakirdan/dungeon-progress/internal/storage"
	"github.com/vovakirdan/dungeon-progress/internal/talents"
)

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func init() {
	DisableColor()
}

func TestBar(t *testing.T) {
	if got := Bar(5, 10, 10); got != strings.Repeat("█", 5)+strings.Repeat("░", 5) {
		t.Errorf("Unexpected bar %q", got)
	}
	if got := Bar(50, 10, 4); got != strings.Repeat("█", 4) {
		t.Errorf("Expected bar clamped to width, got %q", got)
	}
	if Bar(1, 0, 10) != "" {
		t.Error("Expected empty bar for zero target")
	}
}

func TestRenderAchievements(t *testing.T) {
	st, err := storage.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	logger := log.New(discard{})
	bus := events.NewBus(logger)
	store := achievements.NewStore(st, achievements.StoreOptions{Logger: logger})
	eng := achievements.NewEngine(bus, store, achievements.EngineOptions{Logger: logger})
	eng.Init(nil)
	for i := 0; i < 40; i++ {
		bus.Emit(events.EnemyKilled{})
	}

	out := RenderAchievements(eng, 0)
	if !strings.Contains(out, "1/") {
		t.Errorf("Expected unlock count in output:\n%s", out)
	}
	if !strings.Contains(out, "40/100") {
		t.Errorf("Expected kill progress 40/100 in output:\n%s", out)
	}
}

func TestRenderProfiles(t *testing.T) {
	out := RenderProfiles([]int{0, 2}, 3, 2)
	for _, want := range []string{"0  saved", "1  empty", "> 2  saved"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderMeta(t *testing.T) {
	st, err := storage.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	store := meta.NewStore(st, meta.StoreOptions{Logger: log.New(discard{})})
	store.Load()
	store.State().TotalCoreShards = 7
	store.State().RelicsUnlocked[meta.RelicIronSkin] = true

	out := RenderMeta(store, rewards.ComputeAllModifiers(*store.State()))
	for _, want := range []string{"Iron Skin", "Vitality", "x0.90", "???"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderTalents(t *testing.T) {
	s := talents.NewState()
	talents.GrantPoints(s, 2)
	talents.UpgradeNode(s, "thick_hide")

	out := RenderTalents(s)
	for _, want := range []string{"OFFENSE", "DEFENSE", "UTILITY", "Thick Hide", "1/3", "1 points, 1 spent"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderReplay(t *testing.T) {
	def, _ := achievements.Lookup(achievements.FirstKill)
	out := RenderReplay(progression.Report{Steps: 2, Events: 3, Unlocked: []achievements.Definition{def}})
	if !strings.Contains(out, def.Name) {
		t.Errorf("Expected unlocked name in output:\n%s", out)
	}
	if !strings.Contains(RenderReplay(progression.Report{}), "no new achievements") {
		t.Error("Expected empty replay message")
	}
}
