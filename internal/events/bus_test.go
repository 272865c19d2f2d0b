package events

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestEmitCallsHandlersInOrder(t *testing.T) {
	bus := NewBus(nil)

	var order []int
	bus.On(NameEnemyKilled, func(Event) { order = append(order, 1) })
	bus.On(NameEnemyKilled, func(Event) { order = append(order, 2) })
	bus.On(NameEnemyKilled, func(Event) { order = append(order, 3) })

	bus.Emit(EnemyKilled{})

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("Expected handlers in registration order, got %v", order)
	}
}

func TestEmitOnlyMatchingName(t *testing.T) {
	bus := NewBus(nil)

	calls := 0
	bus.On(NameBossKilled, func(Event) { calls++ })

	bus.Emit(EnemyKilled{})
	if calls != 0 {
		t.Errorf("Expected no calls for different event, got %d", calls)
	}
}

func TestEmitPassesPayload(t *testing.T) {
	bus := NewBus(nil)

	var got CoinsGained
	bus.On(NameCoinsGained, func(ev Event) { got = ev.(CoinsGained) })

	bus.Emit(CoinsGained{Amount: 42})
	if got.Amount != 42 {
		t.Errorf("Expected amount 42, got %d", got.Amount)
	}
}

func TestPanickingHandlerIsIsolated(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	bus := NewBus(logger)

	secondRan := false
	bus.On(NameRunStart, func(Event) { panic("broken listener") })
	bus.On(NameRunStart, func(Event) { secondRan = true })

	bus.Emit(RunStart{})

	if !secondRan {
		t.Error("Expected second handler to run after first panicked")
	}
	if !strings.Contains(buf.String(), "event handler panicked") {
		t.Errorf("Expected panic to be logged, got %q", buf.String())
	}
}

func TestOffRemovesHandler(t *testing.T) {
	bus := NewBus(nil)

	calls := 0
	id := bus.On(NameReviveUsed, func(Event) { calls++ })
	keep := bus.On(NameReviveUsed, func(Event) { calls += 10 })

	if !bus.Off(NameReviveUsed, id) {
		t.Fatal("Expected Off to find handler")
	}
	if bus.Off(NameReviveUsed, id) {
		t.Error("Expected second Off to report missing handler")
	}

	bus.Emit(ReviveUsed{})
	if calls != 10 {
		t.Errorf("Expected only remaining handler to run, got calls=%d", calls)
	}
	if bus.HandlerCount(NameReviveUsed) != 1 {
		t.Errorf("Expected 1 handler left, got %d", bus.HandlerCount(NameReviveUsed))
	}
	bus.Off(NameReviveUsed, keep)
}

func TestHandlerMaySubscribeDuringEmit(t *testing.T) {
	bus := NewBus(nil)

	bus.On(NameRoomCleared, func(Event) {
		bus.On(NameRoomCleared, func(Event) {})
	})

	bus.Emit(RoomCleared{})
	if bus.HandlerCount(NameRoomCleared) != 2 {
		t.Errorf("Expected 2 handlers, got %d", bus.HandlerCount(NameRoomCleared))
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   Name
		fields map[string]any
		want   Event
	}{
		{NameStageEntered, map[string]any{"stage": 12}, StageEntered{Stage: 12}},
		{NameRoomStarted, map[string]any{"enemyCount": 11.0, "hasTraps": true}, RoomStarted{EnemyCount: 11, HasTraps: true}},
		{NameBiomeChanged, map[string]any{"biomeId": "frost"}, BiomeChanged{BiomeID: "frost"}},
		{NameCoinsGained, map[string]any{"amount": "lots"}, CoinsGained{}},
		{NameRunStart, nil, RunStart{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			got, err := Decode(tt.name, tt.fields)
			if err != nil {
				t.Fatalf("Decode() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestDecodeUnknown(t *testing.T) {
	if _, err := Decode("dragon_tamed", nil); err == nil {
		t.Error("Expected error for unknown event")
	}
}

func TestDecodeCoversAllNames(t *testing.T) {
	for _, name := range All {
		ev, err := Decode(name, nil)
		if err != nil {
			t.Errorf("Decode(%s) failed: %v", name, err)
			continue
		}
		if ev.Name() != name {
			t.Errorf("Decode(%s) returned event named %s", name, ev.Name())
		}
	}
}
