// Package events defines the gameplay events consumed by the progression core
// and the synchronous bus that fans them out to subscribers.
package events

import "fmt"

// Name identifies an event kind on the bus.
type Name string

const (
	NameRunStart                Name = "run_start"
	NameRunEnd                  Name = "run_end"
	NameStageEntered            Name = "stage_entered"
	NameRoomStarted             Name = "room_started"
	NameRoomCleared             Name = "room_cleared"
	NamePlayerTookDamage        Name = "player_took_damage"
	NameEnemyKilled             Name = "enemy_killed"
	NameBossFightStarted        Name = "boss_fight_started"
	NameBossKilled              Name = "boss_killed"
	NameCoinsGained             Name = "coins_gained"
	NameShopPurchaseMetaBooster Name = "shop_purchase_meta_booster"
	NameShopPurchaseRunItem     Name = "shop_purchase_run_item"
	NameRelicUnlocked           Name = "relic_unlocked"
	NameMetaUpgradeBought       Name = "meta_upgrade_bought"
	NameBiomeChanged            Name = "biome_changed"
	NamePickupCollected         Name = "pickup_collected"
	NamePlayerLevelChanged      Name = "player_level_changed"
	NameReviveUsed              Name = "revive_used"
	NameMetaPerkMaxed           Name = "meta_perk_maxed"
)

// All lists every event name in declaration order.
var All = []Name{
	NameRunStart, NameRunEnd, NameStageEntered, NameRoomStarted, NameRoomCleared,
	NamePlayerTookDamage, NameEnemyKilled, NameBossFightStarted, NameBossKilled,
	NameCoinsGained, NameShopPurchaseMetaBooster, NameShopPurchaseRunItem,
	NameRelicUnlocked, NameMetaUpgradeBought, NameBiomeChanged, NamePickupCollected,
	NamePlayerLevelChanged, NameReviveUsed, NameMetaPerkMaxed,
}

// Event is implemented by every payload type that can travel on the bus.
type Event interface {
	Name() Name
}

// RunStart is emitted when a new run begins.
type RunStart struct {
	MetaBoosterActive bool
}

func (RunStart) Name() Name { return NameRunStart }

// RunEnd is emitted when the player dies or wins.
type RunEnd struct {
	Stage int
}

func (RunEnd) Name() Name { return NameRunEnd }

// StageEntered is emitted when the player descends to a new stage.
type StageEntered struct {
	Stage int
}

func (StageEntered) Name() Name { return NameStageEntered }

// RoomStarted is emitted when a room's encounter begins.
type RoomStarted struct {
	EnemyCount int
	HasTraps   bool
}

func (RoomStarted) Name() Name { return NameRoomStarted }

// RoomCleared is emitted once every enemy in the room is dead.
type RoomCleared struct{}

func (RoomCleared) Name() Name { return NameRoomCleared }

type PlayerTookDamage struct{}

func (PlayerTookDamage) Name() Name { return NamePlayerTookDamage }

type EnemyKilled struct{}

func (EnemyKilled) Name() Name { return NameEnemyKilled }

type BossFightStarted struct{}

func (BossFightStarted) Name() Name { return NameBossFightStarted }

type BossKilled struct{}

func (BossKilled) Name() Name { return NameBossKilled }

// CoinsGained carries the number of coins picked up.
type CoinsGained struct {
	Amount int
}

func (CoinsGained) Name() Name { return NameCoinsGained }

type ShopPurchaseMetaBooster struct{}

func (ShopPurchaseMetaBooster) Name() Name { return NameShopPurchaseMetaBooster }

type ShopPurchaseRunItem struct{}

func (ShopPurchaseRunItem) Name() Name { return NameShopPurchaseRunItem }

type RelicUnlocked struct{}

func (RelicUnlocked) Name() Name { return NameRelicUnlocked }

type MetaUpgradeBought struct{}

func (MetaUpgradeBought) Name() Name { return NameMetaUpgradeBought }

// BiomeChanged is emitted when the run moves into another biome.
type BiomeChanged struct {
	BiomeID string
}

func (BiomeChanged) Name() Name { return NameBiomeChanged }

// PickupCollected is emitted for every pickup the player grabs.
type PickupCollected struct {
	PickupType string
}

func (PickupCollected) Name() Name { return NamePickupCollected }

// PlayerLevelChanged carries the player's new in-run level.
type PlayerLevelChanged struct {
	Level int
}

func (PlayerLevelChanged) Name() Name { return NamePlayerLevelChanged }

type ReviveUsed struct{}

func (ReviveUsed) Name() Name { return NameReviveUsed }

type MetaPerkMaxed struct{}

func (MetaPerkMaxed) Name() Name { return NameMetaPerkMaxed }

// Decode builds a typed event from a loosely-typed field map, as read from
// replay scripts. Missing or mistyped fields fall back to zero values.
func Decode(name Name, fields map[string]any) (Event, error) {
	switch name {
	case NameRunStart:
		return RunStart{MetaBoosterActive: boolField(fields, "metaBoosterActive")}, nil
	case NameRunEnd:
		return RunEnd{Stage: intField(fields, "stage")}, nil
	case NameStageEntered:
		return StageEntered{Stage: intField(fields, "stage")}, nil
	case NameRoomStarted:
		return RoomStarted{
			EnemyCount: intField(fields, "enemyCount"),
			HasTraps:   boolField(fields, "hasTraps"),
		}, nil
	case NameRoomCleared:
		return RoomCleared{}, nil
	case NamePlayerTookDamage:
		return PlayerTookDamage{}, nil
	case NameEnemyKilled:
		return EnemyKilled{}, nil
	case NameBossFightStarted:
		return BossFightStarted{}, nil
	case NameBossKilled:
		return BossKilled{}, nil
	case NameCoinsGained:
		return CoinsGained{Amount: intField(fields, "amount")}, nil
	case NameShopPurchaseMetaBooster:
		return ShopPurchaseMetaBooster{}, nil
	case NameShopPurchaseRunItem:
		return ShopPurchaseRunItem{}, nil
	case NameRelicUnlocked:
		return RelicUnlocked{}, nil
	case NameMetaUpgradeBought:
		return MetaUpgradeBought{}, nil
	case NameBiomeChanged:
		return BiomeChanged{BiomeID: stringField(fields, "biomeId")}, nil
	case NamePickupCollected:
		return PickupCollected{PickupType: stringField(fields, "pickupType")}, nil
	case NamePlayerLevelChanged:
		return PlayerLevelChanged{Level: intField(fields, "level")}, nil
	case NameReviveUsed:
		return ReviveUsed{}, nil
	case NameMetaPerkMaxed:
		return MetaPerkMaxed{}, nil
	default:
		return nil, fmt.Errorf("events: unknown event %q", name)
	}
}

func intField(fields map[string]any, key string) int {
	switch v := fields[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func boolField(fields map[string]any, key string) bool {
	v, _ := fields[key].(bool)
	return v
}

func stringField(fields map[string]any, key string) string {
	v, _ := fields[key].(string)
	return v
}
