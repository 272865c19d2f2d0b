// Package achievements tracks unlocks, lifetime stats and per-achievement
// progress, driven by gameplay events on the bus.
package achievements

import "time"

// Tier represents an achievement's difficulty level.
type Tier string

const (
	TierEasy      Tier = "easy"
	TierMedium    Tier = "medium"
	TierHard      Tier = "hard"
	TierVeryHard  Tier = "very_hard"
	TierLegendary Tier = "legendary"
)

// Type describes how an achievement is earned and displayed.
type Type string

const (
	TypeMilestone Type = "milestone"
	TypeProgress  Type = "progress"
	TypeChallenge Type = "challenge"
)

// Definition is a static, read-only achievement entry.
// Target is zero when the achievement has no numeric goal.
type Definition struct {
	ID          string
	Name        string
	Icon        string
	Tier        Tier
	Description string
	Type        Type
	Target      int
}

// HasTarget reports whether the definition carries a numeric goal.
func (d Definition) HasTarget() bool {
	return d.Target > 0
}

// Achievement ids referenced by the engine.
const (
	FirstKill           = "first_kill"
	FirstBoss           = "first_boss"
	Stage5              = "stage_5"
	Stage8              = "stage_8"
	Stage15             = "stage_15"
	Stage20             = "stage_20"
	Stage30             = "stage_30"
	Stage40             = "stage_40"
	Stage50             = "stage_50"
	Kills100Total       = "kills_100_total"
	Kills500Total       = "kills_500_total"
	Kills1000Total      = "kills_1000_total"
	Bosses10Total       = "bosses_10_total"
	Bosses20Total       = "bosses_20_total"
	Bosses2Run          = "bosses_2_run"
	Bosses3Run          = "bosses_3_run"
	Bosses5Run          = "bosses_5_run"
	Coins50Run          = "coins_50_run"
	Coins100Run         = "coins_100_run"
	Coins200Run         = "coins_200_run"
	Stage10In10Min      = "stage_10_in_10_min"
	NoReviveToStage20   = "no_revive_to_stage_20"
	NoBoosterToStage20  = "no_booster_to_stage_20"
	NoDamageToStage10   = "no_damage_to_stage_10"
	NoHitRoom           = "no_hit_room"
	NoHitRooms2Streak   = "no_hit_rooms_2_streak"
	NoHitRooms3Streak   = "no_hit_rooms_3_streak"
	NoHitRooms5Streak   = "no_hit_rooms_5_streak"
	NoHitTrapRooms5     = "no_hit_trap_rooms_5"
	NoHitBossStreak3    = "no_hit_boss_streak_3"
	BoughtMetaBooster   = "bought_meta_booster"
	ShopItems10Run      = "shop_items_10_run"
	FirstRelic          = "first_relic"
	Relics3             = "relics_3"
	RelicsAll           = "relics_all"
	FirstMetaUpgrade    = "first_meta_upgrade"
	MetaUpgrades10      = "meta_upgrades_10"
	VisitAllBiomes      = "visit_all_biomes"
	AllPickupTypes      = "all_pickup_types"
	Level5Run           = "level_5_run"
	Level15Run          = "level_15_run"
	MaxAnyPerk          = "max_any_perk"
	TrueDungeonGod      = "true_dungeon_god"
)

// Biomes lists every biome a run can visit.
var Biomes = []string{"crypt", "caverns", "fungal", "inferno", "frost", "abyss"}

// PickupTypes lists every distinct pickup the player can collect.
var PickupTypes = []string{"heart", "coin", "shield", "magnet", "bomb", "xp_orb", "key"}

// TotalRelics is the size of the relic set; kept in sync with meta.Relics.
const TotalRelics = 8

// FastStageWindow bounds the "reach stage 10 quickly" challenge.
const FastStageWindow = 10 * time.Minute

var catalog = []Definition{
	{FirstKill, "First Blood", "🗡️", TierEasy, "Kill your first enemy", TypeMilestone, 0},
	{FirstBoss, "Giant Slayer", "👹", TierEasy, "Defeat your first boss", TypeMilestone, 0},
	{Stage5, "Into the Depths", "🕯️", TierEasy, "Reach stage 5", TypeMilestone, 0},
	{Stage8, "Deeper Still", "🪜", TierEasy, "Reach stage 8", TypeMilestone, 0},
	{Stage15, "Delver", "⛏️", TierMedium, "Reach stage 15", TypeMilestone, 0},
	{Stage20, "Spelunker", "🔦", TierMedium, "Reach stage 20", TypeMilestone, 0},
	{Stage30, "Abyss Walker", "🌑", TierHard, "Reach stage 30", TypeMilestone, 0},
	{Stage40, "Lost Soul", "👻", TierVeryHard, "Reach stage 40", TypeMilestone, 0},
	{Stage50, "Bottom of the World", "🕳️", TierVeryHard, "Reach stage 50", TypeMilestone, 0},
	{Kills100Total, "Exterminator", "💀", TierEasy, "Kill 100 enemies in total", TypeProgress, 100},
	{Kills500Total, "Butcher", "🩸", TierMedium, "Kill 500 enemies in total", TypeProgress, 500},
	{Kills1000Total, "Reaper", "⚰️", TierHard, "Kill 1000 enemies in total", TypeProgress, 1000},
	{Bosses10Total, "Boss Hunter", "🏹", TierMedium, "Defeat 10 bosses in total", TypeProgress, 10},
	{Bosses20Total, "Boss Nemesis", "🎯", TierHard, "Defeat 20 bosses in total", TypeProgress, 20},
	{Bosses2Run, "Double Trouble", "⚔️", TierMedium, "Defeat 2 bosses in one run", TypeChallenge, 2},
	{Bosses3Run, "Hat Trick", "🎩", TierHard, "Defeat 3 bosses in one run", TypeChallenge, 3},
	{Bosses5Run, "Boss Rush", "🔥", TierVeryHard, "Defeat 5 bosses in one run", TypeChallenge, 5},
	{Coins50Run, "Pocket Change", "🪙", TierEasy, "Collect 50 coins in one run", TypeMilestone, 0},
	{Coins100Run, "Fat Purse", "💰", TierMedium, "Collect 100 coins in one run", TypeMilestone, 0},
	{Coins200Run, "Dragon Hoard", "🐉", TierHard, "Collect 200 coins in one run", TypeMilestone, 0},
	{Stage10In10Min, "Speedrunner", "⏱️", TierHard, "Reach stage 10 within 10 minutes", TypeChallenge, int(FastStageWindow / time.Millisecond)},
	{NoReviveToStage20, "No Second Chances", "🚫", TierHard, "Reach stage 20 without reviving", TypeChallenge, 0},
	{NoBoosterToStage20, "Purist", "🧘", TierHard, "Reach stage 20 without a meta booster", TypeChallenge, 0},
	{NoDamageToStage10, "Untouchable", "🛡️", TierVeryHard, "Reach stage 10 without taking damage", TypeChallenge, 0},
	{NoHitRoom, "Clean Sweep", "🧹", TierEasy, "Clear a room of 10+ enemies without getting hit", TypeChallenge, 0},
	{NoHitRooms2Streak, "Flawless Pair", "✌️", TierMedium, "Clear 2 qualifying rooms in a row without getting hit", TypeChallenge, 2},
	{NoHitRooms3Streak, "Ghost Step", "🌫️", TierHard, "Clear 3 qualifying rooms in a row without getting hit", TypeChallenge, 3},
	{NoHitRooms5Streak, "Phantom", "🫥", TierVeryHard, "Clear 5 qualifying rooms in a row without getting hit", TypeChallenge, 5},
	{NoHitTrapRooms5, "Trap Dancer", "🪤", TierHard, "Clear 5 trapped rooms without getting hit in one run", TypeChallenge, 5},
	{NoHitBossStreak3, "Perfect Duelist", "🤺", TierVeryHard, "Defeat 3 bosses in a row without getting hit", TypeChallenge, 3},
	{BoughtMetaBooster, "Head Start", "🚀", TierEasy, "Buy a meta booster", TypeMilestone, 0},
	{ShopItems10Run, "Big Spender", "🛒", TierMedium, "Buy 10 items in one run", TypeChallenge, 10},
	{FirstRelic, "Relic Finder", "🏺", TierEasy, "Unlock your first relic", TypeMilestone, 0},
	{Relics3, "Collector", "🗿", TierMedium, "Unlock 3 relics", TypeProgress, 3},
	{RelicsAll, "Curator", "🏛️", TierHard, "Unlock every relic", TypeProgress, TotalRelics},
	{FirstMetaUpgrade, "Invested", "📈", TierEasy, "Buy your first perk upgrade", TypeMilestone, 0},
	{MetaUpgrades10, "Self Improvement", "🏋️", TierMedium, "Buy 10 perk upgrades", TypeProgress, 10},
	{VisitAllBiomes, "Cartographer", "🗺️", TierMedium, "Visit every biome in one run", TypeChallenge, len(Biomes)},
	{AllPickupTypes, "Hoarder", "🎒", TierHard, "Collect every kind of pickup", TypeProgress, len(PickupTypes)},
	{Level5Run, "Apprentice", "⭐", TierEasy, "Reach level 5 in one run", TypeMilestone, 0},
	{Level15Run, "Champion", "🌟", TierMedium, "Reach level 15 in one run", TypeMilestone, 0},
	{MaxAnyPerk, "Perfected", "💎", TierMedium, "Max out any perk", TypeMilestone, 0},
	{TrueDungeonGod, "True Dungeon God", "👑", TierLegendary, "Reach stage 50 with no booster, no revive, 5 no-hit bosses and at most 3 hits", TypeChallenge, 0},
}

var byID = func() map[string]Definition {
	m := make(map[string]Definition, len(catalog))
	for _, d := range catalog {
		m[d.ID] = d
	}
	return m
}()

// All returns a copy of every definition in catalog order.
func All() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the definition for id.
func Lookup(id string) (Definition, bool) {
	d, ok := byID[id]
	return d, ok
}

// Count returns the number of achievements in the catalog.
func Count() int {
	return len(catalog)
}
