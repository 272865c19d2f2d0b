package achievements

// Progress is the current/target pair shown on progress bars.
type Progress struct {
	Current int
	Target  int
}

// progressStats maps progress-bearing achievements to the stat that drives them.
var progressStats = map[string]string{
	Kills100Total:  StatTotalKills,
	Kills500Total:  StatTotalKills,
	Kills1000Total: StatTotalKills,
	Bosses10Total:  StatTotalBossKills,
	Bosses20Total:  StatTotalBossKills,
	Relics3:        StatRelicsUnlocked,
	RelicsAll:      StatRelicsUnlocked,
	MetaUpgrades10: StatMetaUpgradesBought,
	AllPickupTypes: StatPickupTypesCollected,
}

// DisplayProgress returns the progress bar values for id. The boolean is
// false for achievements without numeric progress, including every challenge.
func (e *Engine) DisplayProgress(id string) (Progress, bool) {
	stat, ok := progressStats[id]
	if !ok {
		return Progress{}, false
	}
	def, ok := Lookup(id)
	if !ok || def.Type != TypeProgress {
		return Progress{}, false
	}
	return Progress{Current: e.store.Stat(stat), Target: def.Target}, true
}
