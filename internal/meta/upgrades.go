package meta

// RunUpgrade is a bonus that, once unlocked, may be offered during runs.
type RunUpgrade struct {
	ID          string
	Name        string
	Description string
}

// RunUpgrades lists every unlockable run upgrade.
var RunUpgrades = []RunUpgrade{
	{"chain_lightning", "Chain Lightning", "Hits arc to a nearby enemy"},
	{"vampiric_strikes", "Vampiric Strikes", "Heal a sliver on every kill"},
	{"double_dash", "Double Dash", "Dash twice before cooldown"},
	{"treasure_sense", "Treasure Sense", "Reveal chests on the map"},
	{"thorn_aura", "Thorn Aura", "Reflect contact damage"},
	{"second_wind", "Second Wind", "Regenerate after clearing a room"},
}

// IsRunUpgradeUnlocked reports whether id is unlocked.
func (s *Store) IsRunUpgradeUnlocked(id string) bool {
	return s.state.RunUpgradesUnlocked[id]
}

// UnlockedRunUpgradeIDs returns unlocked upgrade ids in catalog order.
func (s *Store) UnlockedRunUpgradeIDs() []string {
	var ids []string
	for _, u := range RunUpgrades {
		if s.state.RunUpgradesUnlocked[u.ID] {
			ids = append(ids, u.ID)
		}
	}
	return ids
}

// LockedRunUpgradeIDs returns still-locked upgrade ids in catalog order.
func (s *Store) LockedRunUpgradeIDs() []string {
	var ids []string
	for _, u := range RunUpgrades {
		if !s.state.RunUpgradesUnlocked[u.ID] {
			ids = append(ids, u.ID)
		}
	}
	return ids
}

// UnlockRunUpgrade unlocks id and persists. Returns false if id is unknown
// or already unlocked.
func (s *Store) UnlockRunUpgrade(id string) bool {
	if !IsKnownRunUpgrade(id) || s.state.RunUpgradesUnlocked[id] {
		return false
	}
	s.state.RunUpgradesUnlocked[id] = true
	s.Save()
	return true
}

// IsKnownRunUpgrade reports whether id names a run upgrade.
func IsKnownRunUpgrade(id string) bool {
	for _, u := range RunUpgrades {
		if u.ID == id {
			return true
		}
	}
	return false
}
