package talents

// Mods is the fixed-shape bonus bundle derived from talent ranks.
type Mods struct {
	DamageMultiplier       float64
	CritChance             float64
	AttackSpeedMultiplier  float64
	CritDamageMultiplier   float64
	Lifesteal              float64
	MaxHPMultiplier        float64
	DamageTakenMultiplier  float64
	RegenPerSecond         float64
	ShieldMultiplier       float64
	DodgeChance            float64
	MoveSpeedMultiplier    float64
	PickupRadiusMultiplier float64
	XPMultiplier           float64
	CoinMultiplier         float64
	CooldownMultiplier     float64
}

func neutralMods() Mods {
	return Mods{
		DamageMultiplier:       1,
		AttackSpeedMultiplier:  1,
		CritDamageMultiplier:   1,
		MaxHPMultiplier:        1,
		DamageTakenMultiplier:  1,
		ShieldMultiplier:       1,
		MoveSpeedMultiplier:    1,
		PickupRadiusMultiplier: 1,
		XPMultiplier:           1,
		CoinMultiplier:         1,
		CooldownMultiplier:     1,
	}
}

// ComputeTalentMods derives the bundle from the current ranks.
func ComputeTalentMods(s *State) Mods {
	m := neutralMods()
	if s == nil {
		return m
	}
	for _, n := range nodes {
		if r := s.Ranks[n.ID]; r > 0 {
			n.apply(&m, float64(r)*n.PerRank)
		}
	}
	return m
}
