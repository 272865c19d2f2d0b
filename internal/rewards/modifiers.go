package rewards

import "github.com/vovakirdan/dungeon-progress/internal/meta"

// Modifiers is the effective stat bundle for one run.
type Modifiers struct {
	HPMultiplier               float64
	DamageMultiplier           float64
	SpeedMultiplier            float64
	XPMultiplier               float64
	BossDamageMultiplier       float64
	DamageTakenMultiplier      float64
	HealOnLevelUpPct           float64
	StartingXPBonus            int
	SpikeDamageTakenMultiplier float64
	LavaDamageTakenMultiplier  float64
}

// ComputeAllModifiers merges perk and relic bundles. HP and damage come from
// perks only, speed and XP stack multiplicatively, the rest are relic-only.
func ComputeAllModifiers(s meta.State) Modifiers {
	p := meta.ComputePerkModifiers(s)
	r := meta.ComputeRelicModifiers(s)
	return Modifiers{
		HPMultiplier:               p.HPMultiplier,
		DamageMultiplier:           p.DamageMultiplier,
		SpeedMultiplier:            p.SpeedMultiplier * r.SpeedMultiplier,
		XPMultiplier:               p.XPMultiplier * r.XPMultiplier,
		BossDamageMultiplier:       r.BossDamageMultiplier,
		DamageTakenMultiplier:      r.DamageTakenMultiplier,
		HealOnLevelUpPct:           r.HealOnLevelUpPct,
		StartingXPBonus:            r.StartingXPBonus,
		SpikeDamageTakenMultiplier: r.SpikeDamageTakenMultiplier,
		LavaDamageTakenMultiplier:  r.LavaDamageTakenMultiplier,
	}
}
