package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dungeon-progress/internal/achievements"
	"github.com/vovakirdan/dungeon-progress/internal/meta"
	"github.com/vovakirdan/dungeon-progress/internal/progression"
	"github.com/vovakirdan/dungeon-progress/internal/rewards"
	"github.com/vovakirdan/dungeon-progress/internal/talents"
)

const barWidth = 20

// RenderAchievements lists the catalog with unlock state and progress bars.
func RenderAchievements(eng *achievements.Engine, profile int) string {
	var b strings.Builder
	b.WriteString(Heading(IconTrophy, fmt.Sprintf("Achievements (profile %d)", profile)))
	b.WriteString("  ")
	b.WriteString(Muted.Render(fmt.Sprintf("%d/%d unlocked", eng.UnlockedCount(), achievements.Count())))
	b.WriteString("\n\n")

	for _, def := range achievements.All() {
		mark := IconLock
		name := Muted.Render(def.Name)
		if eng.IsUnlocked(def.ID) {
			mark = def.Icon
			name = Good.Render(def.Name)
			if at, ok := eng.Store().UnlockedAt(def.ID); ok {
				name += " " + Muted.Render(at.Format("2006-01-02"))
			}
		}
		fmt.Fprintf(&b, "%s %s  %s\n", mark, name, TierText(def.Tier))
		fmt.Fprintf(&b, "   %s\n", Muted.Render(def.Description))
		if p, ok := eng.DisplayProgress(def.ID); ok && !eng.IsUnlocked(def.ID) {
			fmt.Fprintf(&b, "   %s %d/%d\n", Bar(p.Current, p.Target, barWidth), min(p.Current, p.Target), p.Target)
		}
	}
	return b.String()
}

// RenderProfiles lists every profile slot, marking saved and active ones.
func RenderProfiles(stored []int, total, active int) string {
	saved := make(map[int]bool, len(stored))
	for _, i := range stored {
		saved[i] = true
	}

	var b strings.Builder
	b.WriteString(Heading(IconScroll, "Profiles") + "\n")
	for i := 0; i < total; i++ {
		marker := "  "
		if i == active {
			marker = Key.Render("> ")
		}
		state := Muted.Render("empty")
		if saved[i] {
			state = Good.Render("saved")
		}
		fmt.Fprintf(&b, "%s%d  %s\n", marker, i, state)
	}
	return b.String()
}

// RenderMeta shows shards, perks, relics and run upgrades side by side with
// the resulting run modifiers.
func RenderMeta(store *meta.Store, mods rewards.Modifiers) string {
	st := store.State()

	var left strings.Builder
	left.WriteString(Heading(IconShard, "Core Shards") + "\n")
	left.WriteString(LabelValue("available", Gold.Render(fmt.Sprint(store.AvailableShards()))) + "\n")
	left.WriteString(LabelValue("earned", st.TotalCoreShards) + "\n")
	left.WriteString(LabelValue("spent", st.SpentCoreShards) + "\n\n")

	left.WriteString(H2.Render(IconPerk+" Perks") + "\n")
	for _, p := range meta.Perks {
		lvl := store.PerkLevel(p.ID)
		cost := "max"
		if c := store.NextCost(p.ID); c >= 0 {
			cost = fmt.Sprintf("next %d", c)
		}
		fmt.Fprintf(&left, "%-9s %s %2d/%d %s\n", p.Name, Bar(lvl, meta.MaxPerkLevel, meta.MaxPerkLevel), lvl, meta.MaxPerkLevel, Muted.Render(cost))
	}

	left.WriteString("\n" + H2.Render(IconRelic+" Relics") + "\n")
	for _, r := range meta.Relics {
		if store.IsRelicUnlocked(r.ID) {
			fmt.Fprintf(&left, "%s %s\n", Good.Render(r.Name), Muted.Render(r.Description))
		} else {
			fmt.Fprintf(&left, "%s %s\n", IconLock, Muted.Render("???"))
		}
	}

	left.WriteString("\n" + H2.Render(IconUpgrade+" Run Upgrades") + "\n")
	for _, u := range meta.RunUpgrades {
		if store.IsRunUpgradeUnlocked(u.ID) {
			fmt.Fprintf(&left, "%s %s\n", Good.Render(u.Name), Muted.Render(u.Description))
		} else {
			fmt.Fprintf(&left, "%s %s\n", IconLock, Muted.Render(u.Name))
		}
	}

	var right strings.Builder
	right.WriteString(H2.Render("Run Modifiers") + "\n")
	rows := []struct {
		label string
		value float64
	}{
		{"hp", mods.HPMultiplier},
		{"damage", mods.DamageMultiplier},
		{"speed", mods.SpeedMultiplier},
		{"xp", mods.XPMultiplier},
		{"boss dmg", mods.BossDamageMultiplier},
		{"dmg taken", mods.DamageTakenMultiplier},
		{"spikes", mods.SpikeDamageTakenMultiplier},
		{"lava", mods.LavaDamageTakenMultiplier},
	}
	for _, r := range rows {
		fmt.Fprintf(&right, "%-10s x%.2f\n", r.label, r.value)
	}
	fmt.Fprintf(&right, "%-10s %.0f%%\n", "heal/lvl", mods.HealOnLevelUpPct*100)
	fmt.Fprintf(&right, "%-10s %d\n", "start xp", mods.StartingXPBonus)
	right.WriteString("\n" + LabelValue("runs", st.Stats.RunsPlayed) + "\n")
	right.WriteString(LabelValue("bosses", st.Stats.BossesKilledTotal) + "\n")
	right.WriteString(LabelValue("best stage", st.Stats.HighestStage))

	return lipgloss.JoinHorizontal(lipgloss.Top, Panel.Render(left.String()), "  ", Panel.Render(right.String()))
}

// RenderTalents draws the three branches as columns.
func RenderTalents(s *talents.State) string {
	cols := make([]string, 0, len(talents.Branches))
	for _, br := range talents.Branches {
		var col strings.Builder
		col.WriteString(H2.Render(strings.ToUpper(string(br))) + "\n")
		for _, n := range talents.NodesForBranch(br) {
			rank := s.Ranks[n.ID]
			name := Muted.Render(n.Name)
			switch {
			case rank >= talents.MaxRank:
				name = Gold.Render(n.Name)
			case rank > 0:
				name = Good.Render(n.Name)
			case talents.CanUpgradeNode(s, n.ID):
				name = Key.Render(n.Name)
			}
			fmt.Fprintf(&col, "T%d %s %d/%d\n   %s\n", n.Tier+1, name, rank, talents.MaxRank, Muted.Render(n.Description))
		}
		cols = append(cols, Panel.Render(col.String()))
	}

	header := Heading(IconTalent, "Talents") + "  " +
		Muted.Render(fmt.Sprintf("%d points, %d spent", s.Points, talents.SpentPoints(s)))
	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// RenderReplay summarizes a replayed script.
func RenderReplay(r progression.Report) string {
	var b strings.Builder
	b.WriteString(Heading(IconScroll, "Replay") + "\n")
	b.WriteString(LabelValue("steps", r.Steps) + "\n")
	b.WriteString(LabelValue("events", r.Events) + "\n")
	b.WriteString(LabelValue("shards", Gold.Render(fmt.Sprint(r.ShardsGained))) + "\n")
	if r.PerksBought > 0 || r.PerksFailed > 0 {
		b.WriteString(LabelValue("perks", fmt.Sprintf("%d bought, %d refused", r.PerksBought, r.PerksFailed)) + "\n")
	}
	for _, id := range r.Relics {
		b.WriteString(Good.Render(IconRelic+" relic "+id) + "\n")
	}
	for _, id := range r.RunUpgrades {
		b.WriteString(Good.Render(IconUpgrade+" upgrade "+id) + "\n")
	}
	if len(r.Unlocked) == 0 {
		b.WriteString(Muted.Render("no new achievements") + "\n")
		return b.String()
	}
	b.WriteString("\n" + H2.Render("Unlocked") + "\n")
	for _, def := range r.Unlocked {
		fmt.Fprintf(&b, "%s %s  %s\n", def.Icon, Good.Render(def.Name), TierText(def.Tier))
	}
	return b.String()
}
