package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dungeon-progress/internal/talents"
	"github.com/vovakirdan/dungeon-progress/internal/ui"
)

var (
	flagTalentLevel int
	flagTalentPicks []string
)

var talentsCmd = &cobra.Command{
	Use:   "talents",
	Short: "Preview the talent tree at a given player level",
	Long: `Talent points are earned every second level during a run.
Preview an allocation without touching saved data.

Examples:
  dungeon talents --level 8 --pick sharpened_edge,keen_eye,thick_hide`,
	Args: cobra.NoArgs,
	RunE: runTalents,
}

func init() {
	talentsCmd.Flags().IntVar(&flagTalentLevel, "level", 1, "Player level to earn points for")
	talentsCmd.Flags().StringSliceVar(&flagTalentPicks, "pick", nil, "Node ids to rank up, in order")
}

func runTalents(cmd *cobra.Command, args []string) error {
	s := talents.NewState()
	talents.GrantPoints(s, talents.TalentPointsForLevel(flagTalentLevel))

	for _, id := range flagTalentPicks {
		if _, ok := talents.LookupNode(id); !ok {
			return fmt.Errorf("unknown talent %q", id)
		}
		if !talents.UpgradeNode(s, id) {
			fmt.Println(ui.Warn.Render(fmt.Sprintf("%s cannot rank %s (locked, maxed or out of points)", ui.IconWarn, id)))
		}
	}

	fmt.Println(ui.RenderTalents(s))

	m := talents.ComputeTalentMods(s)
	fmt.Println(ui.LabelValue("damage", fmt.Sprintf("x%.2f", m.DamageMultiplier)),
		ui.LabelValue("max hp", fmt.Sprintf("x%.2f", m.MaxHPMultiplier)),
		ui.LabelValue("move", fmt.Sprintf("x%.2f", m.MoveSpeedMultiplier)),
		ui.LabelValue("crit", fmt.Sprintf("%.0f%%", m.CritChance*100)))
	return nil
}
