package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dungeon-progress/internal/meta"
	"github.com/vovakirdan/dungeon-progress/internal/ui"
)

var metaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Show shards, perks, relics and run modifiers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd, nil)
		if err != nil {
			return err
		}
		defer s.Close()
		fmt.Println(ui.RenderMeta(s.svc.Meta(), s.svc.Modifiers()))
		return nil
	},
}

var buyCmd = &cobra.Command{
	Use:   "buy <perk>",
	Short: "Buy one level of a meta perk",
	Long: `Spend core shards on the next level of a perk.

Perks: vitality, might, haste, wisdom

Examples:
  dungeon buy vitality`,
	Args: cobra.ExactArgs(1),
	RunE: runBuy,
}

func runBuy(cmd *cobra.Command, args []string) error {
	perkID := strings.ToLower(args[0])
	perk, ok := meta.LookupPerk(perkID)
	if !ok {
		return fmt.Errorf("unknown perk %q", perkID)
	}

	s, err := openSession(cmd, printUnlock)
	if err != nil {
		return err
	}
	defer s.Close()

	m := s.svc.Meta()
	if m.IsMaxed(perkID) {
		return fmt.Errorf("%s is already at level %d", perk.Name, meta.MaxPerkLevel)
	}
	cost := m.NextCost(perkID)
	bought, err := s.svc.BuyPerk(perkID)
	if err != nil {
		return err
	}
	if !bought {
		return fmt.Errorf("need %d shards for %s, have %d", cost, perk.Name, m.AvailableShards())
	}
	fmt.Printf("%s %s is now level %d (%d shards left)\n",
		ui.IconPerk, ui.Good.Render(perk.Name), m.PerkLevel(perkID), m.AvailableShards())
	return nil
}

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe meta progression back to defaults",
	Long: `Reset shards, perks, relics, run upgrades and loadout.
Achievements are kept.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !flagYes && !confirm("Reset all meta progression?") {
		fmt.Println("Aborted.")
		return nil
	}
	s, err := openSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.svc.ResetMeta(); err != nil {
		return err
	}
	fmt.Println(ui.Warn.Render(ui.IconWarn + " meta progression reset"))
	return nil
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
