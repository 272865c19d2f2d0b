package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dungeon-progress/internal/achievements"
	"github.com/vovakirdan/dungeon-progress/internal/progression"
	"github.com/vovakirdan/dungeon-progress/internal/ui"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Feed a scripted event sequence through progression",
	Long: `Replay a YAML list of gameplay events against the active profile.
Unlocks, shards and relics are saved as if the game had produced them.

Example script:
  - name: run_start
  - name: stage_entered
    stage: 5
  - name: enemy_killed
    repeat: 25
  - name: boss_killed
  - perk: might
  - name: run_end
    stage: 5`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	script, err := progression.LoadScript(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := s.svc.Replay(script)
	if err != nil {
		return err
	}
	fmt.Print(ui.RenderReplay(report))
	return nil
}

func printUnlock(def achievements.Definition) {
	fmt.Printf("%s %s %s\n", def.Icon, ui.Gold.Render("Achievement unlocked:"), def.Name)
}
