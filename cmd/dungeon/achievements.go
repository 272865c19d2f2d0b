package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dungeon-progress/internal/ui"
)

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "List achievements for the active profile",
	Args:    cobra.NoArgs,
	RunE:    runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Print(ui.RenderAchievements(s.svc.Achievements(), s.svc.Profile()))
	return nil
}
