package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dungeon-progress/internal/achievements"
	"github.com/vovakirdan/dungeon-progress/internal/ui"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage achievement profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show which profile slots hold saved achievements",
	Args:  cobra.NoArgs,
	RunE:  runProfileList,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete a profile's achievements and shift later profiles down",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileDelete,
}

func init() {
	profileDeleteCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation")
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileDeleteCmd)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	p := s.cfg.Progression
	stored, err := achievements.StoredProfiles(s.store, p.AchievementKeyPrefix, p.TotalProfiles)
	if err != nil {
		return err
	}
	fmt.Print(ui.RenderProfiles(stored, p.TotalProfiles, s.svc.Profile()))
	return nil
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid profile index %q", args[0])
	}
	if !flagYes && !confirm(fmt.Sprintf("Delete achievements of profile %d?", index)) {
		fmt.Println("Aborted.")
		return nil
	}

	s, err := openSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.svc.DeleteProfile(index); err != nil {
		return err
	}
	fmt.Println(ui.Warn.Render(fmt.Sprintf("%s profile %d deleted", ui.IconWarn, index)))
	return nil
}
