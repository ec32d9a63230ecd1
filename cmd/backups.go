package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/git-split/internal/git"
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List backup branches created by previous splits",
	RunE:  runBackups,
}

func init() {
	rootCmd.AddCommand(backupsCmd)
}

func runBackups(cmd *cobra.Command, args []string) error {
	client := git.NewClient("")
	if !client.IsRepo() {
		return fmt.Errorf("not a git repository")
	}

	branches, err := backupBranches(client)
	if err != nil {
		return err
	}
	if len(branches) == 0 {
		fmt.Println("No backup branches found")
		return nil
	}

	for _, branch := range branches {
		subject, err := client.Subject(branch)
		if err != nil {
			subject = "(unreadable)"
		}
		fmt.Printf("%s  %s\n", branch, subject)
	}
	return nil
}
