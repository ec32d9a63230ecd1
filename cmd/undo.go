package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pders01/git-split/internal/config"
	"github.com/pders01/git-split/internal/git"
)

var undoCmd = &cobra.Command{
	Use:   "undo [branch]",
	Short: "Revert a split by hard-resetting to a backup branch",
	Long: `Reset the current branch to the state captured in a backup branch.

Without an argument the newest backup branch is used. This discards the
commits created by the split; the working tree is restored to exactly the
pre-split state.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUndo,
}

func init() {
	rootCmd.AddCommand(undoCmd)
}

func runUndo(cmd *cobra.Command, args []string) error {
	client := git.NewClient("")
	if !client.IsRepo() {
		return fmt.Errorf("not a git repository")
	}

	var backup string
	if len(args) == 1 {
		backup = args[0]
		if !client.BranchExists(backup) {
			return fmt.Errorf("backup branch %s does not exist", backup)
		}
	} else {
		branches, err := backupBranches(client)
		if err != nil {
			return err
		}
		if len(branches) == 0 {
			return fmt.Errorf("no backup branches found (pattern: %s-*)", config.GetBackupPrefix())
		}
		backup = branches[len(branches)-1]
	}

	if err := client.ResetHard(backup); err != nil {
		return err
	}

	fmt.Printf("Reset to %s\n", backup)
	return nil
}

// backupBranches returns backup branches sorted oldest first. The unix
// timestamp suffix keeps lexical and chronological order aligned.
func backupBranches(client *git.Client) ([]string, error) {
	branches, err := client.ListBranches(config.GetBackupPrefix() + "-*")
	if err != nil {
		return nil, err
	}
	sort.Strings(branches)
	return branches, nil
}
