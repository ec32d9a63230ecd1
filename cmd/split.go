package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pders01/git-split/internal/config"
	"github.com/pders01/git-split/internal/git"
	"github.com/pders01/git-split/internal/models"
	"github.com/pders01/git-split/internal/ollama"
	"github.com/pders01/git-split/internal/splitter"
)

var (
	splitPush      bool
	splitDryRun    bool
	splitThreshold float64
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split the current working tree changes into separate commits",
	Long: `Analyze all uncommitted changes, group them into logically cohesive
commits and create those commits on the current branch.

A dry run (--dry-run) only prints the planned groups; nothing is staged,
committed or branched. A normal run commits locally; --push additionally
pushes the branch when at least one commit succeeded.`,
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().BoolVar(&splitPush, "push", false, "Push the branch after splitting")
	splitCmd.Flags().BoolVar(&splitDryRun, "dry-run", false, "Plan the commit groups without touching the repository")
	splitCmd.Flags().Float64Var(&splitThreshold, "threshold", 0, "Clustering similarity threshold (overrides config)")
}

func runSplit(cmd *cobra.Command, args []string) error {
	client := git.NewClient("")
	if !client.IsRepo() {
		return fmt.Errorf("not a git repository")
	}

	threshold := splitThreshold
	if threshold == 0 {
		threshold = config.GetThreshold()
	}

	s := splitter.New(client, splitter.Options{
		NewEmbedder:       newOllamaEmbedder,
		NewGenerator:      newOllamaGenerator,
		Threshold:         threshold,
		RequestDelay:      config.GetRequestDelay(),
		MaxImportantLines: config.GetMaxImportantLines(),
		BackupPrefix:      config.GetBackupPrefix(),
		Push:              splitPush,
		DryRun:            splitDryRun,
		Progress:          printProgress,
	})

	groups, err := s.Run(cmd.Context())
	if err != nil {
		return err
	}

	if splitDryRun {
		printPlan(groups)
	}
	return nil
}

// newOllamaEmbedder lazily constructs the embedding client; the splitter
// only calls this once hunks are ready to embed.
func newOllamaEmbedder() (splitter.Embedder, error) {
	client, err := newOllamaClient()
	if err != nil {
		return nil, err
	}
	if err := client.CheckModel(context.Background(), client.EmbedModel()); err != nil {
		return nil, err
	}
	return client, nil
}

func newOllamaGenerator() (splitter.Generator, error) {
	client, err := newOllamaClient()
	if err != nil {
		return nil, err
	}
	if err := client.CheckModel(context.Background(), client.GenerateModel()); err != nil {
		return nil, err
	}
	return client, nil
}

func newOllamaClient() (*ollama.Client, error) {
	if !ollama.IsAvailable(config.GetOllamaURL()) {
		return nil, fmt.Errorf("ollama is not reachable at %s", config.GetOllamaURL())
	}
	return ollama.NewClient(config.GetEmbedModel(), config.GetLLMModel())
}

func printProgress(level models.ProgressLevel, message string) {
	switch level {
	case models.ProgressWarning:
		fmt.Fprintln(os.Stderr, "Warning:", message)
	case models.ProgressError:
		fmt.Fprintln(os.Stderr, "Error:", message)
	default:
		fmt.Println(message)
	}
}

func printPlan(groups []*models.CommitGroup) {
	if len(groups) == 0 {
		return
	}
	fmt.Printf("\nPlanned commits:\n")
	for i, group := range groups {
		fmt.Printf("\n%d. %s\n", i+1, group.CommitTitle)
		fmt.Printf("   %s\n", group.CommitMessage)
		for _, path := range group.FilePaths() {
			fmt.Printf("   - %s\n", path)
		}
	}
}
