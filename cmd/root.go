package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "git-split",
	Short: "Split an uncommitted working tree into logically cohesive commits",
	Long: `git-split decomposes your uncommitted changes into independent commits:
  - changed files are parsed into diff hunks
  - each hunk is embedded and clustered by semantic similarity
  - a language model writes a conventional commit message per cluster
  - each cluster is selectively staged and committed

A backup branch is created before anything is committed, so a run can
always be fully reverted with a single hard reset.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/git-split/config.toml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "git-split")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("split.threshold", 0.30)
	viper.SetDefault("split.backup_prefix", "backup-before-split")
	viper.SetDefault("embeddings.model", "nomic-embed-text")
	viper.SetDefault("embeddings.ollama_url", "http://localhost:11434")
	viper.SetDefault("llm.model", "llama3.1:8b")
	viper.SetDefault("llm.request_delay", "3s")
	viper.SetDefault("llm.max_important_lines", 15)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
