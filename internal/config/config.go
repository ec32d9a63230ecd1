package config

import (
	"time"

	"github.com/spf13/viper"
)

// GetThreshold returns the clustering similarity threshold
func GetThreshold() float64 {
	return viper.GetFloat64("split.threshold")
}

// GetBackupPrefix returns the prefix for backup branch names
func GetBackupPrefix() string {
	return viper.GetString("split.backup_prefix")
}

// GetEmbedModel returns the embedding model name
func GetEmbedModel() string {
	return viper.GetString("embeddings.model")
}

// GetOllamaURL returns the Ollama API endpoint
func GetOllamaURL() string {
	return viper.GetString("embeddings.ollama_url")
}

// GetLLMModel returns the generation model name
func GetLLMModel() string {
	return viper.GetString("llm.model")
}

// GetRequestDelay returns the delay inserted between consecutive
// language-model calls
func GetRequestDelay() time.Duration {
	return viper.GetDuration("llm.request_delay")
}

// GetMaxImportantLines returns the cap on summarized diff lines sent to
// the language model
func GetMaxImportantLines() int {
	return viper.GetInt("llm.max_important_lines")
}
