package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of config.yaml
type YAMLConfig struct {
	LLM struct {
		Provider       string  `yaml:"provider"` // ollama or openai
		Model          string  `yaml:"model"`
		EmbeddingModel string  `yaml:"embedding_model"`
		Temperature    float64 `yaml:"temperature"`
		MaxTokens      int     `yaml:"max_tokens"`
	} `yaml:"llm"`
	Retrieval struct {
		MaxResults          int     `yaml:"max_results"`
		SimilarityThreshold float64 `yaml:"similarity_threshold"`
	} `yaml:"retrieval"`
	Memory struct {
		MaxConversationTurns int `yaml:"max_conversation_turns"`
		ConversationTTL      int `yaml:"conversation_ttl_seconds"`
	} `yaml:"memory"`
	Storage struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"storage"`
	Log LogConfig `yaml:"log"`
}

// LogConfig controls the global logger.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // json or console
	Output     string `yaml:"output"` // stdout, stderr, file
	FilePath   string `yaml:"file_path"`
	TimeFormat string `yaml:"time_format"`
}

// LoadConfig loads configuration from config.yaml
func LoadConfig(filepath string) (*YAMLConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config YAMLConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("error parsing YAML: %v", err)
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills in zero-valued fields so a sparse config.yaml still works.
func (c *YAMLConfig) applyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "ollama"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "llama3.2"
	}
	if c.LLM.EmbeddingModel == "" {
		c.LLM.EmbeddingModel = "nomic-embed-text"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1024
	}
	if c.Retrieval.MaxResults == 0 {
		c.Retrieval.MaxResults = 3
	}
	if c.Retrieval.SimilarityThreshold == 0 {
		c.Retrieval.SimilarityThreshold = 0.7
	}
	if c.Memory.MaxConversationTurns == 0 {
		c.Memory.MaxConversationTurns = 20
	}
	if c.Memory.ConversationTTL == 0 {
		c.Memory.ConversationTTL = 3600
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
}

// TrainingDataFile returns the path of the example store document.
func (c *YAMLConfig) TrainingDataFile() string {
	return filepath.Join(c.Storage.DataDir, "training_data.json")
}

// VectorStoreDir returns the directory holding the similarity index snapshot.
func (c *YAMLConfig) VectorStoreDir() string {
	return filepath.Join(c.Storage.DataDir, "vector_store")
}

// MemoryFile returns the path of the long-term memory document.
func (c *YAMLConfig) MemoryFile() string {
	return filepath.Join(c.Storage.DataDir, "memory.json")
}

// AnalyticsFile returns the path of the analytics document.
func (c *YAMLConfig) AnalyticsFile() string {
	return filepath.Join(c.Storage.DataDir, "analytics.json")
}

// ConversationsFile returns the path of the fallback conversation document
// used when Redis is not configured.
func (c *YAMLConfig) ConversationsFile() string {
	return filepath.Join(c.Storage.DataDir, "conversations.json")
}

// ConversationTTL returns the conversation key TTL as a duration.
func (c *YAMLConfig) ConversationTTL() time.Duration {
	return time.Duration(c.Memory.ConversationTTL) * time.Second
}
