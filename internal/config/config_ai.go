package config

import (
	"fmt"
	"os"
	"strings"
)

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// GetScoreConfig returns the AI configuration for the score operation with
// fallback to the global AI config.
func (c *Config) GetScoreConfig() OperationAIConfig {
	config := c.AI.Score

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply global prompt fallbacks
	if config.CustomPrompts.SystemPrompt == "" {
		config.CustomPrompts.SystemPrompt = c.AI.CustomPrompts.SystemPrompt
	}
	if config.CustomPrompts.UserPrompt == "" {
		config.CustomPrompts.UserPrompt = c.AI.CustomPrompts.UserPrompt
	}

	return config
}

// loadPromptFiles resolves prompt file references into inline prompt values.
// An inline prompt always wins over its file counterpart.
func (c *Config) loadPromptFiles() error {
	prompts := []*PromptConfig{&c.AI.CustomPrompts, &c.AI.Score.CustomPrompts}

	for _, p := range prompts {
		if p.SystemPrompt == "" && p.SystemPromptFile != "" {
			content, err := readPromptFile(p.SystemPromptFile, "system")
			if err != nil {
				return err
			}
			p.SystemPrompt = content
		}
		if p.UserPrompt == "" && p.UserPromptFile != "" {
			content, err := readPromptFile(p.UserPromptFile, "user")
			if err != nil {
				return err
			}
			p.UserPrompt = content
		}
	}

	return nil
}

// readPromptFile loads a prompt file and rejects empty content
func readPromptFile(path, promptType string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s prompt file %s: %w", promptType, path, err)
	}

	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return "", fmt.Errorf("%s prompt file %s is empty", promptType, path)
	}

	return trimmed, nil
}
