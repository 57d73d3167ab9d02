package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"hirescore/internal/ai"
	"hirescore/internal/ats"
	"hirescore/internal/common"
	"hirescore/internal/lexicon"
	"hirescore/internal/types"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [resume-file] [skills-file] [job-description-file]",
	Short: "Score a resume against required job skills",
	Long: `Score a resume against a list of required skills using AI with a
deterministic keyword fallback. The skills file is a JSON array of skill
names ("Python") or weighted objects ({"skill": "Python", "importance": 5}).
An optional third argument supplies the job description for extra context.

When the AI provider is unavailable or returns unusable output, scoring
degrades to case-insensitive keyword matching and the result is tagged
with the method that produced it.`,
	Args: cobra.RangeArgs(2, 3),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if scoreConfig.OutputFormat == "" {
			scoreConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(scoreConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScore,
}

var scoreConfig common.CommandConfig

func init() {
	scoreCmd.Flags().StringVarP(&scoreConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	scoreCmd.Flags().StringVar(&scoreConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = scoreCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	lex, err := lexicon.Load(cfg.Lexicon.Path)
	if err != nil {
		return fmt.Errorf("failed to load lexicon: %w", err)
	}

	// Without an API key the scorer runs keyword matching only
	scoreAIConfig := cfg.GetScoreConfig()
	var provider ai.AIProvider
	if scoreAIConfig.APIKey != "" {
		aiService, err := ai.NewService(&scoreAIConfig, "score", logger)
		if err != nil {
			return fmt.Errorf("failed to create AI service: %w", err)
		}
		provider = aiService.Provider
	} else {
		logger.Warn("No AI API key configured, scoring with keyword matching only")
	}

	scorer := ats.NewScorer(provider, lex, logger)

	createInput := func(contents []string) (types.ScoreResumeInput, error) {
		if len(contents) < 2 {
			return types.ScoreResumeInput{}, fmt.Errorf("expected at least 2 file paths, got %d", len(contents))
		}

		var skills []types.SkillRequirement
		if err := json.Unmarshal([]byte(contents[1]), &skills); err != nil {
			return types.ScoreResumeInput{}, fmt.Errorf("skills file must be a JSON array of skills: %w", err)
		}

		input := types.ScoreResumeInput{
			ResumeText:     contents[0],
			RequiredSkills: skills,
		}
		if len(contents) == 3 {
			input.JobDescription = contents[2]
		}
		return input, nil
	}

	logDetails := func(input types.ScoreResumeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume scoring",
			"resume_chars", len(input.ResumeText),
			"skill_count", len(input.RequiredSkills),
			"output_format", cfg.OutputFormat)
	}

	scoreOperation := func(ctx context.Context, input types.ScoreResumeInput) (types.ATSResult, *ai.TokenUsage, error) {
		return scorer.Score(ctx, input)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		scoreConfig,
		args,
		createInput,
		scoreOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to score resume: %w", err)
	}
	logger.Info("Resume scoring completed successfully")
	return nil
}
