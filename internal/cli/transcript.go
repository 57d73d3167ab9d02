package cli

import (
	"fmt"

	"hirescore/internal/behavioral"
	"hirescore/internal/common"
	"hirescore/internal/lexicon"
	"hirescore/internal/types"

	"github.com/spf13/cobra"
)

var transcriptCmd = &cobra.Command{
	Use:   "transcript [transcript-file]",
	Short: "Analyze a behavioral interview transcript",
	Long: `Analyze an interview transcript for behavioral signals. Lines spoken by
the interviewer (prefixed "Interviewer:") are stripped before analysis; the
candidate's speech is scored on sentiment, communication quality, behavioral
indicators, and response quality, combined into a weighted overall score.

Analysis is fully local and deterministic. Transcripts shorter than 50
characters produce a tagged fallback result instead of an error.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if transcriptConfig.OutputFormat == "" {
			transcriptConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(transcriptConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runTranscript,
}

var transcriptConfig common.CommandConfig

func init() {
	transcriptCmd.Flags().StringVarP(&transcriptConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	transcriptCmd.Flags().StringVar(&transcriptConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = transcriptCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runTranscript(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	lex, err := lexicon.Load(cfg.Lexicon.Path)
	if err != nil {
		return fmt.Errorf("failed to load lexicon: %w", err)
	}
	analyzer := behavioral.NewAnalyzer(lex, logger)

	fileProcessor := common.NewFileProcessor(logger)
	contents, err := fileProcessor.ValidateAndReadFiles(args...)
	if err != nil {
		return err
	}

	logger.Info("Starting transcript analysis",
		"transcript_chars", len(contents[0]),
		"output_format", transcriptConfig.OutputFormat)

	result := analyzer.Analyze(cmd.Context(), types.AnalyzeTranscriptInput{Transcript: contents[0]})

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(result, transcriptConfig); err != nil {
		return fmt.Errorf("failed to write analysis output: %w", err)
	}

	logger.Info("Transcript analysis completed successfully",
		"overall_score", result.OverallScore,
		"method", result.AnalysisMethod)
	return nil
}
