package cli

import (
	"fmt"

	"hirescore/internal/behavioral"
	"hirescore/internal/common"
	"hirescore/internal/lexicon"

	"github.com/spf13/cobra"
)

var breakdownCmd = &cobra.Command{
	Use:   "breakdown [transcript-file]",
	Short: "Produce a diagnostic breakdown of an interview transcript",
	Long: `Produce the detailed diagnostic view of an interview transcript:
sentiment polarity and label, communication metrics and style, per-category
behavioral indicator counts, response quality flags, key phrases, improvement
areas, and strength indicators.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if breakdownConfig.OutputFormat == "" {
			breakdownConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(breakdownConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runBreakdown,
}

var breakdownConfig common.CommandConfig

func init() {
	breakdownCmd.Flags().StringVarP(&breakdownConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	breakdownCmd.Flags().StringVar(&breakdownConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = breakdownCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runBreakdown(cmd *cobra.Command, args []string) error {
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

	logger.Info("Starting transcript breakdown",
		"transcript_chars", len(contents[0]),
		"output_format", breakdownConfig.OutputFormat)

	breakdown := analyzer.Breakdown(contents[0])

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(breakdown, breakdownConfig); err != nil {
		return fmt.Errorf("failed to write breakdown output: %w", err)
	}

	logger.Info("Transcript breakdown completed successfully")
	return nil
}
