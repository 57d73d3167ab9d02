package cli

import (
	"fmt"

	"hirescore/internal/behavioral"
	"hirescore/internal/common"
	"hirescore/internal/lexicon"
	"hirescore/internal/types"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var batchCmd = &cobra.Command{
	Use:   "batch [transcript-files...]",
	Short: "Analyze multiple interview transcripts concurrently",
	Long: `Analyze a set of interview transcript files concurrently and emit one
JSON array with a result per file, in the order the files were given.
Files that cannot be read fail the whole batch before any analysis runs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

// BatchEntry pairs a transcript file with its analysis result
type BatchEntry struct {
	File   string                 `json:"file"`
	Result types.TranscriptResult `json:"result"`
}

var (
	batchConfig      common.CommandConfig
	batchConcurrency int
)

func init() {
	batchCmd.Flags().StringVarP(&batchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "Maximum number of transcripts analyzed in parallel")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Batch output is always JSON
	batchConfig.OutputFormat = "json"

	if batchConcurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}

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

	logger.Info("Starting batch transcript analysis",
		"file_count", len(args),
		"concurrency", batchConcurrency)

	entries := make([]BatchEntry, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(batchConcurrency)

	for i := range args {
		g.Go(func() error {
			result := analyzer.Analyze(ctx, types.AnalyzeTranscriptInput{Transcript: contents[i]})
			entries[i] = BatchEntry{File: args[i], Result: result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("batch analysis failed: %w", err)
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(entries, batchConfig); err != nil {
		return fmt.Errorf("failed to write batch output: %w", err)
	}

	logger.Info("Batch transcript analysis completed successfully", "file_count", len(entries))
	return nil
}
