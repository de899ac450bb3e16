package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/copydesk/internal/fetch"
	"github.com/jonathan/copydesk/internal/observability"
	"github.com/jonathan/copydesk/internal/schemas"
	"github.com/jonathan/copydesk/internal/types"
	"github.com/jonathan/copydesk/internal/voice"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze writing samples and print a brand voice profile",
	Long: `Collects 2 to 5 writing samples from files and web pages, asks the model for a
brand voice profile and prints the analysis JSON. Use --server to go through a
running copydesk server instead of calling the model directly, and --browser to
render script-built pages in headless Chrome when their HTML has too little copy.`,
	RunE: runAnalyze,
}

var (
	analyzeSamples []string
	analyzeURLs    []string
	analyzeOutput  string
	analyzeServer  string
	analyzeSave    bool
	analyzeBrowser bool
)

func init() {
	analyzeCmd.Flags().StringArrayVarP(&analyzeSamples, "sample", "s", nil, "Path to a text file holding one writing sample (repeatable)")
	analyzeCmd.Flags().StringArrayVarP(&analyzeURLs, "url", "u", nil, "Page to extract a writing sample from (repeatable)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Write the analysis JSON to this file instead of stdout")
	analyzeCmd.Flags().StringVar(&analyzeServer, "server", "", "Base URL of a copydesk server")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Store the result as the local voice profile")
	analyzeCmd.Flags().BoolVar(&analyzeBrowser, "browser", false, "Render pages with little static copy in headless Chrome")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := loadSettings()
	if err != nil {
		return err
	}
	flags := s.Config
	flags.Samples = analyzeSamples
	flags.URLs = analyzeURLs
	flags.Output = analyzeOutput
	flags.ServerURL = analyzeServer
	if err := flags.Validate(); err != nil {
		return err
	}
	s.Config = flags.MergeWithDefaults(s.Config)

	var browser fetch.Renderer
	if analyzeBrowser {
		browser = fetch.NewBrowser(s.Verbose)
	}
	samples, err := collectSamples(ctx, s.Samples, s.URLs, browser)
	if err != nil {
		return err
	}
	printer := observability.NewPrinter(os.Stderr)
	if s.Verbose {
		printer.PrintSamples(samples)
	}

	analyzer, closeFn, err := s.analyzer(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	texts := make([]string, len(samples))
	for i, sample := range samples {
		texts[i] = sample.Content
	}
	result, err := analyzer.Analyze(ctx, texts)
	if err != nil {
		if msg := voice.UserMessage(err); msg != voice.MsgAnalysisRetry {
			return fmt.Errorf("%s (%w)", msg, err)
		}
		return fmt.Errorf("voice analysis failed: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := schemas.Validate(schemas.VoiceAnalysis, data); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: analysis does not match the expected shape: %v\n", err)
	}

	if s.Verbose {
		printer.PrintAnalysis(result)
	}

	if err := writeOutput(s.Output, data); err != nil {
		return err
	}

	if analyzeSave {
		store, err := s.openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		if _, err := voice.NewProfileStore(store).Save(ctx, *result, samples); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(os.Stderr, "Saved voice profile")
	}
	return nil
}

// collectSamples reads sample files and extracts page copy, in that order.
// A nil browser disables the rendering fallback.
func collectSamples(ctx context.Context, paths, urls []string, browser fetch.Renderer) ([]types.Sample, error) {
	if n := len(paths) + len(urls); n < voice.MinSamples {
		return nil, fmt.Errorf("%s (got %d)", voice.MsgAtLeastTwoSamples, n)
	}

	collector := voice.NewCollector()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read sample file: %w", err)
		}
		if _, err := collector.AddFrom(string(data), ""); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	fetcher := &voice.SampleFetcher{Client: &http.Client{Timeout: 30 * time.Second}, Browser: browser}
	for _, u := range urls {
		text, err := fetcher.Fetch(ctx, u)
		if err != nil {
			return nil, err
		}
		if _, err := collector.AddFrom(text, u); err != nil {
			return nil, fmt.Errorf("%s: %w", u, err)
		}
	}

	if err := collector.Ready(); err != nil {
		return nil, err
	}
	return collector.Samples(), nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := fmt.Fprintln(os.Stdout, string(data))
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stderr, "Output: %s\n", path)
	return nil
}
