package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daniel/career-assistant/internal/jobpost"
	"github.com/daniel/career-assistant/internal/observability"
)

var (
	ingestURL        string
	ingestUseBrowser bool
	ingestOut        string
	ingestVerbose    bool
)

var ingestJobCmd = &cobra.Command{
	Use:   "ingest-job",
	Short: "Fetch a job posting URL and extract the structured job spec",
	Long:  "Fetch a job posting URL, reduce the page to text, and extract the job title, company name, and description. The result is printed as JSON or written to a file for later generation.",
	RunE:  runIngestJob,
}

func init() {
	ingestJobCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch the job posting from (required)")
	ingestJobCmd.Flags().BoolVar(&ingestUseBrowser, "use-browser", false, "Render with a headless browser when the page is JavaScript-heavy")
	ingestJobCmd.Flags().StringVarP(&ingestOut, "out", "o", "", "Write the job spec JSON to this file instead of stdout")
	ingestJobCmd.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Print detailed progress information")

	_ = ingestJobCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(ingestJobCmd)
}

func runIngestJob(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newLLM(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	spec, err := jobpost.Ingest(cmd.Context(), client, ingestURL, jobpost.IngestOptions{
		UseBrowser: ingestUseBrowser || cfg.UseBrowser,
		Verbose:    ingestVerbose || cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to ingest job posting: %w", err)
	}

	if ingestVerbose || cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintJobSpec(spec)
	}

	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize job spec: %w", err)
	}

	if ingestOut != "" {
		if err := os.WriteFile(ingestOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write job spec: %w", err)
		}
		fmt.Printf("Job spec written to %s\n", ingestOut)
		return nil
	}

	fmt.Println(string(data))
	return nil
}
