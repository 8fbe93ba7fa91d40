package jobpost

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/daniel/career-assistant/internal/llm"
	"github.com/daniel/career-assistant/internal/prompts"
	"github.com/daniel/career-assistant/internal/types"
)

// ParseError represents a failure to extract a usable job spec from page
// text.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job posting parse failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("job posting parse failed: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// IngestOptions configures the fetch-and-parse pipeline.
type IngestOptions struct {
	// UseBrowser enables headless rendering when the plain fetch comes back
	// too thin to be a real posting
	UseBrowser     bool
	BrowserTimeout time.Duration
	Fetch          *Options
	Verbose        bool
}

// Ingest fetches a posting URL and extracts the structured job spec from it.
// When the plain fetch yields too little text and browser fallback is
// enabled, the page is re-rendered headlessly before extraction.
func Ingest(ctx context.Context, client llm.Client, urlStr string, opts IngestOptions) (*types.JobSpec, error) {
	page, err := Fetch(ctx, urlStr, opts.Fetch)
	if err != nil {
		return nil, err
	}

	if page.NeedsBrowser() && opts.UseBrowser {
		if opts.Verbose {
			log.Printf("[INGEST] Plain fetch too thin (%d chars), rendering with browser", len(page.Text))
		}
		html, err := RenderWithBrowser(ctx, urlStr, opts.BrowserTimeout, opts.Verbose)
		if err != nil {
			return nil, err
		}
		text, err := ExtractText(html)
		if err != nil {
			return nil, &FetchError{URL: urlStr, Message: "failed to extract rendered text", Cause: err}
		}
		page.HTML = html
		page.Text = text
	}

	return ParsePosting(ctx, client, page.Text)
}

// ParsePosting extracts a job spec from posting text. Posting parsing is a
// simple extraction task, so it runs on the lite tier.
func ParsePosting(ctx context.Context, client llm.Client, pageText string) (*types.JobSpec, error) {
	if strings.TrimSpace(pageText) == "" {
		return nil, &ParseError{Message: "page text is empty"}
	}

	system := prompts.MustGet("jobpost.json", "parse-system")
	template := prompts.MustGet("jobpost.json", "parse-posting")
	prompt := prompts.Format(template, map[string]string{"PageText": pageText})

	responseText, err := client.GenerateJSON(ctx, system, prompt, llm.TierLite)
	if err != nil {
		return nil, &ParseError{Message: "model call failed", Cause: err}
	}

	var spec types.JobSpec
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &spec); err != nil {
		return nil, &ParseError{Message: "malformed model response", Cause: err}
	}

	if !spec.Valid() {
		return nil, &ParseError{Message: "posting is missing a job title, company name, or description"}
	}

	return &spec, nil
}
