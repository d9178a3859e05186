// Package extract fetches readable text for a reference URL through a
// public read-proxy. Extraction is best-effort: any failure yields an empty
// result, distinguished from operational failure only at the logging level,
// so the generation cycle's error classification is never affected by this
// collaborator.
package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxBodyBytes caps how much proxy output is read (1MB).
const maxBodyBytes = 1 << 20

// Result is the outcome of one extraction attempt. Text is empty both when
// the target genuinely had no content and when the attempt failed; Err
// records the operational failure for logging and is never surfaced as an
// error to callers.
type Result struct {
	Text string
	Err  error
}

// Empty reports whether the extraction produced no usable text.
func (r Result) Empty() bool {
	return strings.TrimSpace(r.Text) == ""
}

// Extractor fetches text through a read-proxy endpoint keyed by target URL.
type Extractor struct {
	proxyBaseURL string
	client       *http.Client
	logger       *slog.Logger
}

// NewExtractor creates an Extractor for the given proxy base URL.
func NewExtractor(proxyBaseURL string, timeout time.Duration, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		proxyBaseURL: strings.TrimRight(proxyBaseURL, "/"),
		client:       &http.Client{Timeout: timeout},
		logger:       logger.With("component", "extractor"),
	}
}

// Extract fetches the readable text of targetURL through the read-proxy.
// It never returns an error: failures produce an empty-text Result with the
// cause recorded, and are logged here.
func (e *Extractor) Extract(ctx context.Context, targetURL string) Result {
	result := e.fetch(ctx, targetURL)
	if result.Err != nil {
		e.logger.WarnContext(ctx, "url extraction failed, treating as no content",
			"target_url", targetURL,
			"error", result.Err)
	}
	return result
}

func (e *Extractor) fetch(ctx context.Context, targetURL string) Result {
	if targetURL == "" {
		return Result{}
	}

	parsed, err := url.Parse(targetURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return Result{Err: fmt.Errorf("unsupported reference URL: %q", targetURL)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.proxyBaseURL+"/"+targetURL, nil)
	if err != nil {
		return Result{Err: fmt.Errorf("create request: %w", err)}
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return Result{Err: fmt.Errorf("fetch: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Result{Err: fmt.Errorf("read proxy returned HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{Err: fmt.Errorf("read body: %w", err)}
	}

	return Result{Text: string(body)}
}
