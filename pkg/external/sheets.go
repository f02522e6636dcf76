package external

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/screening-recommender/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// AssessmentSheetClient fetches an assessment source's CSV export by URL and
// parses it into a record set. Tables are fetched fresh on every call.
type AssessmentSheetClient struct {
	sources    domain.SourcesConfig
	httpClient *http.Client
	breakers   *SourceBreakers
	logger     *logrus.Logger
}

// NewAssessmentSheetClient creates a new sheet client. A zero
// sources.timeout leaves the HTTP client without a timeout.
func NewAssessmentSheetClient(sources domain.SourcesConfig, logger *logrus.Logger) *AssessmentSheetClient {
	return &AssessmentSheetClient{
		sources: sources,
		httpClient: &http.Client{
			Timeout: sources.Timeout,
		},
		breakers: NewSourceBreakers(sources.CircuitBreaker, logger),
		logger:   logger,
	}
}

// FetchRecordSet implements domain.RecordFetcher.
func (c *AssessmentSheetClient) FetchRecordSet(ctx context.Context, source domain.Source) (*domain.RecordSet, error) {
	url := c.sources.URLFor(source)
	if url == "" {
		return nil, &domain.UpstreamFetchError{Source: source, Err: errors.New("no URL configured")}
	}

	startTime := time.Now()
	result, err := c.breakers.Execute(ctx, source, func() (interface{}, error) {
		return c.download(ctx, source, url)
	})
	if err != nil {
		var upstream *domain.UpstreamFetchError
		if errors.As(err, &upstream) {
			return nil, err
		}
		return nil, &domain.UpstreamFetchError{Source: source, URL: url, Err: err}
	}

	set, err := parseRecordSet(source, result.([]byte))
	if err != nil {
		return nil, domain.NewProcessingError(fmt.Sprintf("parse %s data", source), err)
	}

	c.logger.WithFields(logrus.Fields{
		"source":   source,
		"rows":     len(set.Rows),
		"duration": time.Since(startTime),
	}).Debug("Fetched assessment records")

	return set, nil
}

// BreakerStates reports the per-source circuit breaker states.
func (c *AssessmentSheetClient) BreakerStates() map[string]string {
	return c.breakers.States()
}

func (c *AssessmentSheetClient) download(ctx context.Context, source domain.Source, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.UpstreamFetchError{Source: source, URL: url, Err: err}
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UpstreamFetchError{Source: source, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.UpstreamFetchError{Source: source, URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamFetchError{Source: source, URL: url, Err: fmt.Errorf("reading body: %w", err)}
	}
	return body, nil
}

// parseRecordSet splits a CSV export into its header and data rows. Rows may
// have differing lengths.
func parseRecordSet(source domain.Source, body []byte) (*domain.RecordSet, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(body, utf8BOM)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("export has no header row")
	}

	return &domain.RecordSet{
		Source: source,
		Header: records[0],
		Rows:   records[1:],
	}, nil
}
