// Package apify implements ports.Source against the Apify REST API.
// A fetch is three calls: start an actor run, poll the run until it
// reaches a terminal state, then download the run's default dataset.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"reelscribe/internal/core/domain"
)

const defaultBaseURL = "https://api.apify.com/v2"

// Client implements ports.Source.
type Client struct {
	baseURL      string
	token        string
	actorID      string
	pollInterval time.Duration
	pollBudget   time.Duration
	httpClient   *http.Client
	log          *zap.SugaredLogger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithPolling overrides the status-poll interval and overall wait budget.
func WithPolling(interval, budget time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = interval
		c.pollBudget = budget
	}
}

// NewClient creates a Client for the given actor.
func NewClient(token, actorID string, log *zap.SugaredLogger, opts ...Option) *Client {
	c := &Client{
		baseURL:      defaultBaseURL,
		token:        token,
		actorID:      actorID,
		pollInterval: 5 * time.Second,
		pollBudget:   300 * time.Second,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		log:          log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch submits a scraping run for the target profile and returns at most
// limit records that expose a usable media reference, in dataset order.
func (c *Client) Fetch(ctx context.Context, target string, limit int) ([]domain.RawRecord, error) {
	username := usernameFrom(target)
	c.log.Infow("starting scrape run", "username", username, "limit", limit)

	runID, err := c.startRun(ctx, username, limit)
	if err != nil {
		return nil, err
	}
	c.log.Infow("actor run started", "run_id", runID)

	datasetID, err := c.waitForRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	records, err := c.fetchDataset(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	usable := make([]domain.RawRecord, 0, len(records))
	for _, r := range records {
		if r.MediaURL() != "" {
			usable = append(usable, r)
		}
	}
	c.log.Infow("dataset fetched", "total", len(records), "with_media", len(usable))

	if len(usable) > limit {
		usable = usable[:limit]
	}
	return usable, nil
}

func (c *Client) startRun(ctx context.Context, username string, limit int) (string, error) {
	url := fmt.Sprintf("%s/acts/%s/runs?token=%s", c.baseURL, c.actorID, c.token)

	body, _ := json.Marshal(map[string]any{
		"username":     []string{username},
		"resultsLimit": limit,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to start actor run: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: start run returned status %d: %s",
			domain.ErrSourceUnavailable, resp.StatusCode, string(respBody))
	}

	var result struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: failed to decode start response: %v", domain.ErrSourceUnavailable, err)
	}
	if result.Data.ID == "" {
		return "", fmt.Errorf("%w: start response carried no run id", domain.ErrSourceUnavailable)
	}
	return result.Data.ID, nil
}

// waitForRun polls the run status until SUCCEEDED or FAILED. Unrecognized
// statuses and transient poll errors count as still running. Exhausting the
// wait budget yields domain.ErrSourceTimeout.
func (c *Client) waitForRun(ctx context.Context, runID string) (string, error) {
	url := fmt.Sprintf("%s/actor-runs/%s?token=%s", c.baseURL, runID, c.token)
	deadline := time.Now().Add(c.pollBudget)

	for time.Now().Before(deadline) {
		status, datasetID, err := c.checkRun(ctx, url)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return "", fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, ctx.Err())
			}
			c.log.Warnw("status check failed, retrying", "run_id", runID, "error", err)
		case status == "SUCCEEDED":
			if datasetID == "" {
				return "", fmt.Errorf("%w: completed run carried no dataset id", domain.ErrSourceUnavailable)
			}
			c.log.Infow("actor run succeeded", "run_id", runID, "dataset_id", datasetID)
			return datasetID, nil
		case status == "FAILED":
			return "", fmt.Errorf("%w: actor run failed", domain.ErrSourceUnavailable)
		default:
			c.log.Debugw("actor run still in progress", "run_id", runID, "status", status)
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, ctx.Err())
		case <-time.After(c.pollInterval):
		}
	}

	return "", fmt.Errorf("%w: run %s not terminal after %s", domain.ErrSourceTimeout, runID, c.pollBudget)
}

func (c *Client) checkRun(ctx context.Context, url string) (status, datasetID string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	var body struct {
		Data struct {
			Status           string `json:"status"`
			DefaultDatasetID string `json:"defaultDatasetId"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", "", err
	}
	return body.Data.Status, body.Data.DefaultDatasetID, nil
}

func (c *Client) fetchDataset(ctx context.Context, datasetID string) ([]domain.RawRecord, error) {
	url := fmt.Sprintf("%s/datasets/%s/items?token=%s", c.baseURL, datasetID, c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch dataset: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: dataset fetch returned status %d", domain.ErrSourceUnavailable, resp.StatusCode)
	}

	var records []domain.RawRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: failed to decode dataset: %v", domain.ErrSourceUnavailable, err)
	}
	return records, nil
}

// usernameFrom accepts a bare username, an @handle, or a full profile URL.
func usernameFrom(target string) string {
	trimmed := strings.TrimRight(target, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	return strings.TrimPrefix(trimmed, "@")
}
