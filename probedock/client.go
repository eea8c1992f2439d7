package probedock

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/probedock/probedock-demo-go/servicedef"
)

const (
	publishPath      = "/publish"
	maxErrorBodySize = 4096
)

// Client publishes reports to a Probe Dock server.
type Client struct {
	httpClient *http.Client
	apiURL     string
	apiToken   string
	projectID  string
	version    string
}

// NewClient creates a Client from the loaded configuration. If httpClient is nil,
// http.DefaultClient is used.
func NewClient(config *Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		apiURL:     config.APIURL(),
		apiToken:   config.APIToken(),
		projectID:  config.Project.APIID,
		version:    config.Project.Version,
	}
}

// Payload converts a report into the publish format.
func (c *Client) Payload(report RunReport) servicedef.TestRunPayload {
	results := make([]servicedef.TestResultPayload, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		tags := o.Tags
		if tags == nil {
			tags = []string{}
		}
		results = append(results, servicedef.TestResultPayload{
			Name:        o.Name,
			Fingerprint: fingerprint(o.Name),
			Passed:      o.Passed,
			Duration:    o.DurationMs,
			Message:     o.Message,
			Category:    report.Category,
			Tags:        tags,
		})
	}
	return servicedef.TestRunPayload{
		ProjectID: c.projectID,
		Version:   c.version,
		Duration:  report.Duration().Milliseconds(),
		Reports:   []servicedef.ReportPayload{{UID: report.UID}},
		Results:   results,
	}
}

// Submit sends the report in a single request. It does not retry.
func (c *Client) Submit(ctx context.Context, report RunReport) error {
	data, err := json.Marshal(c.Payload(report))
	if err != nil {
		return &SubmissionError{Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+publishPath, bytes.NewReader(data))
	if err != nil {
		return &SubmissionError{Cause: err}
	}
	req.Header.Set("Content-Type", servicedef.PayloadContentType)
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &SubmissionError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return &SubmissionError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// fingerprint identifies a test that has no explicit key.
func fingerprint(name string) string {
	sum := sha1.Sum([]byte(name))
	return hex.EncodeToString(sum[:])
}
