// Package servicedef contains the JSON types exchanged with the Probe Dock API.
package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// PayloadContentType identifies version 1 of the Probe Dock publish format.
const PayloadContentType = "application/vnd.probedock.payload.v1+json"

// TestRunPayload is the body of a publish request.
type TestRunPayload struct {
	ProjectID string              `json:"projectId"`
	Version   string              `json:"version"`
	Duration  int64               `json:"duration"`
	Reports   []ReportPayload     `json:"reports,omitempty"`
	Results   []TestResultPayload `json:"results"`
}

// ReportPayload groups the results of several publish requests under one uid.
type ReportPayload struct {
	UID string `json:"uid"`
}

// TestResultPayload is a single test result. Field names are abbreviated by the API.
type TestResultPayload struct {
	Name        string                 `json:"n"`
	Fingerprint string                 `json:"f"`
	Passed      bool                   `json:"p"`
	Duration    int64                  `json:"d"`
	Message     ldvalue.OptionalString `json:"m"`
	Category    string                 `json:"c,omitempty"`
	Tags        []string               `json:"g"`
}
