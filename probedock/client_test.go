package probedock

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probedock/probedock-demo-go/servicedef"
)

func testClient(t *testing.T, serverURL string) *Client {
	t.Setenv(APITokenEnvVar, "")
	return NewClient(&Config{
		Project: ProjectConfig{APIID: "kvr0r1t0ydqx", Version: "1.0.0", Server: "local"},
		Servers: map[string]ServerConfig{"local": {APIURL: serverURL + "/api", APIToken: "secret"}},
	}, nil)
}

func TestPayloadShape(t *testing.T) {
	c := testClient(t, "http://localhost")
	report := closedReport(t)
	payload := c.Payload(report)

	assert.Equal(t, "kvr0r1t0ydqx", payload.ProjectID)
	assert.Equal(t, "1.0.0", payload.Version)
	assert.Equal(t, int64(1000), payload.Duration)
	assert.Equal(t, []servicedef.ReportPayload{{UID: report.UID}}, payload.Reports)
	require.Len(t, payload.Results, 2)

	first := payload.Results[0]
	assert.Equal(t, "My app works", first.Name)
	assert.Equal(t, "906f5978a7579899079f42977e0dc07391055f65", first.Fingerprint)
	assert.True(t, first.Passed)
	assert.Equal(t, int64(4), first.Duration)
	assert.False(t, first.Message.IsDefined())
	assert.Equal(t, DefaultCategory, first.Category)
	assert.Equal(t, []string{}, first.Tags)

	second := payload.Results[1]
	assert.False(t, second.Passed)
	assert.Equal(t, "Error: boom", second.Message.StringValue())
	assert.Equal(t, []string{"ui"}, second.Tags)
}

func TestFingerprintIsStablePerName(t *testing.T) {
	assert.Equal(t, fingerprint("My app works"), fingerprint("My app works"))
	assert.NotEqual(t, fingerprint("My app works"), fingerprint("My app breaks"))
	assert.Len(t, fingerprint("anything"), 40)
}

func TestSubmitPostsPayload(t *testing.T) {
	handler, requestsCh := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(202))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := testClient(t, server.URL)
		report := closedReport(t)
		require.NoError(t, c.Submit(context.Background(), report))

		require.Len(t, requestsCh, 1)
		r := <-requestsCh
		assert.Equal(t, http.MethodPost, r.Request.Method)
		assert.Equal(t, "/api/publish", r.Request.URL.Path)
		assert.Equal(t, servicedef.PayloadContentType, r.Request.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret", r.Request.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(r.Body, &body))
		assert.Equal(t, "kvr0r1t0ydqx", body["projectId"])
		results := body["results"].([]interface{})
		require.Len(t, results, 2)
		assert.Equal(t, "My app works", results[0].(map[string]interface{})["n"])
		assert.Nil(t, results[0].(map[string]interface{})["m"])
		assert.Equal(t, "Error: boom", results[1].(map[string]interface{})["m"])
	})
}

func TestSubmitReportsRejection(t *testing.T) {
	handler := httphelpers.HandlerWithResponse(422, nil, []byte("  unknown project\n"))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		err := testClient(t, server.URL).Submit(context.Background(), closedReport(t))
		var se *SubmissionError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, 422, se.StatusCode)
		assert.Equal(t, "unknown project", se.Body)
		assert.Nil(t, se.Cause)
	})
}

func TestSubmitReportsUnreachableServer(t *testing.T) {
	var url string
	httphelpers.WithServer(httphelpers.HandlerWithStatus(200), func(server *httptest.Server) {
		url = server.URL
	})

	err := testClient(t, url).Submit(context.Background(), closedReport(t))
	var se *SubmissionError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 0, se.StatusCode)
	assert.NotNil(t, se.Cause)
	assert.Contains(t, err.Error(), "could not reach Probe Dock")
}
