package sboc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tackle-hunger/data-quality/internal/config"
	"github.com/tackle-hunger/data-quality/internal/logger"
	"github.com/tackle-hunger/data-quality/internal/telemetry"
)

// Metrics register with the global Prometheus registry, so the package
// shares a single provider across tests.
var (
	metricsProvider *telemetry.Provider
	metricsOnce     sync.Once
)

func newMetricsProvider() *telemetry.Provider {
	metricsOnce.Do(func() {
		metricsProvider = telemetry.NewProvider()
	})
	return metricsProvider
}

func testClientConfig(url string) config.APIConfig {
	return config.APIConfig{
		Token:       "test-token",
		Environment: "dev",
		DevURL:      url,
		Timeout:     5 * time.Second,
		RateLimit:   100,
		Burst:       100,
		MaxRetries:  2,
	}
}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient(config.APIConfig{}, nil, logger.NewNop())
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestClient_Execute(t *testing.T) {
	var gotToken, gotContentType string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("ai-scraping-token")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"data": {"sitesForAI": [{"id": "site-1"}]}}`))
	}))
	defer server.Close()

	client, err := NewClient(testClientConfig(server.URL), nil, logger.NewNop())
	require.NoError(t, err)

	data, err := client.Execute(context.Background(),
		"query sitesForAI($limit: Int) { sitesForAI(limit: $limit) { id } }",
		map[string]any{"limit": 10})
	require.NoError(t, err)

	sites, ok := data["sitesForAI"].([]any)
	require.True(t, ok)
	assert.Len(t, sites, 1)

	assert.Equal(t, "test-token", gotToken)
	assert.Equal(t, "application/json", gotContentType)
	assert.Contains(t, gotBody["query"], "sitesForAI")
}

func TestClient_Execute_GraphQLErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors": [{"message": "field not found"}]}`))
	}))
	defer server.Close()

	client, err := NewClient(testClientConfig(server.URL), nil, logger.NewNop())
	require.NoError(t, err)

	_, err = client.Execute(context.Background(), "query broken { nope }", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field not found")
}

func TestClient_Execute_RetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"data": {}}`))
	}))
	defer server.Close()

	client, err := NewClient(testClientConfig(server.URL), nil, logger.NewNop())
	require.NoError(t, err)

	_, err = client.Execute(context.Background(), "query ping { ping }", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestClient_Execute_RecordsRequestMetrics(t *testing.T) {
	provider := newMetricsProvider()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if query, _ := req["query"].(string); strings.Contains(query, "broken") {
			_, _ = w.Write([]byte(`{"errors": [{"message": "field not found"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"data": {}}`))
	}))
	defer server.Close()

	client, err := NewClient(testClientConfig(server.URL), provider, logger.NewNop())
	require.NoError(t, err)

	success := provider.Metrics.APIRequests.WithLabelValues("ping", "success")
	failure := provider.Metrics.APIRequests.WithLabelValues("broken", "error")
	successBefore := testutil.ToFloat64(success)
	failureBefore := testutil.ToFloat64(failure)

	_, err = client.Execute(context.Background(), "query ping { ping }", nil)
	require.NoError(t, err)

	_, err = client.Execute(context.Background(), "query broken { nope }", nil)
	require.Error(t, err)

	assert.Equal(t, successBefore+1, testutil.ToFloat64(success))
	assert.Equal(t, failureBefore+1, testutil.ToFloat64(failure))
}

func TestOperationName(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"query sitesForAI { sitesForAI { id } }", "sitesForAI"},
		{"mutation updateSiteFromAI($input: SiteInput!) { updateSiteFromAI(input: $input) { id } }", "updateSiteFromAI"},
		{"{ anonymous }", "unnamed"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, operationName(tt.query))
	}
}
