package operations

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tackle-hunger/data-quality/internal/classifier"
	"github.com/tackle-hunger/data-quality/internal/domain"
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

// call records a single GraphQL invocation.
type call struct {
	query     string
	variables map[string]any
}

// fakeExecutor dispatches canned responses by operation keyword.
type fakeExecutor struct {
	calls     []call
	responses map[string]map[string]any
}

func (f *fakeExecutor) Execute(_ context.Context, query string, variables map[string]any) (map[string]any, error) {
	f.calls = append(f.calls, call{query: query, variables: variables})
	for keyword, resp := range f.responses {
		if strings.Contains(query, keyword) {
			return resp, nil
		}
	}
	return map[string]any{}, nil
}

func newTestSites(exec *fakeExecutor) *Sites {
	log := logger.NewNop()
	return NewSites(exec, classifier.NewAddressClassifier(log), nil, log)
}

func TestSites_FetchForAI(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]map[string]any{
		"sitesForAI": {
			"sitesForAI": []any{
				map[string]any{"id": "site-1", "name": "North Pantry"},
				map[string]any{"id": "site-2", "name": "South Pantry"},
			},
		},
	}}

	sites, err := newTestSites(exec).FetchForAI(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, sites, 2)
	assert.Equal(t, "site-1", sites[0].ID())

	require.Len(t, exec.calls, 1)
	assert.Equal(t, 50, exec.calls[0].variables["limit"])
	assert.Equal(t, 0, exec.calls[0].variables["offset"])
}

func TestSites_AnalyzeAddresses(t *testing.T) {
	sites := []domain.Record{
		{
			"id":             "site-1",
			"name":           "Mail Only Pantry",
			"streetAddress":  "P.O. Box 123",
			"organizationId": "org-1",
		},
		{
			"id":             "site-2",
			"name":           "Main Kitchen",
			"streetAddress":  "123 Main Street",
			"organizationId": "org-1",
		},
		{
			// no parent organization, nowhere to move the address
			"id":            "site-3",
			"name":          "Orphan Pantry",
			"streetAddress": "PO Box 99",
		},
	}

	fixes := newTestSites(&fakeExecutor{}).AnalyzeAddresses(sites)
	require.Len(t, fixes, 1)

	fix := fixes[0]
	assert.Equal(t, "site-1", fix.SiteID)
	assert.Equal(t, "org-1", fix.OrganizationID)
	assert.Equal(t, domain.FixActionMoveToOrg, fix.Action)
	assert.True(t, fix.Classification.IsPoBox)
}

func TestSites_ApplyFix_BorrowsSiblingAddress(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]map[string]any{
		"organizationForAI": {
			"organizationForAI": map[string]any{
				"id": "org-1",
				"sites": []any{
					map[string]any{"id": "site-1", "streetAddress": "P.O. Box 123"},
					map[string]any{
						"id":            "site-2",
						"streetAddress": "456 Oak Avenue",
						"city":          "Springfield",
						"state":         "IL",
						"zip":           "62704",
					},
				},
			},
		},
		"updateSiteFromAI":         {"updateSiteFromAI": map[string]any{"id": "site-1"}},
		"updateOrganizationFromAI": {"updateOrganizationFromAI": map[string]any{"id": "org-1"}},
	}}

	fix := domain.AddressFix{
		SiteID:         "site-1",
		SiteName:       "Mail Only Pantry",
		OrganizationID: "org-1",
		StreetAddress:  "P.O. Box 123",
		Action:         domain.FixActionMoveToOrg,
	}

	require.NoError(t, newTestSites(exec).ApplyFix(context.Background(), fix))
	require.Len(t, exec.calls, 3)

	orgInput := exec.calls[0].variables["input"].(map[string]any)
	assert.Equal(t, "P.O. Box 123", orgInput["streetAddress"])
	assert.Equal(t, ModifiedBy, orgInput["modifiedBy"])

	siteInput := exec.calls[2].variables["input"].(map[string]any)
	assert.Equal(t, "456 Oak Avenue", siteInput["streetAddress"])
	assert.Equal(t, "Springfield", siteInput["city"])
	assert.Equal(t, ModifiedBy, siteInput["modifiedBy"])
}

func TestSites_ApplyFix_ClearsWhenNoSibling(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]map[string]any{
		"organizationForAI": {
			"organizationForAI": map[string]any{
				"id": "org-1",
				"sites": []any{
					map[string]any{"id": "site-1", "streetAddress": "P.O. Box 123"},
				},
			},
		},
		"updateSiteFromAI":         {"updateSiteFromAI": map[string]any{"id": "site-1"}},
		"updateOrganizationFromAI": {"updateOrganizationFromAI": map[string]any{"id": "org-1"}},
	}}

	fix := domain.AddressFix{
		SiteID:         "site-1",
		OrganizationID: "org-1",
		StreetAddress:  "P.O. Box 123",
		Action:         domain.FixActionMoveToOrg,
	}

	require.NoError(t, newTestSites(exec).ApplyFix(context.Background(), fix))

	siteInput := exec.calls[2].variables["input"].(map[string]any)
	assert.Equal(t, "", siteInput["streetAddress"])
}

func TestSites_ApplyFix_RejectsUnknownAction(t *testing.T) {
	err := newTestSites(&fakeExecutor{}).ApplyFix(context.Background(), domain.AddressFix{Action: "reclassify"})
	require.Error(t, err)
}

func TestSites_ApplyFix_RecordsFixOutcome(t *testing.T) {
	provider := newMetricsProvider()
	log := logger.NewNop()

	fix := domain.AddressFix{
		SiteID:         "site-1",
		OrganizationID: "org-1",
		StreetAddress:  "P.O. Box 123",
		Action:         domain.FixActionMoveToOrg,
	}

	appliedBefore := testutil.ToFloat64(provider.Metrics.AddressFixesApplied)
	failedBefore := testutil.ToFloat64(provider.Metrics.AddressFixesFailed)

	exec := &fakeExecutor{responses: map[string]map[string]any{
		"organizationForAI": {
			"organizationForAI": map[string]any{"id": "org-1", "sites": []any{}},
		},
		"updateSiteFromAI":         {"updateSiteFromAI": map[string]any{"id": "site-1"}},
		"updateOrganizationFromAI": {"updateOrganizationFromAI": map[string]any{"id": "org-1"}},
	}}
	sites := NewSites(exec, classifier.NewAddressClassifier(log), provider, log)
	require.NoError(t, sites.ApplyFix(context.Background(), fix))
	assert.Equal(t, appliedBefore+1, testutil.ToFloat64(provider.Metrics.AddressFixesApplied))

	// An empty response fails the organization update.
	failing := NewSites(&fakeExecutor{}, classifier.NewAddressClassifier(log), provider, log)
	require.Error(t, failing.ApplyFix(context.Background(), fix))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(provider.Metrics.AddressFixesFailed))
}

func TestSites_FixNonFoodServiceAddresses(t *testing.T) {
	exec := &fakeExecutor{responses: map[string]map[string]any{
		"sitesForAI": {
			"sitesForAI": []any{
				map[string]any{
					"id":             "site-1",
					"name":           "Mail Only Pantry",
					"streetAddress":  "PO Box 77",
					"organizationId": "org-1",
				},
				map[string]any{
					"id":             "site-2",
					"name":           "Main Kitchen",
					"streetAddress":  "123 Main Street",
					"organizationId": "org-1",
				},
			},
		},
		"organizationForAI": {
			"organizationForAI": map[string]any{"id": "org-1", "sites": []any{}},
		},
		"updateSiteFromAI":         {"updateSiteFromAI": map[string]any{"id": "site-1"}},
		"updateOrganizationFromAI": {"updateOrganizationFromAI": map[string]any{"id": "org-1"}},
	}}

	processed, applied, err := newTestSites(exec).FixNonFoodServiceAddresses(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, 2, processed)
	assert.Equal(t, 1, applied)
}
