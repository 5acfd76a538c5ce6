package operations

import (
	"context"
	"fmt"

	"github.com/tackle-hunger/data-quality/internal/domain"
	"github.com/tackle-hunger/data-quality/internal/logger"
)

// Organizations manages charity organization reads.
type Organizations struct {
	client Executor
	log    logger.Logger
}

// NewOrganizations creates organization operations backed by the given API
// client.
func NewOrganizations(client Executor, log logger.Logger) *Organizations {
	return &Organizations{
		client: client,
		log:    log,
	}
}

// FetchForAI fetches organizations with their nested sites. The API does not
// support a limit argument on this query, so the limit is applied
// client-side; limit <= 0 returns everything.
func (o *Organizations) FetchForAI(ctx context.Context, limit int) ([]domain.Record, error) {
	data, err := o.client.Execute(ctx, queryOrganizationsForAI, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch organizations: %w", err)
	}

	orgs, err := decodeRecords(data["organizationsForAI"])
	if err != nil {
		return nil, fmt.Errorf("decode organizations: %w", err)
	}

	if limit > 0 && len(orgs) > limit {
		orgs = orgs[:limit]
	}
	return orgs, nil
}

// FetchByID fetches a single organization with its sites. Returns nil when
// the organization does not exist.
func (o *Organizations) FetchByID(ctx context.Context, organizationID string) (domain.Record, error) {
	data, err := o.client.Execute(ctx, queryOrganizationForAI, map[string]any{
		"organizationId": organizationID,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch organization %s: %w", organizationID, err)
	}
	return decodeRecord(data["organizationForAI"])
}
