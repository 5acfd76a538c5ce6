package operations

import (
	"context"
	"fmt"
	"strings"

	"github.com/tackle-hunger/data-quality/internal/classifier"
	"github.com/tackle-hunger/data-quality/internal/domain"
	"github.com/tackle-hunger/data-quality/internal/logger"
	"github.com/tackle-hunger/data-quality/internal/telemetry"
)

// Executor runs a GraphQL operation and returns the decoded data object.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]any) (map[string]any, error)
}

// Sites manages charity site workflows, including relocating non-physical
// addresses to the parent organization.
type Sites struct {
	client     Executor
	classifier *classifier.AddressClassifier
	telemetry  *telemetry.Provider
	log        logger.Logger
}

// NewSites creates site operations backed by the given API client. The
// telemetry provider may be nil.
func NewSites(client Executor, c *classifier.AddressClassifier, provider *telemetry.Provider, log logger.Logger) *Sites {
	return &Sites{
		client:     client,
		classifier: c,
		telemetry:  provider,
		log:        log,
	}
}

// FetchForAI fetches a page of sites for processing.
func (s *Sites) FetchForAI(ctx context.Context, limit, offset int) ([]domain.Record, error) {
	data, err := s.client.Execute(ctx, querySitesForAI, map[string]any{
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch sites: %w", err)
	}
	sites, err := decodeRecords(data["sitesForAI"])
	if err != nil {
		return nil, fmt.Errorf("decode sites: %w", err)
	}
	return sites, nil
}

// AnalyzeAddresses identifies sites whose address is not suitable for a food
// service location. Sites without a street address or a parent organization
// are skipped; they have nowhere to move the address to.
func (s *Sites) AnalyzeAddresses(sites []domain.Record) []domain.AddressFix {
	var fixes []domain.AddressFix

	for _, site := range sites {
		streetAddress := site.GetString("streetAddress")
		addressLine2 := site.GetString("addressLine2")
		orgID := site.OrganizationID()

		if strings.TrimSpace(streetAddress) == "" || orgID == "" {
			continue
		}

		if s.classifier.IsSuitableForSite(streetAddress, addressLine2) {
			continue
		}

		result := s.classifier.Classify(streetAddress, addressLine2)
		fixes = append(fixes, domain.AddressFix{
			SiteID:         site.ID(),
			SiteName:       site.Name(),
			OrganizationID: orgID,
			StreetAddress:  streetAddress,
			AddressLine2:   addressLine2,
			Action:         domain.FixActionMoveToOrg,
			Classification: result,
		})
	}

	return fixes
}

// ApplyFix moves a non-physical address from a site to its organization.
// The organization receives the flagged address; the site receives a
// physical address borrowed from a sibling site, or a cleared address when
// no sibling has one.
func (s *Sites) ApplyFix(ctx context.Context, fix domain.AddressFix) error {
	if fix.Action != domain.FixActionMoveToOrg {
		return fmt.Errorf("unsupported fix action %q", fix.Action)
	}

	err := s.moveAddressToOrg(ctx, fix)
	if s.telemetry != nil {
		s.telemetry.RecordFix(ctx, err == nil)
	}
	return err
}

func (s *Sites) moveAddressToOrg(ctx context.Context, fix domain.AddressFix) error {
	fullAddress := strings.TrimSpace(fix.StreetAddress + " " + fix.AddressLine2)

	orgInput := map[string]any{
		"streetAddress": fullAddress,
		"modifiedBy":    ModifiedBy,
	}
	if err := s.updateOrganization(ctx, fix.OrganizationID, orgInput); err != nil {
		return fmt.Errorf("update organization %s: %w", fix.OrganizationID, err)
	}

	org, err := s.fetchOrganization(ctx, fix.OrganizationID)
	if err != nil {
		return fmt.Errorf("fetch organization %s: %w", fix.OrganizationID, err)
	}

	siteInput := map[string]any{
		"streetAddress": "",
		"modifiedBy":    ModifiedBy,
	}
	if org != nil {
		if replacement := s.findPhysicalAddress(org.Sites(), fix.SiteID); replacement != nil {
			siteInput = replacement
			siteInput["modifiedBy"] = ModifiedBy
		} else {
			s.log.Warn("no physical address found for site, clearing address",
				logger.String("site_id", fix.SiteID))
		}
	}

	if err := s.updateSite(ctx, fix.SiteID, siteInput); err != nil {
		return fmt.Errorf("update site %s: %w", fix.SiteID, err)
	}

	return nil
}

// FixNonFoodServiceAddresses fetches sites, identifies unsuitable addresses,
// and applies the fixes. It returns the number of sites analyzed and the
// number of fixes successfully applied.
func (s *Sites) FixNonFoodServiceAddresses(ctx context.Context, limit int) (int, int, error) {
	s.log.Info("fixing non-food-service addresses", logger.Int("limit", limit))

	sites, err := s.FetchForAI(ctx, limit, 0)
	if err != nil {
		return 0, 0, err
	}

	fixes := s.AnalyzeAddresses(sites)
	s.log.Info("identified address fixes",
		logger.Int("sites", len(sites)),
		logger.Int("fixes", len(fixes)))

	applied := 0
	for _, fix := range fixes {
		if err := s.ApplyFix(ctx, fix); err != nil {
			s.log.Error("failed to apply address fix",
				logger.String("site_id", fix.SiteID),
				logger.Error(err))
			continue
		}
		applied++
		s.log.Info("applied address fix",
			logger.String("site_id", fix.SiteID),
			logger.String("site_name", fix.SiteName),
			logger.String("reason", fix.Classification.Reason))
	}

	return len(sites), applied, nil
}

// findPhysicalAddress returns the address components of the first sibling
// site with a physically suitable address, or nil when none exists.
func (s *Sites) findPhysicalAddress(sites []domain.Record, excludeSiteID string) map[string]any {
	for _, site := range sites {
		if site.ID() == excludeSiteID {
			continue
		}

		streetAddress := site.GetString("streetAddress")
		addressLine2 := site.GetString("addressLine2")
		if strings.TrimSpace(streetAddress) == "" {
			continue
		}

		if s.classifier.IsSuitableForSite(streetAddress, addressLine2) {
			input := map[string]any{
				"streetAddress": streetAddress,
				"city":          site.GetString("city"),
				"state":         site.GetString("state"),
				"zip":           site.GetString("zip"),
			}
			if addressLine2 != "" {
				input["addressLine2"] = addressLine2
			}
			return input
		}
	}
	return nil
}

func (s *Sites) fetchOrganization(ctx context.Context, organizationID string) (domain.Record, error) {
	data, err := s.client.Execute(ctx, queryOrganizationForAI, map[string]any{
		"organizationId": organizationID,
	})
	if err != nil {
		return nil, err
	}
	return decodeRecord(data["organizationForAI"])
}

func (s *Sites) updateSite(ctx context.Context, siteID string, input map[string]any) error {
	data, err := s.client.Execute(ctx, mutationUpdateSiteFromAI, map[string]any{
		"siteId": siteID,
		"input":  input,
	})
	if err != nil {
		return err
	}
	if data["updateSiteFromAI"] == nil {
		return fmt.Errorf("update returned no site")
	}
	return nil
}

func (s *Sites) updateOrganization(ctx context.Context, organizationID string, input map[string]any) error {
	data, err := s.client.Execute(ctx, mutationUpdateOrganizationFromAI, map[string]any{
		"organizationId": organizationID,
		"input":          input,
	})
	if err != nil {
		return err
	}
	if data["updateOrganizationFromAI"] == nil {
		return fmt.Errorf("update returned no organization")
	}
	return nil
}
