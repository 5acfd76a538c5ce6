package domain

// AddressClassification is the outcome of classifying a postal address.
// At most one of IsPoBox and IsPhysicalAddress is true; both are false for
// virtual-mail and indeterminate results.
type AddressClassification struct {
	IsPoBox           bool    `json:"is_po_box"`
	IsPhysicalAddress bool    `json:"is_physical_address"`
	Confidence        float64 `json:"confidence"`
	Reason            string  `json:"reason"`
}

// Address fix actions.
const (
	// FixActionMoveToOrg relocates a non-physical address from a site to
	// its parent organization.
	FixActionMoveToOrg = "move_to_org"
)

// AddressFix is a proposed remediation for a site whose address is not a
// physical service location.
type AddressFix struct {
	SiteID         string                `json:"site_id"`
	SiteName       string                `json:"site_name"`
	OrganizationID string                `json:"organization_id"`
	StreetAddress  string                `json:"street_address"`
	AddressLine2   string                `json:"address_line2,omitempty"`
	Action         string                `json:"action"`
	Classification AddressClassification `json:"classification"`
}
