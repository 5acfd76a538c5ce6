// Package quality scores individual records against weighted field
// definitions. All scores in this package's API are floats on the [0,1]
// scale; callers holding 0-100 values divide by 100 before grading.
package quality

import (
	"regexp"

	"github.com/tackle-hunger/data-quality/internal/domain"
)

// Validation patterns shared between the site and organization tables.
var (
	phonePattern   = regexp.MustCompile(`^\+?[\d\s\-\(\)\.]+$`)
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	websitePattern = regexp.MustCompile(`^https?://[^\s]+$`)
	einPattern     = regexp.MustCompile(`^\d{2}-?\d{7}$`)
)

// FieldDefinition declares how a single field contributes to a record's
// quality score. Definitions are immutable process-wide tables.
type FieldDefinition struct {
	Name     string
	Category domain.FieldCategory
	Weight   float64
	Required bool
	Pattern  *regexp.Regexp
}

// SiteFieldDefinitions is the scoring table for site records.
var SiteFieldDefinitions = []FieldDefinition{
	{Name: "id", Category: domain.CategoryCoreRequired, Weight: 1.0, Required: true},
	{Name: "name", Category: domain.CategoryCoreRequired, Weight: 1.0, Required: true},

	{Name: "streetAddress", Category: domain.CategoryLocation, Weight: 0.9, Required: true},
	{Name: "city", Category: domain.CategoryLocation, Weight: 0.9, Required: true},
	{Name: "state", Category: domain.CategoryLocation, Weight: 0.9, Required: true},
	{Name: "zip", Category: domain.CategoryLocation, Weight: 0.8, Required: true},
	{Name: "lat", Category: domain.CategoryLocation, Weight: 0.7},
	{Name: "lng", Category: domain.CategoryLocation, Weight: 0.7},

	{Name: "publicPhone", Category: domain.CategoryContact, Weight: 0.8, Pattern: phonePattern},
	{Name: "publicEmail", Category: domain.CategoryContact, Weight: 0.8, Pattern: emailPattern},
	{Name: "website", Category: domain.CategoryContact, Weight: 0.7, Pattern: websitePattern},

	{Name: "description", Category: domain.CategoryServiceInfo, Weight: 0.6},
	{Name: "serviceArea", Category: domain.CategoryServiceInfo, Weight: 0.5},
	{Name: "status", Category: domain.CategoryServiceInfo, Weight: 0.8},
	{Name: "acceptsFoodDonations", Category: domain.CategoryServiceInfo, Weight: 0.4},

	{Name: "ein", Category: domain.CategoryAdditional, Weight: 0.6, Pattern: einPattern},
	{Name: "contactEmail", Category: domain.CategoryAdditional, Weight: 0.5},
	{Name: "contactPhone", Category: domain.CategoryAdditional, Weight: 0.5},
}

// OrganizationFieldDefinitions is the scoring table for organization records.
var OrganizationFieldDefinitions = []FieldDefinition{
	{Name: "id", Category: domain.CategoryCoreRequired, Weight: 1.0, Required: true},
	{Name: "name", Category: domain.CategoryCoreRequired, Weight: 0.9},

	{Name: "streetAddress", Category: domain.CategoryLocation, Weight: 0.7},
	{Name: "city", Category: domain.CategoryLocation, Weight: 0.7},
	{Name: "state", Category: domain.CategoryLocation, Weight: 0.7},
	{Name: "zip", Category: domain.CategoryLocation, Weight: 0.6},

	{Name: "publicPhone", Category: domain.CategoryContact, Weight: 0.8, Pattern: phonePattern},
	{Name: "publicEmail", Category: domain.CategoryContact, Weight: 0.8, Pattern: emailPattern},
	{Name: "website", Category: domain.CategoryContact, Weight: 0.7, Pattern: websitePattern},

	{Name: "description", Category: domain.CategoryAdditional, Weight: 0.5},
	{Name: "ein", Category: domain.CategoryAdditional, Weight: 0.8, Pattern: einPattern},
}
