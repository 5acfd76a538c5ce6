// Package classifier detects whether a postal address is a physical service
// location or a non-physical mailing artifact (PO box, mail forwarding).
// Classification is heuristic and confidence-scored, never authoritative.
package classifier

import (
	"regexp"
	"strings"

	"github.com/tackle-hunger/data-quality/internal/domain"
	"github.com/tackle-hunger/data-quality/internal/logger"
)

// Confidence values per classification outcome.
const (
	// PoBoxConfidence applies when a PO-box pattern matches.
	PoBoxConfidence = 0.9
	// VirtualConfidence applies when a mail-forwarding pattern matches.
	VirtualConfidence = 0.8
	// PhysicalConfidence applies when a physical-address indicator matches.
	PhysicalConfidence = 0.85
	// IndeterminateConfidence applies when no pattern matches.
	IndeterminateConfidence = 0.3
)

// SuitabilityThreshold is the confidence a classification needs before its
// signal overrides the keep-on-site default.
const SuitabilityThreshold = 0.7

// poBoxPatterns indicate a PO box or other non-physical mailing address.
// The bare "box ###" pattern is anchored so that street names containing
// "box" (Box Elder Street, Boxwood Lane) do not match.
var poBoxPatterns = []string{
	`\b(p\.?\s*o\.?\s*box|post\s*office\s*box|postal\s*box)\b`,
	`\b(pob\s*\d+)\b`,
	`\b(po\s*\d+)\b`,
	`\b(p\.o\.\s*\d+)\b`,
	`^(box\s*\d+)$`,
	`\b(po\s*box)\b`,
}

// virtualPatterns indicate a virtual or mail-forwarding service.
var virtualPatterns = []string{
	`\b(suite\s*\d+)\b.*\b(mail\s*forwarding|virtual|mailbox)\b`,
	`\b(pmb|private\s*mail\s*box)\s*\d+\b`,
	`\b(mail\s*drop)\s*\d+\b`,
	`\b(c/o\s*[a-z\s]+mail)\b`,
}

// physicalPatterns strongly indicate a real street address: a house number
// followed by a street-type word, optionally with a directional prefix, or
// an explicit building/floor/suite identifier.
var physicalPatterns = []string{
	`\d+\s+[a-z\s]+(street|st|avenue|ave|road|rd|lane|ln|drive|dr|` +
		`boulevard|blvd|way|place|pl|court|ct|circle|cir)\b`,
	`\d+\s+[nsew]\.?\s+[a-z\s]+(street|st|avenue|ave|road|rd|boulevard|blvd)\b`,
	`\b(building|bldg|floor|suite)\s*[a-z\d]+\b`,
}

// compilePatterns compiles a pattern table once at package init.
// Inputs are lower-cased before matching, so no case flag is needed.
func compilePatterns(patterns []string) []*regexp.Regexp {
	result := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		result = append(result, regexp.MustCompile(pattern))
	}
	return result
}

var (
	poBoxRegexes    = compilePatterns(poBoxPatterns)
	virtualRegexes  = compilePatterns(virtualPatterns)
	physicalRegexes = compilePatterns(physicalPatterns)
)

// AddressClassifier classifies postal addresses against the compiled
// pattern tables. The tables are immutable process-wide state.
type AddressClassifier struct {
	log logger.Logger
}

// NewAddressClassifier creates a new address classifier.
func NewAddressClassifier(log logger.Logger) *AddressClassifier {
	return &AddressClassifier{log: log}
}

// Classify determines whether an address is a PO box, a virtual mailing
// address, a physical location, or indeterminate. It never errors; input
// blank on both lines yields a zero-confidence result. A blank street
// address with a meaningful second line is still classified, since PO
// boxes sometimes arrive on addressLine2 alone.
//
// Patterns are tested in strict priority order because PO-box and virtual
// phrasing are strong negative signals that must override weaker physical
// cues in the same address.
func (c *AddressClassifier) Classify(streetAddress, addressLine2 string) domain.AddressClassification {
	fullAddress := strings.ToLower(strings.TrimSpace(streetAddress))
	if line2 := strings.ToLower(strings.TrimSpace(addressLine2)); line2 != "" {
		if fullAddress != "" {
			fullAddress += " "
		}
		fullAddress += line2
	}

	if fullAddress == "" {
		return domain.AddressClassification{
			Confidence: 0.0,
			Reason:     "no address provided",
		}
	}

	if matched := matchPatterns(poBoxRegexes, fullAddress); len(matched) > 0 {
		c.log.Debug("Address classified as PO box",
			logger.Strings("patterns", matched),
		)
		return domain.AddressClassification{
			IsPoBox:    true,
			Confidence: PoBoxConfidence,
			Reason:     "contains PO box pattern: " + strings.Join(matched, ", "),
		}
	}

	if matched := matchPatterns(virtualRegexes, fullAddress); len(matched) > 0 {
		return domain.AddressClassification{
			Confidence: VirtualConfidence,
			Reason:     "contains virtual address pattern: " + strings.Join(matched, ", "),
		}
	}

	if matched := matchPatterns(physicalRegexes, fullAddress); len(matched) > 0 {
		return domain.AddressClassification{
			IsPhysicalAddress: true,
			Confidence:        PhysicalConfidence,
			Reason:            "contains physical address indicators: " + strings.Join(matched, ", "),
		}
	}

	return domain.AddressClassification{
		Confidence: IndeterminateConfidence,
		Reason:     "unable to definitively classify address type",
	}
}

// matchPatterns returns the source patterns that match the address.
func matchPatterns(regexes []*regexp.Regexp, address string) []string {
	var matched []string
	for _, re := range regexes {
		if re.MatchString(address) {
			matched = append(matched, re.String())
		}
	}
	return matched
}

// IsSuitableForSite reports whether an address can stay on a food-service
// site. PO boxes and confident non-physical results are unsuitable and
// should move to the parent organization. Genuinely ambiguous addresses
// stay on the site so a human can decide.
func (c *AddressClassifier) IsSuitableForSite(streetAddress, addressLine2 string) bool {
	classification := c.Classify(streetAddress, addressLine2)

	if classification.IsPoBox {
		return false
	}
	if !classification.IsPhysicalAddress && classification.Confidence > SuitabilityThreshold {
		return false
	}
	if classification.IsPhysicalAddress && classification.Confidence > SuitabilityThreshold {
		return true
	}

	return true
}
