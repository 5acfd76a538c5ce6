package completeness_test

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tackle-hunger/data-quality/internal/completeness"
	"github.com/tackle-hunger/data-quality/internal/domain"
	"github.com/tackle-hunger/data-quality/internal/logger"
)

func testAnalyzer() *completeness.Analyzer {
	return completeness.NewAnalyzerWithOptions(logger.NewNop(), completeness.Options{
		Clock: func() time.Time { return time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC) },
		NewID: func() string { return "report-1" },
	})
}

func fullSite(id, orgID string) domain.Record {
	return domain.Record{
		"id":             id,
		"name":           "Site " + id,
		"streetAddress":  "123 Main Street",
		"city":           "Springfield",
		"state":          "IL",
		"zip":            "62704",
		"publicEmail":    "info@example.org",
		"publicPhone":    "(217) 555-0100",
		"organizationId": orgID,
	}
}

func fullOrg(id string) domain.Record {
	return domain.Record{
		"id":            id,
		"name":          "Org " + id,
		"streetAddress": "500 Oak Avenue",
		"city":          "Springfield",
		"state":         "IL",
		"zip":           "62704",
	}
}

func TestAnalyzer_CriticalGapDetection(t *testing.T) {
	a := testAnalyzer()

	site := fullSite("s1", "o1")
	site["streetAddress"] = ""
	site["publicEmail"] = ""

	report := a.Analyze([]domain.Record{site}, []domain.Record{fullOrg("o1")})

	if len(report.Sites.CriticalGaps) != 1 {
		t.Fatalf("CriticalGaps = %d, want 1", len(report.Sites.CriticalGaps))
	}
	gap := report.Sites.CriticalGaps[0]
	want := []string{"streetAddress", "publicEmail"}
	if !reflect.DeepEqual(gap.MissingCritical, want) {
		t.Errorf("MissingCritical = %v, want %v", gap.MissingCritical, want)
	}
}

func TestAnalyzer_FieldStatistics(t *testing.T) {
	a := testAnalyzer()

	siteA := fullSite("s1", "o1")
	siteB := fullSite("s2", "o1")
	siteB["publicEmail"] = nil

	report := a.Analyze([]domain.Record{siteA, siteB}, []domain.Record{fullOrg("o1")})

	stat := report.Sites.FieldStatistics["publicEmail"]
	if stat.MissingCount != 1 {
		t.Errorf("MissingCount = %d, want 1", stat.MissingCount)
	}
	if stat.MissingPercentage != 50.0 {
		t.Errorf("MissingPercentage = %v, want 50.0", stat.MissingPercentage)
	}
	if !stat.IsCritical {
		t.Error("publicEmail should be critical for sites")
	}
}

func TestAnalyzer_CrossCheck(t *testing.T) {
	a := testAnalyzer()

	orphanNoID := fullSite("s1", "")
	delete(orphanNoID, "organizationId")
	orphanBadRef := fullSite("s2", "nope")
	healthy := fullSite("s3", "o1")
	withGappyParent := fullSite("s4", "o2")

	gappyOrg := fullOrg("o2")
	gappyOrg["zip"] = "null"
	gappyOrg["state"] = ""

	report := a.Analyze(
		[]domain.Record{orphanNoID, orphanBadRef, healthy, withGappyParent},
		[]domain.Record{fullOrg("o1"), gappyOrg},
	)

	if report.Integrity.OrphanedSites.Count != 2 {
		t.Errorf("OrphanedSites.Count = %d, want 2", report.Integrity.OrphanedSites.Count)
	}
	if report.Integrity.OrphanedSites.Percentage != 50.0 {
		t.Errorf("OrphanedSites.Percentage = %v, want 50.0", report.Integrity.OrphanedSites.Percentage)
	}
	if report.Integrity.IncompleteParents.Count != 1 {
		t.Errorf("IncompleteParents.Count = %d, want 1", report.Integrity.IncompleteParents.Count)
	}

	issue := report.Integrity.IncompleteParents.Examples[0]
	if !strings.Contains(issue.Reason, "state") || !strings.Contains(issue.Reason, "zip") {
		t.Errorf("Reason = %q, want the missing fields listed", issue.Reason)
	}
}

func TestAnalyzer_Recommendations(t *testing.T) {
	a := testAnalyzer()

	t.Run("field and integrity lines in order", func(t *testing.T) {
		siteA := fullSite("s1", "missing-org")
		siteA["publicEmail"] = ""
		siteB := fullSite("s2", "missing-org")
		siteB["publicEmail"] = ""

		report := a.Analyze([]domain.Record{siteA, siteB}, nil)

		if len(report.Recommendations) < 2 {
			t.Fatalf("Recommendations = %v, want field line plus integrity line", report.Recommendations)
		}
		if !strings.Contains(report.Recommendations[0], "publicEmail") {
			t.Errorf("first recommendation = %q, want publicEmail priority line", report.Recommendations[0])
		}
		last := report.Recommendations[len(report.Recommendations)-1]
		if !strings.Contains(last, "organization references") {
			t.Errorf("last recommendation = %q, want orphaned-site line", last)
		}
	})

	t.Run("clean data gets the affirmative line", func(t *testing.T) {
		report := a.Analyze(
			[]domain.Record{fullSite("s1", "o1")},
			[]domain.Record{fullOrg("o1")},
		)
		if len(report.Recommendations) != 1 {
			t.Fatalf("Recommendations = %v, want single line", report.Recommendations)
		}
		if !strings.HasPrefix(report.Recommendations[0], "Good news") {
			t.Errorf("Recommendations[0] = %q", report.Recommendations[0])
		}
	})
}

func TestAnalyzer_GapSortingAndCap(t *testing.T) {
	a := completeness.NewAnalyzerWithOptions(logger.NewNop(), completeness.Options{
		MaxEntityGaps: 2,
		Clock:         func() time.Time { return time.Unix(0, 0) },
		NewID:         func() string { return "r" },
	})

	oneGap := fullSite("one", "o1")
	oneGap["zip"] = ""

	threeGaps := fullSite("three", "o1")
	threeGaps["zip"] = ""
	threeGaps["city"] = ""
	threeGaps["state"] = ""

	twoGaps := fullSite("two", "o1")
	twoGaps["zip"] = ""
	twoGaps["publicPhone"] = ""

	report := a.Analyze([]domain.Record{oneGap, threeGaps, twoGaps}, []domain.Record{fullOrg("o1")})

	gaps := report.Sites.CriticalGaps
	if len(gaps) != 2 {
		t.Fatalf("CriticalGaps = %d, want capped at 2", len(gaps))
	}
	if gaps[0].ID != "three" || gaps[1].ID != "two" {
		t.Errorf("gap order = [%s %s], want [three two]", gaps[0].ID, gaps[1].ID)
	}
}

func TestAnalyzer_EmptyCollections(t *testing.T) {
	a := testAnalyzer()

	report := a.Analyze(nil, nil)

	if report.Sites.Total != 0 {
		t.Errorf("Sites.Total = %d, want 0", report.Sites.Total)
	}
	if report.Sites.Completeness.Score != 0 || report.Sites.Completeness.Grade != "F" {
		t.Errorf("Completeness = %+v, want score 0 grade F", report.Sites.Completeness)
	}
	if report.Integrity.OrphanedSites.Percentage != 0 {
		t.Errorf("OrphanedSites.Percentage = %v, want 0", report.Integrity.OrphanedSites.Percentage)
	}
}

func TestAnalyzer_Deterministic(t *testing.T) {
	a := testAnalyzer()

	sites := []domain.Record{fullSite("s1", "o1"), fullSite("s2", "")}
	orgs := []domain.Record{fullOrg("o1")}

	first := a.Analyze(sites, orgs)
	second := a.Analyze(sites, orgs)

	if !reflect.DeepEqual(first, second) {
		t.Error("Analyze is not deterministic over the same snapshot")
	}
}

func TestAnalyzer_GradeBlend(t *testing.T) {
	a := testAnalyzer()

	// Half the sites missing every critical field, optional fields full.
	bare := domain.Record{"id": "s1", "website": "https://example.org",
		"description": "d", "serviceArea": "a", "acceptsFoodDonations": true, "ein": "12-3456789"}
	full := fullSite("s2", "o1")
	full["website"] = "https://example.org"
	full["description"] = "d"
	full["serviceArea"] = "a"
	full["acceptsFoodDonations"] = true
	full["ein"] = "12-3456789"

	report := a.Analyze([]domain.Record{bare, full}, []domain.Record{fullOrg("o1")})

	// Critical average missing 50%, optional 0% -> 0.7*50 + 0.3*100 = 65.
	if got := report.Sites.Completeness.Score; got != 65.0 {
		t.Errorf("Completeness.Score = %v, want 65.0", got)
	}
	if report.Sites.Completeness.Grade != "D" {
		t.Errorf("Grade = %q, want D", report.Sites.Completeness.Grade)
	}
}
