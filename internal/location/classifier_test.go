package location

import (
	"testing"

	"jobscout/internal/posting"
)

func TestDetectCountries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		location string
		expect   []string
	}{
		{"city and state", "San Francisco, CA", []string{"US"}},
		{"canadian province", "Toronto, ON", []string{"CA"}},
		{"country name", "Remote - Germany", []string{"DE"}},
		{"region shorthand", "Remote (NAMER)", []string{"US", "CA"}},
		{"multi location", "London | Paris", []string{"UK", "FR"}},
		{"or separated", "Dublin or Amsterdam", []string{"IE", "NL"}},
		{"known city only", "Tel Aviv", []string{"IL"}},
		{"empty", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DetectCountries(tt.location)
			if len(got) != len(tt.expect) {
				t.Fatalf("expected %v, got %v", tt.expect, got)
			}
			for _, code := range tt.expect {
				if _, ok := got[code]; !ok {
					t.Fatalf("expected %s in %v", code, got)
				}
			}
		})
	}
}

func TestIsRegionOnly(t *testing.T) {
	t.Parallel()

	regionOnly := []string{"NAMER", "United States", "North America", ""}
	for _, loc := range regionOnly {
		if !IsRegionOnly(loc) {
			t.Errorf("expected %q to be region-only", loc)
		}
	}

	specific := []string{"San Francisco, CA", "Sunnyvale, California, United States", "Berlin, Germany", "Tokyo"}
	for _, loc := range specific {
		if IsRegionOnly(loc) {
			t.Errorf("expected %q to be specific", loc)
		}
	}
}

func TestClassifyWorkType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		location    string
		description string
		expect      posting.WorkType
	}{
		{"hybrid in location", "New York, NY (Hybrid)", "", posting.WorkTypeHybrid},
		{"hybrid in description head", "Austin, TX", "This is a hybrid role based in Austin.", posting.WorkTypeHybrid},
		{"remote in location", "Remote - US", "", posting.WorkTypeRemote},
		{"onsite wording wins", "Onsite, San Francisco, CA", "", posting.WorkTypeOnSite},
		{"empty location is remote", "  ", "", posting.WorkTypeRemote},
		{"region only is remote", "NAMER", "", posting.WorkTypeRemote},
		{"country only is remote", "United States", "", posting.WorkTypeRemote},
		{"no signal is unknown", "Flexible", "", posting.WorkTypeUnknown},
		{"city defaults to on-site", "Seattle, WA", "", posting.WorkTypeOnSite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyWorkType(tt.location, tt.description); got != tt.expect {
				t.Fatalf("expected %s, got %s", tt.expect, got)
			}
		})
	}
}

func TestClassifyWorkTypeIgnoresDeepRemoteMentions(t *testing.T) {
	t.Parallel()

	// "hybrid" appearing beyond the scanned head should not flip the type.
	long := make([]byte, 0, 600)
	for len(long) < 520 {
		long = append(long, "lorem ipsum "...)
	}
	desc := string(long) + " hybrid"

	if got := ClassifyWorkType("Seattle, WA", desc); got != posting.WorkTypeOnSite {
		t.Fatalf("expected On-site, got %s", got)
	}
}

func TestClassifyFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		location    string
		workType    posting.WorkType
		userCountry string
		userCity    string
		expect      Flag
	}{
		{"no user country disables flagging", "London", posting.WorkTypeOnSite, "", "Seattle", FlagNone},
		{"global remote", "", posting.WorkTypeRemote, "US", "Seattle", FlagNone},
		{"remote same country", "Remote - US", posting.WorkTypeRemote, "US", "Seattle", FlagNone},
		{"remote other country", "Remote - Germany", posting.WorkTypeRemote, "US", "Seattle", FlagInternational},
		{"onsite other country", "London", posting.WorkTypeOnSite, "US", "Seattle", FlagInternational},
		{"onsite same city", "Seattle, WA", posting.WorkTypeOnSite, "US", "Seattle, WA", FlagNone},
		{"onsite other city", "San Francisco, CA", posting.WorkTypeOnSite, "US", "Seattle, WA", FlagRelocation},
		{"onsite no city configured", "San Francisco, CA", posting.WorkTypeOnSite, "US", "", FlagNone},
		{"unknown work type", "Flexible", posting.WorkTypeUnknown, "US", "Seattle", FlagNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ClassifyFlag(tt.location, tt.workType, tt.userCountry, tt.userCity)
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestRegionOnlyRemoteFlagging(t *testing.T) {
	t.Parallel()

	// "NAMER" with no city classifies Remote. Users based inside the region's
	// countries carry no flag; users outside it get International.
	wt := ClassifyWorkType("NAMER", "")
	if wt != posting.WorkTypeRemote {
		t.Fatalf("expected Remote, got %s", wt)
	}
	if flag := ClassifyFlag("NAMER", wt, "US", "Seattle"); flag != FlagNone {
		t.Fatalf("expected no flag for US user, got %q", flag)
	}
	if flag := ClassifyFlag("NAMER", wt, "CA", "Toronto"); flag != FlagNone {
		t.Fatalf("expected no flag for CA user, got %q", flag)
	}
	if flag := ClassifyFlag("NAMER", wt, "DE", "Berlin"); flag != FlagInternational {
		t.Fatalf("expected International for DE user, got %q", flag)
	}
}
