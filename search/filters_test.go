package search

import (
	"testing"
	"time"
)

func TestSessionFiltersOrgOnly(t *testing.T) {
	got := SessionFilters("org1", nil, nil)
	want := "pitch.organization_ref:organizations/org1"
	if got != want {
		t.Errorf("filters = %q, want %q", got, want)
	}
}

func TestSessionFiltersDateWindow(t *testing.T) {
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

	got := SessionFilters("org1", &start, &end)
	want := "pitch.organization_ref:organizations/org1" +
		" AND session_date >= 1740787200000" +
		" AND session_date <= 1743465599999"
	if got != want {
		t.Errorf("filters = %q, want %q", got, want)
	}
}

func TestGroupFiltersStatusAndDays(t *testing.T) {
	got := GroupFilters("org1", "Active", []string{"Mon", "Wed"})
	want := "organization_ref:organizations/org1" +
		" AND status:Active" +
		" AND (session_time.days:Mon OR session_time.days:Wed)"
	if got != want {
		t.Errorf("filters = %q, want %q", got, want)
	}
}

func TestGroupFiltersNoOptionals(t *testing.T) {
	got := GroupFilters("org1", "", nil)
	if got != "organization_ref:organizations/org1" {
		t.Errorf("filters = %q", got)
	}
}

func TestTransactionFiltersTypesAlwaysPresent(t *testing.T) {
	got := TransactionFilters("org1", nil, nil)
	want := `organization_ref:"organizations/org1"` +
		` AND (type:"Session2PitchWallet" OR type:"PitchWallet2Mpesa")`
	if got != want {
		t.Errorf("filters = %q, want %q", got, want)
	}
}
