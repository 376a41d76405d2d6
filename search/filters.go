package search

import (
	"fmt"
	"strings"
	"time"
)

// Filter expressions use the index's boolean syntax: field:value clauses,
// numeric ranges, AND/OR, parenthesized groups.

// SessionFilters scopes the sessions index by organization and an optional
// date window (session_date is stored in milliseconds).
func SessionFilters(orgID string, startDate, endDate *time.Time) string {
	filters := []string{fmt.Sprintf("pitch.organization_ref:organizations/%s", orgID)}

	if startDate != nil {
		filters = append(filters, fmt.Sprintf("session_date >= %d", startDate.UnixMilli()))
	}
	if endDate != nil {
		filters = append(filters, fmt.Sprintf("session_date <= %d", endOfDayMs(*endDate)))
	}
	return strings.Join(filters, " AND ")
}

// GroupFilters scopes the permanent-sessions index by organization, with
// optional status and play-day predicates. Multiple days OR together: a
// group playing on any selected day matches.
func GroupFilters(orgID, status string, days []string) string {
	filters := []string{fmt.Sprintf("organization_ref:organizations/%s", orgID)}

	if status != "" {
		filters = append(filters, fmt.Sprintf("status:%s", status))
	}
	if len(days) > 0 {
		clauses := make([]string, len(days))
		for i, d := range days {
			clauses[i] = fmt.Sprintf("session_time.days:%s", d)
		}
		filters = append(filters, "("+strings.Join(clauses, " OR ")+")")
	}
	return strings.Join(filters, " AND ")
}

// TransactionFilters scopes the transactions index by organization, limits
// to wallet transaction types, and applies an optional date window.
func TransactionFilters(orgID string, startDate, endDate *time.Time) string {
	filters := []string{
		fmt.Sprintf("organization_ref:%q", "organizations/"+orgID),
		`(type:"Session2PitchWallet" OR type:"PitchWallet2Mpesa")`,
	}

	if startDate != nil {
		filters = append(filters, fmt.Sprintf("transaction_date >= %d", startDate.UnixMilli()))
	}
	if endDate != nil {
		filters = append(filters, fmt.Sprintf("transaction_date <= %d", endOfDayMs(*endDate)))
	}
	return strings.Join(filters, " AND ")
}

func endOfDayMs(t time.Time) int64 {
	end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
	return end.UnixMilli()
}
