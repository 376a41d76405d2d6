package search

import (
	"errors"
	"net/http"
	"strings"

	"pitchpro/models"
	"pitchpro/utils"

	"github.com/julienschmidt/httprouter"
)

// Handlers wires the search client into HTTP endpoints. The only logic here
// is filter construction and hit projection; querying is the index's job.
type Handlers struct {
	Client *Client
}

func NewHandlers(client *Client) *Handlers {
	return &Handlers{Client: client}
}

func (h *Handlers) respondSearchError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotConfigured) {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "search is not configured")
		return
	}
	utils.RespondWithError(w, http.StatusBadGateway, "search request failed")
}

// SearchSessions queries the sessions index scoped to one organization.
func (h *Handlers) SearchSessions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgID := ps.ByName("orgid")
	opts := utils.ParseQueryOptions(r)

	resp, err := h.Client.Query(r.Context(), models.SearchRequest{
		IndexName:   SessionsIndex,
		Query:       opts.Search,
		Filters:     SessionFilters(orgID, utils.ParseDateParam(r, "startDate"), utils.ParseDateParam(r, "endDate")),
		Page:        opts.Page,
		HitsPerPage: opts.HitsPerPage,
	})
	if err != nil {
		h.respondSearchError(w, err)
		return
	}

	hits := make([]models.SessionHit, 0, len(resp.Hits))
	for _, raw := range resp.Hits {
		hits = append(hits, projectSessionHit(raw))
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"sessions": hits,
		"nbHits":   resp.NbHits,
		"nbPages":  resp.NbPages,
		"page":     resp.Page,
	})
}

// SearchGroups queries the permanent-sessions index.
func (h *Handlers) SearchGroups(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgID := ps.ByName("orgid")
	opts := utils.ParseQueryOptions(r)

	var days []string
	if raw := r.URL.Query().Get("days"); raw != "" {
		days = strings.Split(raw, ",")
	}

	resp, err := h.Client.Query(r.Context(), models.SearchRequest{
		IndexName:   GroupsIndex,
		Query:       opts.Search,
		Filters:     GroupFilters(orgID, r.URL.Query().Get("status"), days),
		Page:        opts.Page,
		HitsPerPage: opts.HitsPerPage,
	})
	if err != nil {
		h.respondSearchError(w, err)
		return
	}

	hits := make([]models.GroupHit, 0, len(resp.Hits))
	for _, raw := range resp.Hits {
		hits = append(hits, projectGroupHit(raw))
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"groups":  hits,
		"nbHits":  resp.NbHits,
		"nbPages": resp.NbPages,
		"page":    resp.Page,
	})
}

// SearchTransactions queries the transactions index.
func (h *Handlers) SearchTransactions(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgID := ps.ByName("orgid")
	opts := utils.ParseQueryOptions(r)

	resp, err := h.Client.Query(r.Context(), models.SearchRequest{
		IndexName:   TransactionsIndex,
		Query:       opts.Search,
		Filters:     TransactionFilters(orgID, utils.ParseDateParam(r, "startDate"), utils.ParseDateParam(r, "endDate")),
		Page:        opts.Page,
		HitsPerPage: opts.HitsPerPage,
	})
	if err != nil {
		h.respondSearchError(w, err)
		return
	}

	hits := make([]models.TransactionHit, 0, len(resp.Hits))
	for _, raw := range resp.Hits {
		hits = append(hits, projectTransactionHit(raw))
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"transactions": hits,
		"nbHits":       resp.NbHits,
		"nbPages":      resp.NbPages,
		"page":         resp.Page,
	})
}

// ---------- hit projection ----------

func projectSessionHit(raw map[string]any) models.SessionHit {
	orgRef := str(raw["organization_ref"])
	if orgRef == "" {
		if pitch, ok := raw["pitch"].(map[string]any); ok {
			orgRef = str(pitch["organization_ref"])
		}
	}
	orgID, _ := models.RefID(orgRef)

	return models.SessionHit{
		ObjectID:        str(raw["objectID"]),
		SessionNo:       str(raw["session_no"]),
		BookedBy:        firstStr(raw, "ownerDisplayName", "owner_name", "bookedBy"),
		PitchName:       firstStr(raw, "pitch_name", "pitchName"),
		OrganizationID:  orgID,
		DateMs:          num(raw["session_date"]),
		Time:            str(raw["time"]),
		Type:            firstStr(raw, "session_type", "type"),
		CollectedAmount: float(raw["collected_amount"]),
		PitchFee:        float(raw["pitch_fee"]),
		Status:          str(raw["status"]),
		GroupName:       firstStr(raw, "group_name", "groupName"),
	}
}

func projectGroupHit(raw map[string]any) models.GroupHit {
	var days []string
	if st, ok := raw["session_time"].(map[string]any); ok {
		if list, ok := st["days"].([]any); ok {
			for _, d := range list {
				days = append(days, str(d))
			}
		}
	}
	return models.GroupHit{
		ObjectID:  str(raw["objectID"]),
		GroupName: firstStr(raw, "group_name", "groupName", "name"),
		PitchName: firstStr(raw, "pitch_name", "pitchName"),
		Days:      days,
		Time:      str(raw["time"]),
		MemberQty: int(num(raw["member_count"])),
		Status:    str(raw["status"]),
	}
}

func projectTransactionHit(raw map[string]any) models.TransactionHit {
	return models.TransactionHit{
		ObjectID:  str(raw["objectID"]),
		Reference: firstStr(raw, "reference", "transaction_ref"),
		Type:      str(raw["type"]),
		Amount:    float(raw["amount"]),
		DateMs:    num(raw["transaction_date"]),
		Status:    str(raw["status"]),
		Party:     firstStr(raw, "party", "owner_name"),
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func firstStr(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := str(raw[k]); s != "" {
			return s
		}
	}
	return ""
}

func float(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func num(v any) int64 {
	return int64(float(v))
}
