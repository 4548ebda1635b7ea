package api

import (
	"net/http"

	"github.com/dcoale/skilld/internal/model"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// listInvocationsResponse wraps the paginated history response.
type listInvocationsResponse struct {
	Invocations []*model.Invocation `json:"invocations"`
	Total       int                 `json:"total"`
	Limit       int                 `json:"limit"`
	Offset      int                 `json:"offset"`
}

func (s *Server) handleListInvocations(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeError(w, http.StatusNotFound, "invocation history is not enabled")
		return
	}

	limit := parseIntQuery(r, "limit", defaultListLimit)
	offset := parseIntQuery(r, "offset", 0)

	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	invocations, total, err := s.history.ListInvocations(r.Context(), limit, offset)
	if err != nil {
		s.logger.Error("list invocations", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list invocations")
		return
	}

	if invocations == nil {
		invocations = []*model.Invocation{}
	}

	s.writeJSON(w, http.StatusOK, listInvocationsResponse{
		Invocations: invocations,
		Total:       total,
		Limit:       limit,
		Offset:      offset,
	})
}
