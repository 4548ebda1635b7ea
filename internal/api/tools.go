package api

import (
	"encoding/json"
	"net/http"

	"github.com/dcoale/skilld/internal/dispatch"
	"github.com/dcoale/skilld/internal/model"
	"github.com/dcoale/skilld/internal/skill"
)

const maxBodySize = 1 << 20 // 1 MB

// callToolRequest is the JSON body for POST /mcp/call.
type callToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

// callToolResponse echoes the tool name alongside the dispatch result.
type callToolResponse struct {
	Tool   string       `json:"tool"`
	Result model.Result `json:"result"`
}

// listToolsResponse lists direct skills and composite tasks.
type listToolsResponse struct {
	Skills []skill.Info         `json:"skills"`
	Tasks  []dispatch.RouteInfo `json:"tasks"`
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, listToolsResponse{
		Skills: s.registry.List(),
		Tasks:  s.scheduler.Routes(),
	})
}

func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	var req callToolRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Tool == "" {
		s.writeError(w, http.StatusBadRequest, "tool is required")
		return
	}
	if !s.scheduler.Knows(req.Tool) {
		s.writeError(w, http.StatusNotFound, "Tool not found: "+req.Tool)
		return
	}

	result := s.scheduler.RunTask(r.Context(), req.Tool, skill.Params(req.Args))

	s.writeJSON(w, http.StatusOK, callToolResponse{
		Tool:   req.Tool,
		Result: result,
	})
}
