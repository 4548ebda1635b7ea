package api

import "net/http"

type healthResponse struct {
	Status string `json:"status"`
}

type rootResponse struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Skills  int    `json:"skills"`
	Tasks   int    `json:"tasks"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// handleRoot serves the service banner with registration counts.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, rootResponse{
		Service: "skilld",
		Status:  "ok",
		Skills:  s.registry.Len(),
		Tasks:   len(s.scheduler.Routes()),
	})
}
