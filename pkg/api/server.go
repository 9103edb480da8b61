package api

import (
	"encoding/json"
	"net/http"

	"github.com/rubiojr/fhsearch/pkg/log"
	"github.com/rubiojr/fhsearch/pkg/search"
)

// SourceFunc returns the source the next request should read from. It is
// called once per request so the web command can swap clients on reload.
type SourceFunc func() search.Source

type Server struct {
	source SourceFunc
	logger *log.Logger
}

func NewServer(source SourceFunc) *Server {
	return &Server{
		source: source,
		logger: log.ForService("api"),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("Error encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}
