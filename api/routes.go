package api

import "net/http"

// RegisterRoutes wires up the API endpoints on the given ServeMux.
func RegisterRoutes(mux *http.ServeMux, s *Server) {
	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/files", s.handleFiles)
	mux.HandleFunc("GET /api/tags", s.handleListModels)
	mux.HandleFunc("DELETE /api/delete", s.handleDeleteModel)
	mux.HandleFunc("GET /api/health", s.handleHealth)
}
