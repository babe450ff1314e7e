package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/cloudchase/oi-hub/discovery"
	"github.com/cloudchase/oi-hub/hub"
	"github.com/cloudchase/oi-hub/registry"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to write JSON response")
	}
}

// writeError writes an error response with the given status code.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// registryStatus maps a registry failure onto a response status.
func registryStatus(err error) int {
	switch {
	case errors.Is(err, hub.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, hub.ErrNetwork), errors.Is(err, hub.ErrBadResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleCatalog handles GET /api/catalog.
func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	entries, err := s.manager.LoadCatalog()
	if err != nil {
		if errors.Is(err, registry.ErrNoCatalog) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to read catalog: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, CatalogResponse{Models: entries})
}

// handleSearch handles GET /api/search?q=<keyword>&mem=<GB>.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	keyword := strings.TrimSpace(q.Get("q"))
	if keyword == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	var mem float64
	if raw := q.Get("mem"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			writeError(w, http.StatusBadRequest, "mem must be a non-negative number")
			return
		}
		mem = v
	}

	results, err := s.searcher.Search(r.Context(), keyword, mem)
	if err != nil {
		writeError(w, registryStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// handleFiles handles GET /api/files?repo=<id>&type=<format|all>.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	repo := strings.TrimSpace(q.Get("repo"))
	if repo == "" {
		writeError(w, http.StatusBadRequest, "repo is required")
		return
	}

	formats, err := ParseFileType(q.Get("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	groups, err := discovery.ListFiles(r.Context(), s.hub, repo, formats...)
	if err != nil {
		writeError(w, registryStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// ParseFileType turns a file type filter into formats: empty means GGUF,
// "all" means no filter.
func ParseFileType(t string) ([]discovery.WeightFormat, error) {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "":
		return []discovery.WeightFormat{discovery.FormatGGUF}, nil
	case "all":
		return nil, nil
	}
	f, err := discovery.ParseWeightFormat(t)
	if err != nil {
		return nil, err
	}
	return []discovery.WeightFormat{f}, nil
}

// handleListModels handles GET /api/tags.
func (s *Server) handleListModels(w http.ResponseWriter, _ *http.Request) {
	manifests, err := s.manager.ListModels()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list models: "+err.Error())
		return
	}

	models := make([]ModelInfo, 0, len(manifests))
	for _, m := range manifests {
		models = append(models, ModelInfo{
			Name:         m.Name,
			Repo:         m.Repo,
			Size:         m.Size,
			Parameters:   m.Parameters,
			Quantization: m.Quantization,
		})
	}

	writeJSON(w, http.StatusOK, ListResponse{Models: models})
}

// handleDeleteModel handles DELETE /api/delete.
func (s *Server) handleDeleteModel(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := s.manager.RemoveModel(req.Name); err != nil {
		switch {
		case errors.Is(err, registry.ErrNotInstalled):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, registry.ErrInvalidName):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to delete model: "+err.Error())
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]any{
		"status": "ok",
	}
	if entries, err := s.manager.LoadCatalog(); err == nil {
		resp["catalog_models"] = len(entries)
	}
	writeJSON(w, http.StatusOK, resp)
}
