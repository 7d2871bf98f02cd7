package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/ppiankov/etchant/internal/catalog"
	"github.com/ppiankov/etchant/internal/classify"
	"github.com/ppiankov/etchant/internal/model"
	"github.com/ppiankov/etchant/internal/pipeline"
	"github.com/ppiankov/etchant/internal/render"
)

// APIError is the error body of every failed request
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error APIError `json:"error"`
}

// MaterialDetail is a material with its derived category key
type MaterialDetail struct {
	model.Material
	CategoryKey string `json:"category_key"`
}

// EtchantDetail is an etchant with its resolved purchase link
type EtchantDetail struct {
	model.Etchant
	PurchaseURL string `json:"purchase_url,omitempty"`
}

// OptionsResponse lists the selectable filter values
type OptionsResponse struct {
	Purposes   []model.Option            `json:"purposes"`
	Contexts   []model.Option            `json:"contexts"`
	QuickPicks []catalog.QuickPickOption `json:"quick_picks"`
}

// RecommendationResponse wraps a report with the empty-state hint
type RecommendationResponse struct {
	*model.Report
	EmptyMessage string `json:"empty_message,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: APIError{Code: code, Message: message}})
}

// catalogOr503 loads the catalog or writes a 503
func (s *Server) catalogOr503(w http.ResponseWriter, r *http.Request) (*catalog.Catalog, bool) {
	cat, err := s.pipeline.Catalog(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "the etchant catalog could not be loaded")
		return nil, false
	}
	return cat, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, OptionsResponse{
		Purposes:   model.PurposeOptions(),
		Contexts:   model.ContextOptions(),
		QuickPicks: catalog.QuickPicks(),
	})
}

func (s *Server) handleSearchMaterials(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.catalogOr503(w, r)
	if !ok {
		return
	}
	materials := cat.SearchMaterials(r.URL.Query().Get("q"))
	if materials == nil {
		materials = []model.Material{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"materials": materials})
}

func (s *Server) handleMaterial(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.catalogOr503(w, r)
	if !ok {
		return
	}
	m, err := cat.Material(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "material_not_found", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, MaterialDetail{Material: m, CategoryKey: classify.CategoryKey(m)})
}

func (s *Server) handleEtchant(w http.ResponseWriter, r *http.Request) {
	cat, ok := s.catalogOr503(w, r)
	if !ok {
		return
	}
	e, err := cat.Etchant(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "etchant_not_found", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, EtchantDetail{Etchant: e, PurchaseURL: s.pipeline.ProductLink(e)})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	material := strings.TrimSpace(q.Get("material"))
	if material == "" {
		respondError(w, http.StatusBadRequest, "missing_material", "query parameter 'material' is required")
		return
	}
	purpose, err := model.ParsePurpose(q.Get("purpose"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_purpose", err.Error())
		return
	}
	appCtx, err := model.ParseContext(q.Get("context"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_context", err.Error())
		return
	}

	report, err := s.pipeline.Recommend(r.Context(), pipeline.Request{
		MaterialQuery: material,
		Purpose:       purpose,
		Context:       appCtx,
	})
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		respondError(w, http.StatusNotFound, "material_not_found", err.Error())
		return
	case err != nil:
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "the etchant catalog could not be loaded")
		return
	}

	resp := RecommendationResponse{Report: report}
	if report.IsEmpty() {
		resp.EmptyMessage = render.EmptyStateMessage(report)
	}
	respondJSON(w, http.StatusOK, resp)
}
