package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kiranahq/lingocache"
)

func (g *Gateway) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (g *Gateway) versionHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    lingocache.Name,
		"version": lingocache.Version,
		"commit":  lingocache.GitCommit,
	})
}

// getProductHandler serves GET /v1/products/{id}, translating the record
// into the Accept-Language target.
func (g *Gateway) getProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" {
		writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	targetLang, err := g.targetLanguage(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	record, err := g.catalog.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	translated, err := g.translator.TranslateRecord(r.Context(), record, targetLang)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, translated)
}

// batchRequest is the POST body for batch translation. A bare JSON array
// of ids is accepted as well.
type batchRequest struct {
	IDs []string `json:"ids"`
}

type batchEntry struct {
	ID     string                       `json:"id"`
	Status string                       `json:"status,omitempty"`
	Record *lingocache.TranslatedRecord `json:"record,omitempty"`
}

// batchTranslateHandler serves POST /v1/products/batch-translate. Entries
// come back in input order; an unknown id yields {id, status:"not_found"}
// at its position.
func (g *Gateway) batchTranslateHandler(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable request body")
		return
	}

	var req batchRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		// Older clients post a bare JSON array of ids.
		if err := json.Unmarshal(raw, &req.IDs); err != nil {
			writeError(w, http.StatusBadRequest, "malformed request body")
			return
		}
	}

	targetLang, err := g.targetLanguage(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	results, err := g.batch.TranslateBatch(r.Context(), req.IDs, targetLang)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	entries := make([]batchEntry, len(results))
	for i, res := range results {
		entries[i] = batchEntry{ID: res.ID}
		if res.NotFound {
			entries[i].Status = "not_found"
		} else {
			entries[i].Record = res.Record
		}
	}
	writeJSON(w, http.StatusOK, entries)
}

type listResponse struct {
	Records       []*lingocache.TranslatedRecord `json:"records"`
	NextPageToken string                         `json:"next_page_token,omitempty"`
	HasMore       bool                           `json:"has_more"`
}

// listProductsHandler serves GET /v1/products?page_size=N&page_token=T.
func (g *Gateway) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	targetLang, err := g.targetLanguage(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	pageSize := 0
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "page_size must be an integer")
			return
		}
		pageSize = n
	}

	page, err := g.paginator.List(r.Context(), pageSize, r.URL.Query().Get("page_token"), targetLang)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if page.Records == nil {
		page.Records = []*lingocache.TranslatedRecord{}
	}
	writeJSON(w, http.StatusOK, listResponse{
		Records:       page.Records,
		NextPageToken: page.NextPageToken,
		HasMore:       page.HasMore,
	})
}

// targetLanguage resolves and validates the Accept-Language header. Only
// the first tag is considered; quality weights are ignored.
func (g *Gateway) targetLanguage(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if raw == "" {
		return g.defaultLang, nil
	}
	if i := strings.IndexAny(raw, ",;"); i >= 0 {
		raw = raw[:i]
	}

	lang := lingocache.NormalizeLang(raw)
	if !lingocache.IsKnownLanguage(lang) {
		return "", &lingocache.ValidationError{Message: fmt.Sprintf("unsupported language %q", raw)}
	}
	if g.allowedLangs != nil && !g.allowedLangs[lang] {
		return "", &lingocache.ValidationError{Message: fmt.Sprintf("language %q is not served", raw)}
	}
	return lang, nil
}
