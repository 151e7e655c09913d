package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/chigarow/maps-to-waze-app/internal/models"
	"github.com/chigarow/maps-to-waze-app/internal/navigation"
)

const maxBatchBody = 1 << 20

type resolveResponse struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Source     string  `json:"source"`
	WazeURL    string  `json:"waze_url"`
	WazeAppURL string  `json:"waze_app_url"`
}

type batchRequest struct {
	URLs []string `json:"urls"`
}

type batchItem struct {
	URL    string           `json:"url"`
	Result *resolveResponse `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchItem `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *API) handleResolve(w http.ResponseWriter, r *http.Request) {
	rawURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if rawURL == "" {
		a.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing url parameter"})
		return
	}

	result := a.resolver.Resolve(r.Context(), rawURL)
	body, ok := toResponse(result)
	if !ok {
		a.writeJSON(w, http.StatusNotFound, errorResponse{Error: models.ErrNoMatch.Error()})
		return
	}

	a.writeJSON(w, http.StatusOK, body)
}

func (a *API) handleResolveBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBatchBody)).Decode(&req); err != nil {
		a.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if len(req.URLs) == 0 {
		a.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "urls must not be empty"})
		return
	}
	if len(req.URLs) > MaxBatchSize {
		a.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "too many urls"})
		return
	}

	results := a.resolver.ResolveBatch(r.Context(), req.URLs)

	resp := batchResponse{Results: make([]batchItem, len(req.URLs))}
	for i, rawURL := range req.URLs {
		item := batchItem{URL: rawURL}
		if i < len(results) {
			if body, ok := toResponse(results[i]); ok {
				item.Result = &body
			}
		}
		if item.Result == nil {
			item.Error = models.ErrNoMatch.Error()
		}
		resp.Results[i] = item
	}

	a.writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.log.DebugContext(r.Context(), "Performing health checks...")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		a.log.ErrorContext(r.Context(), "failed to write reply", "error", err)
	}
}

func toResponse(result models.Result) (resolveResponse, bool) {
	coords, ok := result.Coordinates()
	if !ok {
		return resolveResponse{}, false
	}
	return resolveResponse{
		Latitude:   coords.Latitude,
		Longitude:  coords.Longitude,
		Source:     result.Source(),
		WazeURL:    navigation.WazeWebURL(coords),
		WazeAppURL: navigation.WazeAppURI(coords),
	}, true
}

func (a *API) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.log.Error("failed to write reply", "error", err)
	}
}
