package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/Guilhem-Bonnet/metro-cards/internal/domain"
	"github.com/Guilhem-Bonnet/metro-cards/internal/httpjson"
)

// handleSchedule relaie l'API amont en stale-while-revalidate.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	key := strings.Trim(chi.URLParam(r, "*"), "/")
	if key == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "missing station key")
		return
	}

	body, source, err := s.fetcher.Body(r.Context(), key)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("station", key).Msg("schedule proxy failed")
		httpjson.WriteError(w, http.StatusBadGateway, "schedule unavailable")
		return
	}

	cacheStatus := "MISS"
	if source == domain.SourceCache {
		cacheStatus = "HIT"
	}
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
