package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Guilhem-Bonnet/metro-cards/internal/app"
	"github.com/Guilhem-Bonnet/metro-cards/internal/domain"
	"github.com/Guilhem-Bonnet/metro-cards/internal/httpjson"
)

type StationsHandler struct {
	timetable *app.Timetable
	board     *app.Board
}

func NewStationsHandler(timetable *app.Timetable, board *app.Board) *StationsHandler {
	return &StationsHandler{timetable: timetable, board: board}
}

func (h *StationsHandler) Routes(r chi.Router) {
	r.Get("/stations", h.list)
	r.Post("/stations", h.add)
	// Variante avec slash final (utile selon reverse-proxy / clients).
	r.Get("/stations/", h.list)
	r.Post("/stations/", h.add)
}

type addStationResponse struct {
	Stations []domain.StationSelection `json:"stations"`
	Card     *app.CardDTO              `json:"card,omitempty"`
}

func (h *StationsHandler) list(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.timetable.Selections())
}

func (h *StationsHandler) add(w http.ResponseWriter, r *http.Request) {
	var sel domain.StationSelection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	sel.Key = strings.TrimSpace(sel.Key)
	if sel.Key == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "missing key")
		return
	}
	if strings.TrimSpace(sel.Label) == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "missing label")
		return
	}

	// La récupération va jusqu'au bout même si le client se déconnecte.
	stations := h.timetable.AddStation(context.WithoutCancel(r.Context()), sel)
	out := addStationResponse{Stations: stations}
	if h.board != nil {
		if c, ok := h.board.Card(sel.Key); ok {
			dto := app.ToCardDTO(c)
			out.Card = &dto
		}
	}
	httpjson.Write(w, http.StatusCreated, out)
}
