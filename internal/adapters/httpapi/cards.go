package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Guilhem-Bonnet/metro-cards/internal/app"
	"github.com/Guilhem-Bonnet/metro-cards/internal/httpjson"
)

type CardsHandler struct {
	board     *app.Board
	timetable *app.Timetable
}

func NewCardsHandler(board *app.Board, timetable *app.Timetable) *CardsHandler {
	return &CardsHandler{board: board, timetable: timetable}
}

func (h *CardsHandler) Routes(r chi.Router) {
	r.Get("/cards", h.list)
	// Les clés de station contiennent des slashes.
	r.Get("/cards/*", h.get)
	if h.timetable != nil {
		r.Post("/refresh", h.refresh)
	}
}

type boardDTO struct {
	Loading bool          `json:"loading"`
	Cards   []app.CardDTO `json:"cards"`
}

func (h *CardsHandler) snapshot() boardDTO {
	cards := h.board.Cards()
	out := boardDTO{Loading: h.board.Loading(), Cards: make([]app.CardDTO, 0, len(cards))}
	for _, c := range cards {
		out.Cards = append(out.Cards, app.ToCardDTO(c))
	}
	return out
}

func (h *CardsHandler) list(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, h.snapshot())
}

func (h *CardsHandler) get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	c, ok := h.board.Card(key)
	if !ok {
		httpjson.WriteError(w, http.StatusNotFound, "not found")
		return
	}
	httpjson.Write(w, http.StatusOK, app.ToCardDTO(c))
}

func (h *CardsHandler) refresh(w http.ResponseWriter, r *http.Request) {
	h.timetable.Refresh(context.WithoutCancel(r.Context()))
	httpjson.Write(w, http.StatusOK, h.snapshot())
}
