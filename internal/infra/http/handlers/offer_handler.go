package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jpvales/homerate-api/internal/infra/http/middleware"
	"github.com/jpvales/homerate-api/internal/usecase"
)

type OfferHandler struct {
	ListUC  *usecase.ListOffersUseCase
	ClickUC *usecase.RecordOfferClickUseCase
}

func NewOfferHandler(listUC *usecase.ListOffersUseCase, clickUC *usecase.RecordOfferClickUseCase) *OfferHandler {
	return &OfferHandler{
		ListUC:  listUC,
		ClickUC: clickUC,
	}
}

// HandleList (GET /api/offers) returns the active marketplace listings.
func (h *OfferHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	offers, err := h.ListUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, offers)
}

// HandleClick (POST /api/offers/{id}/click) records one outbound click.
func (h *OfferHandler) HandleClick(w http.ResponseWriter, r *http.Request) {
	offerID := chi.URLParam(r, "id")

	_, err := h.ClickUC.Execute(r.Context(), offerID, getClientIP(r), r.Referer())
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordOfferClick()
	w.WriteHeader(http.StatusNoContent)
}
