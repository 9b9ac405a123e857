package handler

import (
	"library-lending/internal/api/handler/dto"
	"library-lending/internal/domain/fine"
	"log/slog"
	"net/http"
)

type FineHandler struct {
	engine fine.Engine
	logger *slog.Logger
}

func NewFineHandler(e fine.Engine, l *slog.Logger) *FineHandler {
	return &FineHandler{
		engine: e,
		logger: l.With("component", "FineHandler"),
	}
}

// ListFines lists fines matching the query filters.
//
// @Summary List fines
// @Tags Fines
// @Produce json
// @Param borrowingId query int false "Borrowing ID"
// @Param customerId query int false "Customer ID"
// @Param customerEmail query string false "Customer email"
// @Param status query string false "outstanding or paid"
// @Success 200 {array} dto.FineResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fines [get]
// @Security BearerAuth
func (h *FineHandler) ListFines(w http.ResponseWriter, r *http.Request) {
	filter, err := dto.FineFilterFromQuery(r.URL.Query())
	if err != nil {
		respondError(w, invalidArgument(err))
		return
	}

	fines, err := h.engine.ListFines(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewFineListResponse(fines))
}

// GetFine retrieves a single fine.
//
// @Summary Retrieve a fine
// @Tags Fines
// @Produce json
// @Param fineID path int true "Fine ID"
// @Success 200 {object} dto.FineResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid fine ID"
// @Failure 404 {object} dto.ErrorResponse "Fine not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fines/{fineID} [get]
// @Security BearerAuth
func (h *FineHandler) GetFine(w http.ResponseWriter, r *http.Request) {
	fineID, err := getIDFromURL(r, "fineID")
	if err != nil {
		respondError(w, invalidArgument(err))
		return
	}

	f, err := h.engine.GetFine(r.Context(), fineID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewFineResponse(f))
}

// MarkFinePaid settles the fine of a borrowing.
//
// @Summary Mark a fine as paid
// @Description Settles the fine attached to a borrowing. Only the status "paid" is accepted; repeating the call is a no-op.
// @Tags Fines
// @Accept json
// @Produce json
// @Param borrowingID path int true "Borrowing ID"
// @Param request body dto.MarkFinePaidRequest true "Payment payload"
// @Success 200 {object} dto.FineResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid borrowing ID or status"
// @Failure 404 {object} dto.ErrorResponse "No fine for that borrowing"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /fines/{borrowingID}/payment [put]
// @Security BearerAuth
func (h *FineHandler) MarkFinePaid(w http.ResponseWriter, r *http.Request) {
	borrowingID, err := getIDFromURL(r, "borrowingID")
	if err != nil {
		respondError(w, invalidArgument(err))
		return
	}

	var req dto.MarkFinePaidRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, invalidArgument(err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, invalidArgument(err))
		return
	}

	paid, err := h.engine.MarkPaid(r.Context(), borrowingID, req.Status)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewFineResponse(paid))
}
