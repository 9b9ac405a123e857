package handler

import (
	"library-lending/internal/api/handler/dto"
	"library-lending/internal/domain/borrowing"
	"log/slog"
	"net/http"
)

type BorrowingHandler struct {
	manager borrowing.Manager
	logger  *slog.Logger
}

func NewBorrowingHandler(m borrowing.Manager, l *slog.Logger) *BorrowingHandler {
	return &BorrowingHandler{
		manager: m,
		logger:  l.With("component", "BorrowingHandler"),
	}
}

// OpenBorrowing lends a copy to a customer.
//
// @Summary Open a borrowing
// @Description Lends an available copy to a customer with no outstanding fine. The due date must be after today.
// @Tags Borrowings
// @Accept json
// @Produce json
// @Param request body dto.OpenBorrowingRequest true "Borrowing request payload"
// @Success 201 {object} dto.BorrowingResponse "Borrowing opened"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or due date"
// @Failure 404 {object} dto.ErrorResponse "Customer or copy not found"
// @Failure 409 {object} dto.ErrorResponse "Copy unavailable or customer has an outstanding fine"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /borrowings [post]
// @Security BearerAuth
func (h *BorrowingHandler) OpenBorrowing(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenBorrowingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, invalidArgument(err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, invalidArgument(err))
		return
	}

	opened, err := h.manager.OpenBorrowing(r.Context(), req.CustomerID, req.CopyID, req.ParsedDueDate())
	if err != nil {
		h.logger.WarnContext(r.Context(), "Open borrowing rejected",
			slog.Int64("customerId", req.CustomerID),
			slog.Int64("copyId", req.CopyID),
			slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.NewBorrowingResponse(opened))
}

// CloseBorrowing returns or writes off the copy of an open borrowing.
//
// @Summary Close a borrowing
// @Description Closes an open borrowing as "returned" or "lost". A lost copy or a late return assesses a fine, which is included in the response.
// @Tags Borrowings
// @Accept json
// @Produce json
// @Param borrowingID path int true "Borrowing ID"
// @Param request body dto.CloseBorrowingRequest true "Close request payload"
// @Success 200 {object} dto.CloseBorrowingResponse "Borrowing closed"
// @Failure 400 {object} dto.ErrorResponse "Invalid borrowing ID, status or return date"
// @Failure 404 {object} dto.ErrorResponse "No open borrowing with that ID"
// @Failure 409 {object} dto.ErrorResponse "Copy status conflict"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /borrowings/{borrowingID}/return [put]
// @Security BearerAuth
func (h *BorrowingHandler) CloseBorrowing(w http.ResponseWriter, r *http.Request) {
	borrowingID, err := getIDFromURL(r, "borrowingID")
	if err != nil {
		respondError(w, invalidArgument(err))
		return
	}

	var req dto.CloseBorrowingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, invalidArgument(err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, invalidArgument(err))
		return
	}

	result, err := h.manager.CloseBorrowing(r.Context(), borrowingID, req.ParsedReturnDate(), req.Status)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCloseBorrowingResponse(result))
}

// GetBorrowing retrieves a single borrowing.
//
// @Summary Retrieve a borrowing
// @Tags Borrowings
// @Produce json
// @Param borrowingID path int true "Borrowing ID"
// @Success 200 {object} dto.BorrowingResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid borrowing ID"
// @Failure 404 {object} dto.ErrorResponse "Borrowing not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /borrowings/{borrowingID} [get]
// @Security BearerAuth
func (h *BorrowingHandler) GetBorrowing(w http.ResponseWriter, r *http.Request) {
	borrowingID, err := getIDFromURL(r, "borrowingID")
	if err != nil {
		respondError(w, invalidArgument(err))
		return
	}

	details, err := h.manager.GetBorrowing(r.Context(), borrowingID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewBorrowingDetailsResponse(details))
}

// ListBorrowings lists borrowings matching the query filters.
//
// @Summary List borrowings
// @Description Every filter is optional. startDate and endDate bound the borrow date exclusively.
// @Tags Borrowings
// @Produce json
// @Param borrowingId query int false "Borrowing ID"
// @Param copyId query int false "Copy ID"
// @Param customerId query int false "Customer ID"
// @Param startDate query string false "Borrowed after (YYYY-MM-DD)"
// @Param endDate query string false "Borrowed before (YYYY-MM-DD)"
// @Param status query string false "borrowed, returned or lost"
// @Success 200 {array} dto.BorrowingResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /borrowings [get]
// @Security BearerAuth
func (h *BorrowingHandler) ListBorrowings(w http.ResponseWriter, r *http.Request) {
	filter, err := dto.BorrowingFilterFromQuery(r.URL.Query())
	if err != nil {
		respondError(w, invalidArgument(err))
		return
	}

	list, err := h.manager.ListBorrowings(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewBorrowingListResponse(list))
}

// ListCurrentBorrowings lists the borrowings that are still open.
//
// @Summary List open borrowings
// @Tags Borrowings
// @Produce json
// @Success 200 {array} dto.BorrowingResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /borrowings/current [get]
// @Security BearerAuth
func (h *BorrowingHandler) ListCurrentBorrowings(w http.ResponseWriter, r *http.Request) {
	list, err := h.manager.ListOpenBorrowings(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewBorrowingListResponse(list))
}
