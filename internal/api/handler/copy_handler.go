package handler

import (
	"library-lending/internal/api/handler/dto"
	"library-lending/internal/domain/bookcopy"
	"log/slog"
	"net/http"
)

type CopyHandler struct {
	tracker bookcopy.Tracker
	logger  *slog.Logger
}

func NewCopyHandler(t bookcopy.Tracker, l *slog.Logger) *CopyHandler {
	return &CopyHandler{
		tracker: t,
		logger:  l.With("component", "CopyHandler"),
	}
}

// GetCopy retrieves a book copy and its current status.
//
// @Summary Retrieve a book copy
// @Tags Copies
// @Produce json
// @Param copyID path int true "Copy ID"
// @Success 200 {object} dto.CopyResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid copy ID"
// @Failure 404 {object} dto.ErrorResponse "Copy not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /copies/{copyID} [get]
// @Security BearerAuth
func (h *CopyHandler) GetCopy(w http.ResponseWriter, r *http.Request) {
	copyID, err := getIDFromURL(r, "copyID")
	if err != nil {
		respondError(w, invalidArgument(err))
		return
	}

	c, err := h.tracker.GetCopy(r.Context(), copyID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCopyResponse(c))
}

// GetCopyByBarcode retrieves a book copy by its barcode.
//
// @Summary Retrieve a book copy by barcode
// @Tags Copies
// @Produce json
// @Param barcode path string true "Copy barcode"
// @Success 200 {object} dto.CopyResponse
// @Failure 404 {object} dto.ErrorResponse "Copy not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /copies/barcode/{barcode} [get]
// @Security BearerAuth
func (h *CopyHandler) GetCopyByBarcode(w http.ResponseWriter, r *http.Request) {
	barcode, err := getStringFromURL(r, "barcode")
	if err != nil {
		respondError(w, invalidArgument(err))
		return
	}

	c, err := h.tracker.GetCopyByBarcode(r.Context(), barcode)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCopyResponse(c))
}
