package handler

import (
	"errors"
	"fmt"
	"library-lending/internal/api/handler/dto"
	"library-lending/internal/pkg/apperrors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// errorCodes is checked in order; the specific lending kinds come before the
// generic sentinels they wrap.
var errorCodes = []struct {
	target error
	status int
	code   string
}{
	{apperrors.ErrCopyUnavailable, http.StatusConflict, "COPY_UNAVAILABLE"},
	{apperrors.ErrOutstandingFine, http.StatusConflict, "OUTSTANDING_FINE"},
	{apperrors.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
	{apperrors.ErrCustomerNotFound, http.StatusNotFound, "CUSTOMER_NOT_FOUND"},
	{apperrors.ErrBorrowingNotFound, http.StatusNotFound, "BORROWING_NOT_FOUND"},
	{apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{apperrors.ErrConflict, http.StatusConflict, "CONFLICT"},
	{apperrors.ErrAlreadyExists, http.StatusConflict, "CONFLICT"},
	{apperrors.ErrInvalidArgument, http.StatusBadRequest, "VALIDATION"},
	{apperrors.ErrValidation, http.StatusBadRequest, "VALIDATION"},
}

func classifyError(err error) (status int, code, message, field string, ok bool) {
	var validationError *apperrors.ValidationError
	if errors.As(err, &validationError) {
		return http.StatusBadRequest, "VALIDATION", validationError.Message, validationError.Field, true
	}
	for _, ec := range errorCodes {
		if !errors.Is(err, ec.target) {
			continue
		}
		message = err.Error()
		if ec.code == "NOT_FOUND" {
			message = "Resource not found."
		}
		return ec.status, ec.code, message, "", true
	}
	return http.StatusInternalServerError, "INTERNAL", "An unexpected error occurred.", "", false
}

func respondError(w http.ResponseWriter, err error) {
	status, code, message, field, ok := classifyError(err)
	if !ok {
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

func invalidArgument(err error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err)
}

func getIDFromURL(r *http.Request, param string) (int64, error) {
	idStr := chi.URLParam(r, param)
	if idStr == "" {
		return 0, fmt.Errorf("%s not found in URL path", param)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive", param)
	}
	return id, nil
}

func getStringFromURL(r *http.Request, param string) (string, error) {
	v := strings.TrimSpace(chi.URLParam(r, param))
	if v == "" {
		return "", fmt.Errorf("%s not found in URL path", param)
	}
	return v, nil
}
