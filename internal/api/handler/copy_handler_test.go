package handler

import (
	"library-lending/internal/api/handler/dto"
	"library-lending/internal/domain/bookcopy"
	"library-lending/internal/pkg/apperrors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCopyHandlerGetCopy(t *testing.T) {
	mockTracker := new(MockTracker)
	h := NewCopyHandler(mockTracker, testLogger)

	mockTracker.On("GetCopy", mock.Anything, int64(2)).Return(&bookcopy.BookCopy{ID: 2, BookID: 1, Barcode: "LIB-0002", Status: bookcopy.StatusBorrowed}, nil).Once()
	rec := httptest.NewRecorder()
	h.GetCopy(rec, newRequest(http.MethodGet, "/copies/2", "", "copyID", "2"))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.CopyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "borrowed", resp.Status)

	mockTracker.On("GetCopy", mock.Anything, int64(3)).Return((*bookcopy.BookCopy)(nil), apperrors.ErrNotFound).Once()
	rec = httptest.NewRecorder()
	h.GetCopy(rec, newRequest(http.MethodGet, "/copies/3", "", "copyID", "3"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.GetCopy(rec, newRequest(http.MethodGet, "/copies/-1", "", "copyID", "-1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	mockTracker.AssertExpectations(t)
}

func TestCopyHandlerGetCopyByBarcode(t *testing.T) {
	mockTracker := new(MockTracker)
	h := NewCopyHandler(mockTracker, testLogger)

	mockTracker.On("GetCopyByBarcode", mock.Anything, "LIB-0007").Return(&bookcopy.BookCopy{ID: 7, Barcode: "LIB-0007", Status: bookcopy.StatusAvailable}, nil)
	rec := httptest.NewRecorder()
	h.GetCopyByBarcode(rec, newRequest(http.MethodGet, "/copies/barcode/LIB-0007", "", "barcode", "LIB-0007"))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.CopyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "7", resp.ID)
	assert.Equal(t, "available", resp.Status)

	rec = httptest.NewRecorder()
	h.GetCopyByBarcode(rec, newRequest(http.MethodGet, "/copies/barcode/", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	mockTracker.AssertExpectations(t)
}
