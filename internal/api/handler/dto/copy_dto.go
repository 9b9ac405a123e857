package dto

import (
	"library-lending/internal/domain/bookcopy"
	"time"
)

type CopyResponse struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	Barcode   string    `json:"barcode"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewCopyResponse(c *bookcopy.BookCopy) CopyResponse {
	if c == nil {
		return CopyResponse{}
	}
	return CopyResponse{
		ID:        formatID(c.ID),
		BookID:    formatID(c.BookID),
		Barcode:   c.Barcode,
		Status:    string(c.Status),
		UpdatedAt: c.UpdatedAt,
	}
}
