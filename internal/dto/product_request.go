package dto

import (
	"io"

	"github.com/shopspring/decimal"
)

type PresentationRef struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}

// ProductRequest is the candidate product of a create or full replace. ID is
// never bound from the body; it comes from the path on update.
type ProductRequest struct {
	ID           int64            `json:"-"`
	Name         string           `json:"name" validate:"required,max=255"`
	Description  string           `json:"description"`
	Stock        int64            `json:"stock" validate:"gte=0"`
	Price        decimal.Decimal  `json:"price" validate:"gte=0"`
	Presentation *PresentationRef `json:"presentacion" validate:"required"`
}

// FileUpload is a file accompanying a create request.
type FileUpload struct {
	OriginalName string
	Content      io.Reader
}
