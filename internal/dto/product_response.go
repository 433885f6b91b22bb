package dto

import (
	"github.com/alimikegami/product-catalog-service/internal/domain"
	"github.com/shopspring/decimal"
)

func init() {
	// prices are rendered as JSON numbers, e.g. 3.75 rather than "3.75"
	decimal.MarshalJSONWithoutQuotes = true
}

type PresentationResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProductResponse struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Stock        int64                `json:"stock"`
	Price        decimal.Decimal      `json:"price"`
	Presentation PresentationResponse `json:"presentacion"`
	File         *string              `json:"file"`
}

type FileUploadResponse struct {
	FileName    string `json:"fileName"`
	DownloadURI string `json:"downloadURI"`
	Size        int64  `json:"size"`
}

type ProductCreatedResponse struct {
	Product ProductResponse     `json:"producto"`
	File    *FileUploadResponse `json:"file,omitempty"`
}

func NewProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Stock:       p.Stock,
		Price:       p.Price,
		Presentation: PresentationResponse{
			ID:   p.Presentation.ID,
			Name: p.Presentation.Name,
		},
		File: p.File,
	}
}

func NewProductResponses(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, NewProductResponse(p))
	}
	return res
}
