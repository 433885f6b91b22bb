package service

import (
	"context"
	"os"
	"time"

	"github.com/alimikegami/product-catalog-service/internal/dto"
	pkgdto "github.com/alimikegami/product-catalog-service/pkg/dto"
	"github.com/spf13/afero"
)

type ProductService interface {
	GetProducts(ctx context.Context, filter pkgdto.Filter) (data []dto.ProductResponse, err error)
	GetProductByID(ctx context.Context, id int64) (data dto.ProductResponse, err error)
	// AddProduct stores file, when given, before persisting the product.
	AddProduct(ctx context.Context, data dto.ProductRequest, file *dto.FileUpload) (res dto.ProductCreatedResponse, err error)
	// UpdateProduct replaces the product stored under data.ID, creating it when absent.
	UpdateProduct(ctx context.Context, data dto.ProductRequest) (res dto.ProductResponse, err error)
	DeleteProduct(ctx context.Context, id int64) (err error)
	// DownloadFile opens a stored upload; the caller closes the file.
	DownloadFile(ctx context.Context, fileCode string) (file afero.File, info os.FileInfo, err error)
	SeedSampleData(ctx context.Context) (seeded int, err error)
	// SweepOrphanFiles removes unreferenced uploads last modified before now minus grace.
	SweepOrphanFiles(ctx context.Context, grace time.Duration) (removed int, err error)
}

type PresentationService interface {
	GetPresentations(ctx context.Context) (data []dto.PresentationResponse, err error)
}

type UserService interface {
	AddUser(ctx context.Context, data dto.UserRequest) (res dto.UserResponse, err error)
	Login(ctx context.Context, payload dto.LoginRequest) (respPayload dto.LoginResponse, err error)
}
