package repository

import (
	"context"

	"github.com/alimikegami/product-catalog-service/internal/domain"
	pkgdto "github.com/alimikegami/product-catalog-service/pkg/dto"
)

type ProductRepository interface {
	// GetProducts returns products ordered by name then id, one page of them
	// when the filter is paged.
	GetProducts(ctx context.Context, filter pkgdto.Filter) (data []domain.Product, err error)
	// GetProductByID returns a zero Product (ID == 0) when no row matches.
	GetProductByID(ctx context.Context, id int64) (data domain.Product, err error)
	AddProduct(ctx context.Context, data domain.Product) (id int64, err error)
	// UpsertProduct writes data under data.ID, inserting the row when absent.
	UpsertProduct(ctx context.Context, data domain.Product) (err error)
	DeleteProduct(ctx context.Context, id int64) (err error)
	CountProducts(ctx context.Context) (count int64, err error)
	GetFileReferences(ctx context.Context) (files []string, err error)
	HandleTrx(ctx context.Context, fn func(ctx context.Context, repo ProductRepository) error) error
}

type PresentationRepository interface {
	GetPresentations(ctx context.Context) (data []domain.Presentation, err error)
}

type UserRepository interface {
	// GetUserByEmail returns a zero User (ID == 0) when no row matches.
	GetUserByEmail(ctx context.Context, email string) (res domain.User, err error)
	AddUser(ctx context.Context, data domain.User) (id int64, err error)
}
