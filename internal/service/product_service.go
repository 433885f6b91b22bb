package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/alimikegami/product-catalog-service/internal/domain"
	"github.com/alimikegami/product-catalog-service/internal/dto"
	"github.com/alimikegami/product-catalog-service/internal/infrastructure/filestore"
	"github.com/alimikegami/product-catalog-service/internal/infrastructure/message-queue/kafka"
	"github.com/alimikegami/product-catalog-service/internal/repository"
	pkgdto "github.com/alimikegami/product-catalog-service/pkg/dto"
	"github.com/alimikegami/product-catalog-service/pkg/errs"
	"github.com/alimikegami/product-catalog-service/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	opListProducts   = "Error retrieving the products"
	opReadProduct    = "Error retrieving the product"
	opPersistProduct = "Error persisting the product"
	opUpdateProduct  = "Error updating the product"
	opDeleteProduct  = "Error deleting the product"
)

type ProductServiceImpl struct {
	repo      repository.ProductRepository
	fileStore filestore.FileStore
	publisher kafka.EventPublisher
}

func CreateProductService(repo repository.ProductRepository, fileStore filestore.FileStore, publisher kafka.EventPublisher) ProductService {
	return &ProductServiceImpl{repo: repo, fileStore: fileStore, publisher: publisher}
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context, filter pkgdto.Filter) (data []dto.ProductResponse, err error) {
	if (filter.Page != nil && *filter.Page < 0) || (filter.Size != nil && *filter.Size < 1) {
		return nil, errs.ErrClient
	}

	if filter.OffsetOverflows() {
		return []dto.ProductResponse{}, nil
	}

	products, err := s.repo.GetProducts(ctx, filter)
	if err != nil {
		return nil, errs.NewStorageError(opListProducts, err)
	}

	return dto.NewProductResponses(products), nil
}

func (s *ProductServiceImpl) GetProductByID(ctx context.Context, id int64) (data dto.ProductResponse, err error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return data, errs.NewStorageError(opReadProduct, err)
	}

	if product.ID == 0 {
		return data, errs.ErrProductNotFound
	}

	return dto.NewProductResponse(product), nil
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, data dto.ProductRequest, file *dto.FileUpload) (res dto.ProductCreatedResponse, err error) {
	data.Name = strings.TrimSpace(data.Name)
	if err = validation.Validate(data); err != nil {
		return res, err
	}

	product := newProduct(data)

	var stored *filestore.StoredFile
	if file != nil {
		saved, err := s.fileStore.Save(ctx, file.OriginalName, file.Content)
		if err != nil {
			return res, err
		}
		stored = &saved
		product.File = &saved.Name
	}

	var created domain.Product
	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.ProductRepository) error {
		id, err := repo.AddProduct(ctx, product)
		if err != nil {
			return err
		}

		created, err = repo.GetProductByID(ctx, id)
		return err
	})
	if err != nil {
		if stored != nil {
			s.removeFile(ctx, stored.Name)
		}
		return res, errs.NewStorageError(opPersistProduct, err)
	}

	res.Product = dto.NewProductResponse(created)
	if stored != nil {
		res.File = &dto.FileUploadResponse{
			FileName:    stored.Name,
			DownloadURI: stored.DownloadURI(),
			Size:        stored.Size,
		}
	}

	s.publish(ctx, dto.EventAddProduct, res.Product)

	return res, nil
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, data dto.ProductRequest) (res dto.ProductResponse, err error) {
	data.Name = strings.TrimSpace(data.Name)
	if err = validation.Validate(data); err != nil {
		return res, err
	}

	product := newProduct(data)
	product.ID = data.ID

	var updated domain.Product
	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.ProductRepository) error {
		if err := repo.UpsertProduct(ctx, product); err != nil {
			return err
		}

		var err error
		updated, err = repo.GetProductByID(ctx, product.ID)
		return err
	})
	if err != nil {
		return res, errs.NewStorageError(opUpdateProduct, err)
	}

	res = dto.NewProductResponse(updated)
	s.publish(ctx, dto.EventUpdateProduct, res)

	return res, nil
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id int64) (err error) {
	var deleted domain.Product
	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.ProductRepository) error {
		var err error
		deleted, err = repo.GetProductByID(ctx, id)
		if err != nil {
			return err
		}

		if deleted.ID == 0 {
			return errs.ErrProductNotFound
		}

		return repo.DeleteProduct(ctx, id)
	})
	if err != nil {
		if errors.Is(err, errs.ErrProductNotFound) {
			return err
		}
		return errs.NewStorageError(opDeleteProduct, err)
	}

	if name := deleted.FileName(); name != "" {
		s.removeFile(ctx, name)
	}

	s.publish(ctx, dto.EventDeleteProduct, dto.NewProductResponse(deleted))

	return nil
}

func (s *ProductServiceImpl) DownloadFile(ctx context.Context, fileCode string) (file afero.File, info os.FileInfo, err error) {
	return s.fileStore.Open(ctx, fileCode)
}

func (s *ProductServiceImpl) SweepOrphanFiles(ctx context.Context, grace time.Duration) (removed int, err error) {
	entries, err := s.fileStore.List(ctx)
	if err != nil {
		return 0, err
	}

	refs, err := s.repo.GetFileReferences(ctx)
	if err != nil {
		return 0, errs.NewStorageError("Error retrieving file references", err)
	}

	referenced := make(map[string]struct{}, len(refs))
	for _, name := range refs {
		referenced[name] = struct{}{}
	}

	cutoff := time.Now().Add(-grace)
	for _, entry := range entries {
		if _, ok := referenced[entry.Name]; ok || entry.ModTime.After(cutoff) {
			continue
		}

		if err := s.fileStore.Delete(ctx, entry.Name); err != nil && !errors.Is(err, errs.ErrFileNotFound) {
			log.Ctx(ctx).Error().Err(err).Str("component", "SweepOrphanFiles").Str("file", entry.Name).Msg("")
			continue
		}
		removed++
	}

	return removed, nil
}

func (s *ProductServiceImpl) removeFile(ctx context.Context, name string) {
	if err := s.fileStore.Delete(ctx, name); err != nil && !errors.Is(err, errs.ErrFileNotFound) {
		log.Ctx(ctx).Error().Err(err).Str("component", "removeFile").Str("file", name).Msg("")
	}
}

// publish reports product events; a broker failure never fails the request.
func (s *ProductServiceImpl) publish(ctx context.Context, eventType string, data dto.ProductResponse) {
	err := s.publisher.Publish(ctx, dto.KafkaMessage{
		EventType: eventType,
		Data:      data,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publish").Str("event_type", eventType).Msg("")
	}
}

func newProduct(data dto.ProductRequest) domain.Product {
	return domain.Product{
		Name:           data.Name,
		Description:    data.Description,
		Stock:          data.Stock,
		Price:          data.Price,
		PresentationID: data.Presentation.ID,
	}
}
