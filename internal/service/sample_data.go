package service

import (
	"context"

	"github.com/alimikegami/product-catalog-service/internal/domain"
	"github.com/alimikegami/product-catalog-service/internal/repository"
	"github.com/alimikegami/product-catalog-service/pkg/errs"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	presentationUnidad int64 = 1
	presentationDocena int64 = 2
)

var sampleProducts = []domain.Product{
	{Name: "Tijeras", Description: "Con punta redonda", Stock: 10, Price: decimal.RequireFromString("3.75"), PresentationID: presentationUnidad},
	{Name: "Sobres", Description: "De color rosa", Stock: 36, Price: decimal.RequireFromString("0.75"), PresentationID: presentationDocena},
	{Name: "Bolígrafo", Description: "Disponibles en varios colores", Stock: 143, Price: decimal.RequireFromString("1.25"), PresentationID: presentationUnidad},
	{Name: "Post-it", Description: "Packete de varios colores", Stock: 32, Price: decimal.NewFromInt(8), PresentationID: presentationUnidad},
	{Name: "Carpesano", Description: "De color blanco. No, no tenemos de otro color", Stock: 14, Price: decimal.NewFromInt(8), PresentationID: presentationUnidad},
	{Name: "Recambio hojas blancas", Description: "Sin líneas ni cuadraos, cari", Stock: 9, Price: decimal.NewFromInt(3), PresentationID: presentationDocena},
	{Name: "Lápices HB", Description: "De dureza media", Stock: 6, Price: decimal.NewFromInt(2), PresentationID: presentationDocena},
	{Name: "Subrayador", Description: "Disponibles en diferentes colores", Stock: 27, Price: decimal.RequireFromString("1.5"), PresentationID: presentationUnidad},
	{Name: "Goma de miga de pan", Description: "Moldeable. Especial para dibujo", Stock: 8, Price: decimal.NewFromInt(4), PresentationID: presentationUnidad},
	{Name: "Goma", Description: "Goma de borrar Milán", Stock: 64, Price: decimal.RequireFromString("0.75"), PresentationID: presentationDocena},
	{Name: "Estuche chachipiruli", Description: "Con forma de animalitos", Stock: 13, Price: decimal.RequireFromString("17.5"), PresentationID: presentationUnidad},
}

// SeedSampleData inserts the sample catalog when no product exists yet.
func (s *ProductServiceImpl) SeedSampleData(ctx context.Context) (seeded int, err error) {
	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.ProductRepository) error {
		count, err := repo.CountProducts(ctx)
		if err != nil {
			return err
		}

		if count > 0 {
			return nil
		}

		for _, p := range sampleProducts {
			if _, err := repo.AddProduct(ctx, p); err != nil {
				return err
			}
			seeded++
		}

		return nil
	})
	if err != nil {
		return 0, errs.NewStorageError("Error loading sample data", err)
	}

	if seeded > 0 {
		log.Ctx(ctx).Info().Str("component", "SeedSampleData").Int("products", seeded).Msg("sample data loaded")
	}

	return seeded, nil
}
