package repository

import (
	"context"

	"github.com/alimikegami/product-catalog-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type PresentationRepositoryImpl struct {
	db *sqlx.DB
}

func CreatePresentationRepository(db *sqlx.DB) PresentationRepository {
	return &PresentationRepositoryImpl{db: db}
}

func (r *PresentationRepositoryImpl) GetPresentations(ctx context.Context) (data []domain.Presentation, err error) {
	data = []domain.Presentation{}
	err = r.db.SelectContext(ctx, &data, "SELECT id, name FROM presentations ORDER BY id")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetPresentations").Msg("")
		return nil, err
	}

	return data, nil
}
