package service

import (
	"context"

	"github.com/alimikegami/product-catalog-service/internal/dto"
	"github.com/alimikegami/product-catalog-service/internal/repository"
	"github.com/alimikegami/product-catalog-service/pkg/errs"
)

type PresentationServiceImpl struct {
	repo repository.PresentationRepository
}

func CreatePresentationService(repo repository.PresentationRepository) PresentationService {
	return &PresentationServiceImpl{repo: repo}
}

func (s *PresentationServiceImpl) GetPresentations(ctx context.Context) (data []dto.PresentationResponse, err error) {
	presentations, err := s.repo.GetPresentations(ctx)
	if err != nil {
		return nil, errs.NewStorageError("Error retrieving the presentations", err)
	}

	data = make([]dto.PresentationResponse, 0, len(presentations))
	for _, p := range presentations {
		data = append(data, dto.PresentationResponse{ID: p.ID, Name: p.Name})
	}

	return data, nil
}
