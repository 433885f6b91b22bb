package service

import (
	"context"
	"strings"

	"github.com/alimikegami/product-catalog-service/config"
	"github.com/alimikegami/product-catalog-service/internal/domain"
	"github.com/alimikegami/product-catalog-service/internal/dto"
	"github.com/alimikegami/product-catalog-service/internal/repository"
	"github.com/alimikegami/product-catalog-service/pkg/errs"
	"github.com/alimikegami/product-catalog-service/pkg/utils"
	"github.com/alimikegami/product-catalog-service/pkg/validation"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	repo   repository.UserRepository
	config config.Config
}

func CreateUserService(repo repository.UserRepository, config config.Config) UserService {
	return &UserServiceImpl{repo: repo, config: config}
}

func (s *UserServiceImpl) AddUser(ctx context.Context, data dto.UserRequest) (res dto.UserResponse, err error) {
	data.Email = strings.ToLower(strings.TrimSpace(data.Email))
	if err = validation.Validate(data); err != nil {
		return res, err
	}

	user, err := s.repo.GetUserByEmail(ctx, data.Email)
	if err != nil {
		return res, errs.NewStorageError("Error retrieving the user", err)
	}

	if user.ID != 0 {
		return res, errs.ErrEmailAlreadyUsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddUser").Msg("")
		return res, err
	}

	role := data.Role
	if role == "" {
		role = domain.RoleUser
	}

	userEnt := domain.User{
		Email:          data.Email,
		HashedPassword: string(hash),
		Role:           role,
		ExternalID:     ulid.Make().String(),
	}

	id, err := s.repo.AddUser(ctx, userEnt)
	if err != nil {
		return res, errs.NewStorageError("Error persisting the user", err)
	}

	return dto.UserResponse{
		ID:         id,
		ExternalID: userEnt.ExternalID,
		Email:      userEnt.Email,
		Role:       userEnt.Role,
	}, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, payload dto.LoginRequest) (respPayload dto.LoginResponse, err error) {
	if err = validation.Validate(payload); err != nil {
		return respPayload, err
	}

	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(payload.Email)))
	if err != nil {
		return respPayload, errs.NewStorageError("Error retrieving the user", err)
	}

	if user.ID == 0 {
		return respPayload, errs.ErrAccountNotFound
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(payload.Password))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Login").Msg("")
		return respPayload, errs.ErrInvalidCredentialsEmail
	}

	token, err := utils.CreateJWTToken(user.ID, user.Email, user.Role, user.ExternalID, s.config.JWTConfig.JWTSecret, s.config.JWTConfig.JWTKid)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Login").Msg("")
		return
	}

	respPayload.Token = token
	respPayload.UserID = user.ID

	return
}
