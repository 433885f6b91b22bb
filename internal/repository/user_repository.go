package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/alimikegami/product-catalog-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type UserRepositoryImpl struct {
	db *sqlx.DB
}

func CreateUserRepository(db *sqlx.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (res domain.User, err error) {
	row := r.db.QueryRowxContext(ctx, "SELECT id, external_id, email, hashed_password, role, created_at, updated_at FROM users WHERE email = $1", email)
	err = row.StructScan(&res)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUserByEmail").Msg("")
		return res, err
	}

	return
}

func (r *UserRepositoryImpl) AddUser(ctx context.Context, data domain.User) (id int64, err error) {
	timestamp := time.Now().UnixMilli()
	data.CreatedAt = timestamp
	data.UpdatedAt = timestamp

	nstmt, err := r.db.PrepareNamedContext(ctx, "INSERT INTO users(external_id, email, hashed_password, role, created_at, updated_at) VALUES (:external_id, :email, :hashed_password, :role, :created_at, :updated_at) RETURNING id")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddUser").Msg("")
		return
	}
	defer nstmt.Close()

	err = nstmt.GetContext(ctx, &id, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddUser").Msg("")
		return
	}

	return id, nil
}
