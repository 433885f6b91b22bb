package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alimikegami/product-catalog-service/internal/domain"
	pkgdto "github.com/alimikegami/product-catalog-service/pkg/dto"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const selectProducts = `SELECT p.id, p.name, p.description, p.stock, p.price, p.presentation_id, p.file,
pr.id AS "presentation.id", pr.name AS "presentation.name"
FROM products p JOIN presentations pr ON pr.id = p.presentation_id`

// names compare byte-wise regardless of the database collation
const orderByName = ` ORDER BY p.name COLLATE "C", p.id`

type ProductRepositoryImpl struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func CreateProductRepository(db *sqlx.DB) ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

type queryer interface {
	sqlx.ExtContext
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

func (r *ProductRepositoryImpl) conn() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *ProductRepositoryImpl) GetProducts(ctx context.Context, filter pkgdto.Filter) (data []domain.Product, err error) {
	data = []domain.Product{}

	if !filter.IsPaged() {
		err = sqlx.SelectContext(ctx, r.conn(), &data, selectProducts+orderByName)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
			return nil, err
		}
		return data, nil
	}

	if filter.OffsetOverflows() {
		return data, nil
	}

	nstmt, err := r.conn().PrepareNamedContext(ctx, selectProducts+orderByName+" LIMIT :limit OFFSET :offset")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return nil, err
	}
	defer nstmt.Close()

	args := map[string]interface{}{
		"limit":  filter.Limit(),
		"offset": filter.Offset(),
	}

	err = nstmt.SelectContext(ctx, &data, args)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *ProductRepositoryImpl) GetProductByID(ctx context.Context, id int64) (data domain.Product, err error) {
	row := r.conn().QueryRowxContext(ctx, selectProducts+" WHERE p.id = $1", id)
	err = row.StructScan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return data, err
	}

	return
}

func (r *ProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id int64, err error) {
	nstmt, err := r.conn().PrepareNamedContext(ctx, "INSERT INTO products(name, description, stock, price, presentation_id, file) VALUES (:name, :description, :stock, :price, :presentation_id, :file) RETURNING id")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}
	defer nstmt.Close()

	err = nstmt.GetContext(ctx, &id, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	return id, nil
}

func (r *ProductRepositoryImpl) UpsertProduct(ctx context.Context, data domain.Product) (err error) {
	// file is never overwritten by a replace; it only changes through upload
	nstmt, err := r.conn().PrepareNamedContext(ctx, `INSERT INTO products(id, name, description, stock, price, presentation_id, file)
VALUES (:id, :name, :description, :stock, :price, :presentation_id, NULL)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description, stock = EXCLUDED.stock,
price = EXCLUDED.price, presentation_id = EXCLUDED.presentation_id
RETURNING (xmax = 0) AS inserted`)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpsertProduct").Msg("")
		return
	}
	defer nstmt.Close()

	var inserted bool
	err = nstmt.GetContext(ctx, &inserted, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpsertProduct").Msg("")
		return
	}

	if inserted {
		// keep the id sequence ahead of explicitly inserted ids
		_, err = r.conn().ExecContext(ctx, "SELECT setval(pg_get_serial_sequence('products', 'id'), GREATEST((SELECT MAX(id) FROM products), 1))")
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "UpsertProduct").Msg("")
			return
		}
	}

	return nil
}

func (r *ProductRepositoryImpl) DeleteProduct(ctx context.Context, id int64) (err error) {
	_, err = r.conn().ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return
	}

	return nil
}

func (r *ProductRepositoryImpl) CountProducts(ctx context.Context) (count int64, err error) {
	err = sqlx.GetContext(ctx, r.conn(), &count, "SELECT COUNT(id) FROM products")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CountProducts").Msg("")
		return 0, err
	}

	return
}

func (r *ProductRepositoryImpl) GetFileReferences(ctx context.Context) (files []string, err error) {
	files = []string{}
	err = sqlx.SelectContext(ctx, r.conn(), &files, "SELECT file FROM products WHERE file IS NOT NULL")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetFileReferences").Msg("")
		return nil, err
	}

	return
}

func (r *ProductRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo ProductRepository) error) (err error) {
	if r.tx != nil {
		return fn(ctx, r)
	}

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "HandleTrx").Msg("")
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	txRepo := &ProductRepositoryImpl{
		db: r.db,
		tx: tx,
	}

	err = fn(ctx, txRepo)

	return err
}
