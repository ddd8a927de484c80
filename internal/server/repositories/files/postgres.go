package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/sharebox/internal/common"
	"github.com/dmitrijs2005/sharebox/internal/dbx"
	"github.com/dmitrijs2005/sharebox/internal/server/models"
)

const fileColumns = `id, owner_email, owner_name, blob_key, file_url, file_name,
		 file_description, content_type, size_bytes, uploaded_at, modified_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(s scanner) (models.File, error) {
	var f models.File
	err := s.Scan(&f.ID, &f.OwnerEmail, &f.OwnerName, &f.BlobKey, &f.FileURL, &f.FileName,
		&f.FileDescription, &f.ContentType, &f.SizeBytes, &f.UploadedAt, &f.ModifiedAt)
	return f, err
}

func (r *PostgresRepository) Create(ctx context.Context, file *models.File) (*models.File, error) {

	query := `INSERT INTO files (` + fileColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		file.ID, file.OwnerEmail, file.OwnerName, file.BlobKey, file.FileURL, file.FileName,
		file.FileDescription, file.ContentType, file.SizeBytes, file.UploadedAt, file.ModifiedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	f := *file
	return &f, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files WHERE id = $1`

	f, err := scanFile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &f, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.File, error) {
	return r.query(ctx, `SELECT `+fileColumns+` FROM files ORDER BY uploaded_at, id`)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, email string) ([]models.File, error) {
	return r.query(ctx, `SELECT `+fileColumns+` FROM files WHERE owner_email = $1 ORDER BY uploaded_at, id`, email)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]models.File, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.File{}
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
