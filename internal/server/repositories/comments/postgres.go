package comments

import (
	"context"

	"github.com/commently/commently/internal/common"
	"github.com/commently/commently/internal/dbx"
	"github.com/commently/commently/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {

	query :=
		`INSERT INTO comments (id, name, content, title, user_id, cpa_id)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at
		 `

	comment.ID = uuid.NewString()

	err := r.db.QueryRowContext(ctx, query,
		comment.ID, comment.Name, comment.Content, comment.Title, comment.UserID, comment.CpaID).
		Scan(&comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		return nil, dbx.MapError(err)
	}

	return comment, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query :=
		`SELECT id, name, content, title, user_id, cpa_id, created_at, updated_at FROM comments
		 WHERE id = $1
		 `

	comment := &models.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.Name, &comment.Content, &comment.Title,
		&comment.UserID, &comment.CpaID, &comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		return nil, dbx.MapError(err)
	}

	return comment, nil
}

func (r *PostgresRepository) ListByCpaID(ctx context.Context, cpaID string) ([]*models.Comment, error) {
	query :=
		`SELECT id, name, content, title, user_id, cpa_id, created_at, updated_at FROM comments
		 WHERE cpa_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, cpaID)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	result := []*models.Comment{}
	for rows.Next() {
		comment := &models.Comment{}
		if err := rows.Scan(
			&comment.ID, &comment.Name, &comment.Content, &comment.Title,
			&comment.UserID, &comment.CpaID, &comment.CreatedAt, &comment.UpdatedAt); err != nil {
			return nil, dbx.MapError(err)
		}
		result = append(result, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query :=
		`UPDATE comments
		 SET name = $2, content = $3, title = $4, cpa_id = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		comment.ID, comment.Name, comment.Content, comment.Title, comment.CpaID).
		Scan(&comment.UpdatedAt)

	if err != nil {
		return nil, dbx.MapError(err)
	}

	return comment, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM comments WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return dbx.MapError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return dbx.MapError(err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
