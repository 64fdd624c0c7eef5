package repositories

import (
	"context"
	"errors"

	"hidecraft/internal/common"
	"hidecraft/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PatternRepository interface {
	Create(ctx context.Context, pattern *models.Pattern) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Pattern, error)
	Update(ctx context.Context, pattern *models.Pattern) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Pattern, error)
}

type patternsRepo struct {
	db Database
}

func NewPatternRepository(db Database) PatternRepository {
	return &patternsRepo{db: db}
}

func (r *patternsRepo) Create(ctx context.Context, pattern *models.Pattern) error {
	query := `
		INSERT INTO patterns (id, name, skill_level, piece_count, file_key, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, pattern.ID, pattern.Name, pattern.SkillLevel, pattern.PieceCount, pattern.FileKey, pattern.Description)
	return err
}

func (r *patternsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Pattern, error) {
	p := &models.Pattern{}
	query := `
		SELECT id, name, skill_level, piece_count, file_key, description, created_at, updated_at
		FROM patterns
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.SkillLevel, &p.PieceCount, &p.FileKey, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("pattern", id.String())
		}
		return nil, err
	}
	return p, nil
}

func (r *patternsRepo) Update(ctx context.Context, pattern *models.Pattern) error {
	query := `
		UPDATE patterns
		SET name = $1, skill_level = $2, piece_count = $3, file_key = $4, description = $5, updated_at = NOW()
		WHERE id = $6
	`
	tag, err := r.db.Exec(ctx, query, pattern.Name, pattern.SkillLevel, pattern.PieceCount, pattern.FileKey, pattern.Description, pattern.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("pattern", pattern.ID.String())
	}
	return nil
}

func (r *patternsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM patterns WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("pattern", id.String())
	}
	return nil
}

func (r *patternsRepo) List(ctx context.Context, limit, offset int) ([]*models.Pattern, error) {
	query := `
		SELECT id, name, skill_level, piece_count, file_key, description, created_at, updated_at
		FROM patterns
		ORDER BY name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patterns []*models.Pattern
	for rows.Next() {
		p := &models.Pattern{}
		if err := rows.Scan(&p.ID, &p.Name, &p.SkillLevel, &p.PieceCount, &p.FileKey, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}
