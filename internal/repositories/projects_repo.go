package repositories

import (
	"context"
	"errors"

	"hidecraft/internal/common"
	"hidecraft/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Project, error)
	ListByStatus(ctx context.Context, status models.ProjectStatus, limit, offset int) ([]*models.Project, error)
	AddComponent(ctx context.Context, component *models.ProjectComponent) error
	ListComponents(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectComponent, error)
	DeleteComponent(ctx context.Context, id uuid.UUID) error
}

type projectsRepo struct {
	db Database
}

func NewProjectRepository(db Database) ProjectRepository {
	return &projectsRepo{db: db}
}

const projectColumns = `id, customer_id, pattern_id, name, status, start_date, due_date, completed_at, notes, created_at, updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	p := &models.Project{}
	err := row.Scan(&p.ID, &p.CustomerID, &p.PatternID, &p.Name, &p.Status, &p.StartDate, &p.DueDate, &p.CompletedAt, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *projectsRepo) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (id, customer_id, pattern_id, name, status, start_date, due_date, completed_at, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, project.ID, project.CustomerID, project.PatternID, project.Name, project.Status, project.StartDate, project.DueDate, project.CompletedAt, project.Notes)
	return err
}

func (r *projectsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	p, err := scanProject(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewNotFoundError("project", id.String())
		}
		return nil, err
	}
	return p, nil
}

func (r *projectsRepo) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects
		SET customer_id = $1, pattern_id = $2, name = $3, status = $4, start_date = $5, due_date = $6, completed_at = $7, notes = $8, updated_at = NOW()
		WHERE id = $9
	`
	tag, err := r.db.Exec(ctx, query, project.CustomerID, project.PatternID, project.Name, project.Status, project.StartDate, project.DueDate, project.CompletedAt, project.Notes, project.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("project", project.ID.String())
	}
	return nil
}

func (r *projectsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM projects WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("project", id.String())
	}
	return nil
}

func (r *projectsRepo) List(ctx context.Context, limit, offset int) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}

func (r *projectsRepo) ListByStatus(ctx context.Context, status models.ProjectStatus, limit, offset int) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}

func collectProjects(rows pgx.Rows) ([]*models.Project, error) {
	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *projectsRepo) AddComponent(ctx context.Context, component *models.ProjectComponent) error {
	query := `
		INSERT INTO project_components (id, project_id, name, material_id, quantity, unit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, component.ID, component.ProjectID, component.Name, component.MaterialID, component.Quantity, component.Unit)
	return err
}

func (r *projectsRepo) ListComponents(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectComponent, error) {
	query := `
		SELECT id, project_id, name, material_id, quantity, unit, created_at
		FROM project_components
		WHERE project_id = $1
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var components []*models.ProjectComponent
	for rows.Next() {
		c := &models.ProjectComponent{}
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Name, &c.MaterialID, &c.Quantity, &c.Unit, &c.CreatedAt); err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, rows.Err()
}

func (r *projectsRepo) DeleteComponent(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM project_components WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewNotFoundError("project component", id.String())
	}
	return nil
}
