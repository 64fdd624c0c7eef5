package services

import (
	"context"
	"time"

	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/repositories"

	"github.com/google/uuid"
)

// projectTransitions defines the allowed status moves. Completed and
// cancelled are terminal.
var projectTransitions = map[models.ProjectStatus][]models.ProjectStatus{
	models.ProjectPlanned:    {models.ProjectInProgress, models.ProjectCancelled},
	models.ProjectInProgress: {models.ProjectOnHold, models.ProjectCompleted, models.ProjectCancelled},
	models.ProjectOnHold:     {models.ProjectInProgress, models.ProjectCancelled},
}

type ProjectService interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Project, error)
	ListByStatus(ctx context.Context, status models.ProjectStatus, limit, offset int) ([]*models.Project, error)
	Transition(ctx context.Context, id uuid.UUID, next models.ProjectStatus) (*models.Project, error)

	AddComponent(ctx context.Context, component *models.ProjectComponent) error
	ListComponents(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectComponent, error)
	DeleteComponent(ctx context.Context, id uuid.UUID) error
}

type projectService struct {
	projectRepo  repositories.ProjectRepository
	patternRepo  repositories.PatternRepository
	customerRepo repositories.CustomerRepository
	materialRepo repositories.MaterialRepository
}

func NewProjectService(projectRepo repositories.ProjectRepository, patternRepo repositories.PatternRepository, customerRepo repositories.CustomerRepository, materialRepo repositories.MaterialRepository) ProjectService {
	return &projectService{
		projectRepo:  projectRepo,
		patternRepo:  patternRepo,
		customerRepo: customerRepo,
		materialRepo: materialRepo,
	}
}

func (s *projectService) validateProject(ctx context.Context, p *models.Project) error {
	if err := common.ValidateRequiredString(p.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateOptionalString(p.Notes, "notes", common.MaxNotesLength); err != nil {
		return err
	}
	if p.CustomerID != nil {
		if _, err := s.customerRepo.GetByID(ctx, *p.CustomerID); err != nil {
			return err
		}
	}
	if p.PatternID != nil {
		if _, err := s.patternRepo.GetByID(ctx, *p.PatternID); err != nil {
			return err
		}
	}
	if p.StartDate != nil && p.DueDate != nil && p.DueDate.Before(*p.StartDate) {
		return common.NewValidationError("due_date", "must not precede the start date")
	}
	return nil
}

func (s *projectService) Create(ctx context.Context, project *models.Project) error {
	if err := s.validateProject(ctx, project); err != nil {
		return err
	}
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.Status == "" {
		project.Status = models.ProjectPlanned
	}
	if !project.Status.Valid() {
		return common.NewValidationError("status", "must be a declared project status")
	}
	return s.projectRepo.Create(ctx, project)
}

func (s *projectService) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

// Update persists field changes. Status moves go through Transition so the
// lifecycle rules hold.
func (s *projectService) Update(ctx context.Context, project *models.Project) error {
	if err := s.validateProject(ctx, project); err != nil {
		return err
	}
	existing, err := s.projectRepo.GetByID(ctx, project.ID)
	if err != nil {
		return err
	}
	project.Status = existing.Status
	project.CompletedAt = existing.CompletedAt
	return s.projectRepo.Update(ctx, project)
}

func (s *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.projectRepo.Delete(ctx, id)
}

func (s *projectService) List(ctx context.Context, limit, offset int) ([]*models.Project, error) {
	return s.projectRepo.List(ctx, limit, offset)
}

func (s *projectService) ListByStatus(ctx context.Context, status models.ProjectStatus, limit, offset int) ([]*models.Project, error) {
	if !status.Valid() {
		return nil, common.NewValidationError("status", "must be a declared project status")
	}
	return s.projectRepo.ListByStatus(ctx, status, limit, offset)
}

func (s *projectService) Transition(ctx context.Context, id uuid.UUID, next models.ProjectStatus) (*models.Project, error) {
	if !next.Valid() {
		return nil, common.NewValidationError("status", "must be a declared project status")
	}
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.Status == next {
		return project, nil
	}
	allowed := false
	for _, to := range projectTransitions[project.Status] {
		if to == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, common.NewValidationError("status", "transition from "+string(project.Status)+" to "+string(next)+" is not allowed")
	}
	project.Status = next
	if next == models.ProjectCompleted {
		now := time.Now()
		project.CompletedAt = &now
	}
	if next == models.ProjectInProgress && project.StartDate == nil {
		now := time.Now()
		project.StartDate = &now
	}
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) AddComponent(ctx context.Context, component *models.ProjectComponent) error {
	if err := common.ValidateRequiredString(component.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidatePositiveDecimal(component.Quantity, "quantity"); err != nil {
		return err
	}
	if !component.Unit.Valid() {
		return common.NewValidationError("unit", "must be a declared measurement unit")
	}
	if _, err := s.projectRepo.GetByID(ctx, component.ProjectID); err != nil {
		return err
	}
	if component.MaterialID != nil {
		if _, err := s.materialRepo.GetByID(ctx, *component.MaterialID); err != nil {
			return err
		}
	}
	if component.ID == uuid.Nil {
		component.ID = uuid.New()
	}
	return s.projectRepo.AddComponent(ctx, component)
}

func (s *projectService) ListComponents(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectComponent, error) {
	return s.projectRepo.ListComponents(ctx, projectID)
}

func (s *projectService) DeleteComponent(ctx context.Context, id uuid.UUID) error {
	return s.projectRepo.DeleteComponent(ctx, id)
}
