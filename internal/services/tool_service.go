package services

import (
	"context"
	"time"

	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/repositories"

	"github.com/google/uuid"
)

type ToolService interface {
	Create(ctx context.Context, tool *models.Tool) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tool, error)
	Update(ctx context.Context, tool *models.Tool) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Tool, error)

	Checkout(ctx context.Context, toolID uuid.UUID, projectID *uuid.UUID, dueAt *time.Time) (*models.ToolCheckout, error)
	Return(ctx context.Context, toolID uuid.UUID) (*models.Tool, error)
	ListCheckouts(ctx context.Context, toolID uuid.UUID) ([]*models.ToolCheckout, error)
}

type toolService struct {
	toolRepo    repositories.ToolRepository
	projectRepo repositories.ProjectRepository
}

func NewToolService(toolRepo repositories.ToolRepository, projectRepo repositories.ProjectRepository) ToolService {
	return &toolService{toolRepo: toolRepo, projectRepo: projectRepo}
}

func validateTool(t *models.Tool) error {
	if err := common.ValidateRequiredString(t.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateOptionalString(t.Category, "category", common.MaxNameLength); err != nil {
		return err
	}
	if err := common.ValidateOptionalString(t.Location, "location", common.MaxNameLength); err != nil {
		return err
	}
	return common.ValidateOptionalString(t.Notes, "notes", common.MaxNotesLength)
}

func (s *toolService) Create(ctx context.Context, tool *models.Tool) error {
	if err := validateTool(tool); err != nil {
		return err
	}
	if tool.ID == uuid.Nil {
		tool.ID = uuid.New()
	}
	if tool.Status == "" {
		tool.Status = models.ToolAvailable
	}
	if !tool.Status.Valid() {
		return common.NewValidationError("status", "must be a declared tool status")
	}
	return s.toolRepo.Create(ctx, tool)
}

func (s *toolService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tool, error) {
	return s.toolRepo.GetByID(ctx, id)
}

func (s *toolService) Update(ctx context.Context, tool *models.Tool) error {
	if err := validateTool(tool); err != nil {
		return err
	}
	if !tool.Status.Valid() {
		return common.NewValidationError("status", "must be a declared tool status")
	}
	return s.toolRepo.Update(ctx, tool)
}

func (s *toolService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.toolRepo.Delete(ctx, id)
}

func (s *toolService) List(ctx context.Context, limit, offset int) ([]*models.Tool, error) {
	return s.toolRepo.List(ctx, limit, offset)
}

// Checkout loans an available tool out, optionally against a project.
func (s *toolService) Checkout(ctx context.Context, toolID uuid.UUID, projectID *uuid.UUID, dueAt *time.Time) (*models.ToolCheckout, error) {
	tool, err := s.toolRepo.GetByID(ctx, toolID)
	if err != nil {
		return nil, err
	}
	if tool.Status != models.ToolAvailable {
		return nil, common.NewValidationError("status", "tool is not available for checkout")
	}
	if projectID != nil {
		if _, err := s.projectRepo.GetByID(ctx, *projectID); err != nil {
			return nil, err
		}
	}
	checkout := &models.ToolCheckout{
		ID:           uuid.New(),
		ToolID:       toolID,
		ProjectID:    projectID,
		CheckedOutAt: time.Now(),
		DueAt:        dueAt,
	}
	if err := s.toolRepo.AddCheckout(ctx, checkout); err != nil {
		return nil, err
	}
	tool.Status = models.ToolCheckedOut
	if err := s.toolRepo.Update(ctx, tool); err != nil {
		return nil, err
	}
	return checkout, nil
}

// Return closes the open checkout and puts the tool back on the shelf.
func (s *toolService) Return(ctx context.Context, toolID uuid.UUID) (*models.Tool, error) {
	tool, err := s.toolRepo.GetByID(ctx, toolID)
	if err != nil {
		return nil, err
	}
	open, err := s.toolRepo.GetOpenCheckout(ctx, toolID)
	if err != nil {
		return nil, err
	}
	if err := s.toolRepo.CloseCheckout(ctx, open.ID); err != nil {
		return nil, err
	}
	tool.Status = models.ToolAvailable
	if err := s.toolRepo.Update(ctx, tool); err != nil {
		return nil, err
	}
	return tool, nil
}

func (s *toolService) ListCheckouts(ctx context.Context, toolID uuid.UUID) ([]*models.ToolCheckout, error) {
	return s.toolRepo.ListCheckouts(ctx, toolID)
}
