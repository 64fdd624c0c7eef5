package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/repositories"

	"github.com/google/uuid"
)

const patternURLExpiry = 15 * time.Minute

type PatternService interface {
	Create(ctx context.Context, pattern *models.Pattern) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Pattern, error)
	Update(ctx context.Context, pattern *models.Pattern) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Pattern, error)

	UploadFile(ctx context.Context, id uuid.UUID, filename, contentType string, reader io.Reader, size int64) (*models.Pattern, error)
	FileURL(ctx context.Context, id uuid.UUID) (string, error)
}

type patternService struct {
	patternRepo repositories.PatternRepository
	storage     StorageService
	bucket      string
}

func NewPatternService(patternRepo repositories.PatternRepository, storage StorageService, bucket string) PatternService {
	return &patternService{
		patternRepo: patternRepo,
		storage:     storage,
		bucket:      bucket,
	}
}

func validatePattern(p *models.Pattern) error {
	if err := common.ValidateRequiredString(p.Name, "name"); err != nil {
		return err
	}
	if !p.SkillLevel.Valid() {
		return common.NewValidationError("skill_level", "must be one of: beginner, intermediate, advanced, master")
	}
	if p.PieceCount != nil && *p.PieceCount <= 0 {
		return common.NewValidationError("piece_count", "must be positive")
	}
	return common.ValidateOptionalString(p.Description, "description", common.MaxNotesLength)
}

func (s *patternService) Create(ctx context.Context, pattern *models.Pattern) error {
	if err := validatePattern(pattern); err != nil {
		return err
	}
	if pattern.ID == uuid.Nil {
		pattern.ID = uuid.New()
	}
	// Files arrive through UploadFile, never on create.
	pattern.FileKey = nil
	return s.patternRepo.Create(ctx, pattern)
}

func (s *patternService) GetByID(ctx context.Context, id uuid.UUID) (*models.Pattern, error) {
	return s.patternRepo.GetByID(ctx, id)
}

func (s *patternService) Update(ctx context.Context, pattern *models.Pattern) error {
	if err := validatePattern(pattern); err != nil {
		return err
	}
	existing, err := s.patternRepo.GetByID(ctx, pattern.ID)
	if err != nil {
		return err
	}
	pattern.FileKey = existing.FileKey
	return s.patternRepo.Update(ctx, pattern)
}

func (s *patternService) Delete(ctx context.Context, id uuid.UUID) error {
	pattern, err := s.patternRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.patternRepo.Delete(ctx, id); err != nil {
		return err
	}
	if pattern.FileKey != nil {
		// The row is gone either way; a stray object is harmless.
		_ = s.storage.Delete(ctx, s.bucket, *pattern.FileKey)
	}
	return nil
}

func (s *patternService) List(ctx context.Context, limit, offset int) ([]*models.Pattern, error) {
	return s.patternRepo.List(ctx, limit, offset)
}

func (s *patternService) UploadFile(ctx context.Context, id uuid.UUID, filename, contentType string, reader io.Reader, size int64) (*models.Pattern, error) {
	if filename == "" {
		return nil, common.NewValidationError("filename", "is required")
	}
	pattern, err := s.patternRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("patterns/%s/%s", id, filename)
	if err := s.storage.Upload(ctx, s.bucket, key, contentType, reader, size); err != nil {
		return nil, err
	}
	old := pattern.FileKey
	pattern.FileKey = &key
	if err := s.patternRepo.Update(ctx, pattern); err != nil {
		return nil, err
	}
	if old != nil && *old != key {
		_ = s.storage.Delete(ctx, s.bucket, *old)
	}
	return pattern, nil
}

func (s *patternService) FileURL(ctx context.Context, id uuid.UUID) (string, error) {
	pattern, err := s.patternRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if pattern.FileKey == nil {
		return "", common.NewNotFoundError("pattern file", id.String())
	}
	return s.storage.GetPresignedURL(ctx, s.bucket, *pattern.FileKey, patternURLExpiry)
}
