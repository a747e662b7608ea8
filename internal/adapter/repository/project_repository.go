package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/projectflow/internal/domain/entities"
	"github.com/johnquangdev/projectflow/internal/domain/repositories"
)

// projectRepository implements the ProjectRepository interface
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) repositories.ProjectRepository {
	return &projectRepository{db: db}
}

// Create inserts the project and its owner membership atomically
func (r *projectRepository) Create(ctx context.Context, project *entities.Project, owner *entities.ProjectMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		if owner == nil {
			return nil
		}
		if err := tx.Create(owner).Error; err != nil {
			return fmt.Errorf("failed to create project owner: %w", err)
		}
		return nil
	})
}

// FindByID retrieves a project by its ID
func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	var project entities.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// IsMember checks whether the user created or belongs to the project
func (r *projectRepository) IsMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Project{}).
		Where("id = ?", projectID).
		Where("created_by = ? OR EXISTS (SELECT 1 FROM project_members pm WHERE pm.project_id = projects.id AND pm.user_id = ?)", userID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListForUser retrieves the projects a user can access
func (r *projectRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Project, error) {
	var projects []*entities.Project
	err := r.db.WithContext(ctx).
		Where("created_by = ? OR id IN (SELECT project_id FROM project_members WHERE user_id = ?)", userID, userID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}
