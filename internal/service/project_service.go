package service

import (
	"context"
	"errors"

	"portfolio-service/internal/entity"
)

type ProjectRepository interface {
	CreateProject(ctx context.Context, in entity.ProjectInput) (*entity.Project, error)
	GetProjects(ctx context.Context) ([]*entity.Project, error)
	GetProjectByID(ctx context.Context, id int) (*entity.Project, error)
	UpdateProject(ctx context.Context, id int, in entity.ProjectInput) (*entity.Project, error)
	DeleteProject(ctx context.Context, id int) (*entity.Project, error)
	DeleteAllProjects(ctx context.Context) error
}

// ProjectService provides portfolio project operations.
type ProjectService struct {
	repo   ProjectRepository
	events changeNotifier
}

// NewProjectService creates a new instance of ProjectService. pub may be nil.
func NewProjectService(repo ProjectRepository, pub EventPublisher) *ProjectService {
	return &ProjectService{repo: repo, events: newChangeNotifier("project", pub)}
}

func (s *ProjectService) CreateProject(ctx context.Context, in entity.ProjectInput) (*entity.Project, error) {
	project, err := s.repo.CreateProject(ctx, in)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating project")
		return nil, err
	}

	s.events.notify(ctx, "created", project.ID, project)
	return project, nil
}

func (s *ProjectService) GetProjects(ctx context.Context) ([]*entity.Project, error) {
	projects, err := s.repo.GetProjects(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting projects")
		return nil, err
	}
	return projects, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id int) (*entity.Project, error) {
	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		logUnexpected(err, "Error getting project by ID %d", id)
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, id int, in entity.ProjectInput) (*entity.Project, error) {
	project, err := s.repo.UpdateProject(ctx, id, in)
	if err != nil {
		logUnexpected(err, "Error updating project %d", id)
		return nil, err
	}

	s.events.notify(ctx, "updated", project.ID, project)
	return project, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id int) (*entity.Project, error) {
	project, err := s.repo.DeleteProject(ctx, id)
	if err != nil {
		logUnexpected(err, "Error deleting project %d", id)
		return nil, err
	}

	s.events.notify(ctx, "deleted", project.ID, project)
	return project, nil
}

func (s *ProjectService) DeleteAllProjects(ctx context.Context) error {
	if err := s.repo.DeleteAllProjects(ctx); err != nil {
		logger.Error().Err(err).Msg("Error deleting all projects")
		return err
	}

	s.events.notify(ctx, "cleared", 0, nil)
	return nil
}

// logUnexpected logs everything except a missing row, which callers report as 404.
func logUnexpected(err error, format string, args ...interface{}) {
	if errors.Is(err, entity.ErrNotFound) {
		return
	}
	logger.Error().Err(err).Msgf(format, args...)
}
