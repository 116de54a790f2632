package repository

import (
	"context"
	"database/sql"
	"errors"

	"portfolio-service/internal/entity"
)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db}
}

func (r *ProjectRepository) CreateProject(ctx context.Context, in entity.ProjectInput) (*entity.Project, error) {
	query := `INSERT INTO projects (title, description, project_link) VALUES (?, ?, ?)`

	project := &entity.Project{Title: in.Title, Description: in.Description, ProjectLink: in.ProjectLink}
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, in.Title, in.Description, in.ProjectLink)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		project.ID = int(id)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

func (r *ProjectRepository) GetProjects(ctx context.Context) ([]*entity.Project, error) {
	query := `SELECT id, title, description, project_link FROM projects ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []*entity.Project{}
	for rows.Next() {
		project := &entity.Project{}
		if err := rows.Scan(&project.ID, &project.Title, &project.Description, &project.ProjectLink); err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}

func (r *ProjectRepository) GetProjectByID(ctx context.Context, id int) (*entity.Project, error) {
	return getProject(ctx, r.db, id)
}

// UpdateProject overwrites title, description and project_link of an existing project.
func (r *ProjectRepository) UpdateProject(ctx context.Context, id int, in entity.ProjectInput) (*entity.Project, error) {
	query := `UPDATE projects SET title = ?, description = ?, project_link = ? WHERE id = ?`

	var project *entity.Project
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		existing, err := getProject(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, in.Title, in.Description, in.ProjectLink, id); err != nil {
			return err
		}
		existing.Title = in.Title
		existing.Description = in.Description
		existing.ProjectLink = in.ProjectLink
		project = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// DeleteProject removes a project and returns what it held.
func (r *ProjectRepository) DeleteProject(ctx context.Context, id int) (*entity.Project, error) {
	query := `DELETE FROM projects WHERE id = ?`

	var project *entity.Project
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		existing, err := getProject(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return err
		}
		project = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

func (r *ProjectRepository) DeleteAllProjects(ctx context.Context) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM projects`)
		return err
	})
}

func getProject(ctx context.Context, q queryer, id int) (*entity.Project, error) {
	query := `SELECT id, title, description, project_link FROM projects WHERE id = ?`

	project := &entity.Project{}
	err := q.QueryRowContext(ctx, query, id).Scan(&project.ID, &project.Title, &project.Description, &project.ProjectLink)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return project, nil
}
