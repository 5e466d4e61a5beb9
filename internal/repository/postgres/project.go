package postgres

import (
	"cipherstudio/internal/domain/project"
	apperrors "cipherstudio/pkg/errors"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

const (
	projectColumns = "id, name, description, files, created_at, last_modified, is_public, user_id"

	// list rows drop file contents server side
	summaryColumns = `id, name, description,
		COALESCE((SELECT jsonb_agg(f - 'content') FROM jsonb_array_elements(files) AS f), '[]'::jsonb),
		created_at, last_modified, is_public, user_id`
)

type ProjectRepository struct {
	db *DB
}

func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) List(ctx context.Context, filter project.ListFilter) ([]*project.Summary, error) {
	query := "SELECT " + summaryColumns + " FROM projects"
	args := []interface{}{}

	if filter.PublicOnly {
		query += " WHERE is_public = TRUE"
	}
	query += " ORDER BY last_modified DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errFailedListProjects(err)
	}
	defer rows.Close()

	summaries := make([]*project.Summary, 0)
	for rows.Next() {
		s := &project.Summary{}
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.Files, &s.CreatedAt, &s.LastModified, &s.IsPublic, &s.UserID,
		); err != nil {
			return nil, errFailedScanProject(err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*project.Project, error) {
	query := "SELECT " + projectColumns + " FROM projects WHERE id = $1"

	p, err := scanProject(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(errProjectNotFound)
		}
		return nil, errFailedGetProject(err)
	}

	return p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Files, p.CreatedAt, p.LastModified, p.IsPublic, p.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.BadRequest(errProjectExists)
		}
		return errFailedCreateProject(err)
	}

	return nil
}

func (r *ProjectRepository) Update(ctx context.Context, id string, update project.ProjectUpdate) (*project.Project, error) {
	query, args := buildUpdateQuery(id, update)

	p, err := scanProject(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(errProjectNotFound)
		}
		return nil, errFailedUpdateProject(err)
	}

	return p, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	query := "DELETE FROM projects WHERE id = $1"
	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteProject(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errProjectNotFound)
	}

	return nil
}

func (r *ProjectRepository) Close(context.Context) error {
	r.db.Close()
	return nil
}

func buildUpdateQuery(id string, update project.ProjectUpdate) (string, []interface{}) {
	args := []interface{}{id, update.LastModified}
	sets := []string{"last_modified = $2"}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Files != nil {
		add("files", *update.Files)
	}
	if update.IsPublic != nil {
		add("is_public", *update.IsPublic)
	}

	query := "UPDATE projects SET " + strings.Join(sets, ", ") +
		" WHERE id = $1 RETURNING " + projectColumns

	return query, args
}

func scanProject(row pgx.Row) (*project.Project, error) {
	p := &project.Project{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Files, &p.CreatedAt, &p.LastModified, &p.IsPublic, &p.UserID,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}
