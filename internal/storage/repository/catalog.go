package repository

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

const courseColumns = `id, title, branch, youtube_url, description, created_at`

func scanCourse(row rowScanner) (*models.Course, error) {
	c := &models.Course{}
	if err := row.Scan(&c.ID, &c.Title, &c.Branch, &c.YoutubeURL, &c.Description, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

// ListBranches возвращает все ветки по имени.
func (s *Storage) ListBranches(ctx context.Context) ([]models.Branch, error) {
	const op = "storage.ListBranches"
	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, description, created_at FROM branches ORDER BY name`)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	branches := make([]models.Branch, 0)
	for rows.Next() {
		var b models.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt); err != nil {
			return nil, wrap(op, err)
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return branches, nil
}

// GetBranch возвращает ветку по идентификатору.
func (s *Storage) GetBranch(ctx context.Context, id string) (*models.Branch, error) {
	const op = "storage.GetBranch"
	var b models.Branch
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, name, description, created_at FROM branches WHERE id = $1`, id).
		Scan(&b.ID, &b.Name, &b.Description, &b.CreatedAt)
	if err != nil {
		return nil, wrap(op, err)
	}
	return &b, nil
}

func (s *Storage) queryCourses(ctx context.Context, op, query string, args ...any) ([]models.Course, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		courses = append(courses, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return courses, nil
}

// ListCoursesByBranch возвращает курсы ветки; имя сравнивается с учётом регистра.
func (s *Storage) ListCoursesByBranch(ctx context.Context, branch string) ([]models.Course, error) {
	const op = "storage.ListCoursesByBranch"
	return s.queryCourses(ctx, op,
		`SELECT `+courseColumns+` FROM courses WHERE branch = $1 ORDER BY created_at, id`, branch)
}

// ListCourses возвращает все курсы.
func (s *Storage) ListCourses(ctx context.Context) ([]models.Course, error) {
	const op = "storage.ListCourses"
	return s.queryCourses(ctx, op,
		`SELECT `+courseColumns+` FROM courses ORDER BY branch, created_at, id`)
}

// GetCourse возвращает курс по идентификатору.
func (s *Storage) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	const op = "storage.GetCourse"
	c, err := scanCourse(s.DB.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
	if err != nil {
		return nil, wrap(op, err)
	}
	return c, nil
}

// CreateCourse сохраняет новый курс.
func (s *Storage) CreateCourse(ctx context.Context, c models.NewCourse) (*models.Course, error) {
	const op = "storage.CreateCourse"
	query := `INSERT INTO courses (title, branch, youtube_url, description)
			  VALUES ($1, $2, $3, $4)
			  RETURNING ` + courseColumns
	course, err := scanCourse(s.DB.QueryRowContext(ctx, query, c.Title, c.Branch, c.YoutubeURL, c.Description))
	if err != nil {
		return nil, wrap(op, err)
	}
	return course, nil
}

// DeleteCourse удаляет курс и возвращает удалённую запись.
func (s *Storage) DeleteCourse(ctx context.Context, id string) (*models.Course, error) {
	const op = "storage.DeleteCourse"
	course, err := scanCourse(s.DB.QueryRowContext(ctx,
		`DELETE FROM courses WHERE id = $1 RETURNING `+courseColumns, id))
	if err != nil {
		return nil, wrap(op, err)
	}
	return course, nil
}

// DeleteAllCourses удаляет все курсы и возвращает их количество.
func (s *Storage) DeleteAllCourses(ctx context.Context) (int64, error) {
	const op = "storage.DeleteAllCourses"
	res, err := s.DB.ExecContext(ctx, `DELETE FROM courses`)
	if err != nil {
		return 0, wrap(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrap(op, err)
	}
	return n, nil
}
