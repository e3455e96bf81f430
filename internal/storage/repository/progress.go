package repository

import (
	"context"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

// MarkCompleted отмечает курс пройденным одной командой INSERT ... ON CONFLICT.
// inserted равен true, если строка прогресса была создана.
func (s *Storage) MarkCompleted(ctx context.Context, userUID, courseID string) (*models.Progress, bool, error) {
	const op = "storage.MarkCompleted"
	query := `INSERT INTO progress (user_uid, course_id, completed, last_watched)
			  VALUES ($1, $2, TRUE, now())
			  ON CONFLICT (user_uid, course_id) DO UPDATE
			  SET completed = TRUE, last_watched = now()
			  RETURNING id, user_uid, course_id, completed, last_watched, (xmax = 0) AS inserted`
	p := &models.Progress{}
	var inserted bool
	err := s.DB.QueryRowContext(ctx, query, userUID, courseID).
		Scan(&p.ID, &p.UserUID, &p.CourseID, &p.Completed, &p.LastWatched, &inserted)
	if err != nil {
		return nil, false, wrap(op, err)
	}
	return p, inserted, nil
}

// ListProgress возвращает прогресс пользователя вместе с данными курсов.
func (s *Storage) ListProgress(ctx context.Context, userUID string) ([]models.ProgressDetail, error) {
	const op = "storage.ListProgress"
	query := `SELECT p.id, p.completed, p.last_watched,
			         c.id, c.title, c.branch, c.description, c.youtube_url
			  FROM progress p
			  JOIN courses c ON c.id = p.course_id
			  WHERE p.user_uid = $1
			  ORDER BY p.last_watched DESC, p.id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	items := make([]models.ProgressDetail, 0)
	for rows.Next() {
		var d models.ProgressDetail
		if err := rows.Scan(&d.ID, &d.Completed, &d.LastWatched,
			&d.Course.ID, &d.Course.Title, &d.Course.Branch, &d.Course.Description, &d.Course.YoutubeURL); err != nil {
			return nil, wrap(op, err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return items, nil
}

// CountCompleted возвращает количество пройденных курсов пользователя.
func (s *Storage) CountCompleted(ctx context.Context, userUID string) (int, error) {
	const op = "storage.CountCompleted"
	var n int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM progress WHERE user_uid = $1 AND completed`, userUID).Scan(&n)
	if err != nil {
		return 0, wrap(op, err)
	}
	return n, nil
}
