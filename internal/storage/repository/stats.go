package repository

import (
	"context"
	"database/sql"
	"math"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

func (s *Storage) groupCounts(ctx context.Context, op, query string) ([]models.GroupCount, error) {
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	groups := make([]models.GroupCount, 0)
	for rows.Next() {
		var key sql.NullString
		var g models.GroupCount
		if err := rows.Scan(&key, &g.Count); err != nil {
			return nil, wrap(op, err)
		}
		g.ID = stringPtr(key)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return groups, nil
}

// AdminStats пересчитывает агрегаты панели администратора.
func (s *Storage) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	const op = "storage.AdminStats"
	var (
		st  models.AdminStats
		err error
	)

	if st.UsersByRole, err = s.groupCounts(ctx, op,
		`SELECT role, COUNT(*) FROM users GROUP BY role ORDER BY role`); err != nil {
		return nil, err
	}
	if st.UsersByBranch, err = s.groupCounts(ctx, op,
		`SELECT selected_branch, COUNT(*) FROM users GROUP BY selected_branch ORDER BY selected_branch NULLS FIRST`); err != nil {
		return nil, err
	}
	if st.CoursesByBranch, err = s.groupCounts(ctx, op,
		`SELECT branch, COUNT(*) FROM courses GROUP BY branch ORDER BY branch`); err != nil {
		return nil, err
	}

	var avg sql.NullFloat64
	err = s.DB.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM users),
		        (SELECT COUNT(*) FROM courses),
		        (SELECT AVG(CASE WHEN completed THEN 1.0 ELSE 0.0 END)::float8 FROM progress)`).
		Scan(&st.Totals.TotalUsers, &st.Totals.TotalCourses, &avg)
	if err != nil {
		return nil, wrap(op, err)
	}
	if avg.Valid {
		st.AvgCompletion = int(math.Round(avg.Float64 * 100))
	}
	return &st, nil
}
