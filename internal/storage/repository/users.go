package repository

import (
	"context"
	"database/sql"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

const userColumns = `uid, name, email, password_hash, selected_branch, role, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var branch sql.NullString
	if err := row.Scan(&u.UUID, &u.Name, &u.Email, &u.PasswordHash, &branch,
		&u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.SelectedBranch = stringPtr(branch)
	return u, nil
}

// CreateUser сохраняет пользователя. Занятый email возвращает ErrAlreadyExists.
func (s *Storage) CreateUser(ctx context.Context, name, email, passwordHash, role string) (*models.User, error) {
	const op = "storage.CreateUser"
	query := `INSERT INTO users (name, email, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, name, email, passwordHash, role))
	if err != nil {
		return nil, wrap(op, err)
	}
	return u, nil
}

// UpsertAdmin создаёт администратора или переводит существующую учётную запись в роль admin.
func (s *Storage) UpsertAdmin(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	const op = "storage.UpsertAdmin"
	query := `INSERT INTO users (name, email, password_hash, role)
			  VALUES ($1, $2, $3, 'admin')
			  ON CONFLICT (email) DO UPDATE
			  SET name = EXCLUDED.name,
			      password_hash = EXCLUDED.password_hash,
			      role = 'admin',
			      updated_at = now()
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, name, email, passwordHash))
	if err != nil {
		return nil, wrap(op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, wrap(op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по идентификатору.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		return nil, wrap(op, err)
	}
	return u, nil
}

// SetSelectedBranch записывает имя выбранной ветки пользователю.
func (s *Storage) SetSelectedBranch(ctx context.Context, userUID, branchName string) (*models.User, error) {
	const op = "storage.SetSelectedBranch"
	query := `UPDATE users SET selected_branch = $2, updated_at = now()
			  WHERE uid = $1
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID, branchName))
	if err != nil {
		return nil, wrap(op, err)
	}
	return u, nil
}

// UpdateProfile меняет имя и email. Email другого пользователя возвращает ErrAlreadyExists.
func (s *Storage) UpdateProfile(ctx context.Context, userUID, name, email string) (*models.User, error) {
	const op = "storage.UpdateProfile"
	query := `UPDATE users SET name = $2, email = $3, updated_at = now()
			  WHERE uid = $1
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID, name, email))
	if err != nil {
		return nil, wrap(op, err)
	}
	return u, nil
}

// ListUsers возвращает всех пользователей, новые первыми.
func (s *Storage) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "storage.ListUsers"
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, uid`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return users, nil
}

// DeleteUser удаляет пользователя вместе с его прогрессом и подписками.
func (s *Storage) DeleteUser(ctx context.Context, userUID string) error {
	const op = "storage.DeleteUser"
	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE uid = $1`, userUID)
	if err != nil {
		return wrap(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrap(op, err)
	}
	if n == 0 {
		return wrap(op, ErrNotFound)
	}
	return nil
}

// DeleteAllUsers удаляет всех пользователей и возвращает их количество.
func (s *Storage) DeleteAllUsers(ctx context.Context) (int64, error) {
	const op = "storage.DeleteAllUsers"
	res, err := s.DB.ExecContext(ctx, `DELETE FROM users`)
	if err != nil {
		return 0, wrap(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrap(op, err)
	}
	return n, nil
}
