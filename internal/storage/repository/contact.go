package repository

import (
	"context"
	"time"

	"github.com/magabrotheeeer/itlearnpro/internal/models"
)

// SaveContactMessage сохраняет сообщение обратной связи одной строкой.
func (s *Storage) SaveContactMessage(ctx context.Context, m models.ContactMessage) (*models.ContactMessage, error) {
	const op = "storage.SaveContactMessage"
	query := `INSERT INTO contact_messages (name, email, subject, message, ip)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at`
	saved := m
	if err := s.DB.QueryRowContext(ctx, query, m.Name, m.Email, m.Subject, m.Message, m.IP).
		Scan(&saved.ID, &saved.CreatedAt); err != nil {
		return nil, wrap(op, err)
	}
	return &saved, nil
}

// ListContactMessages возвращает сообщения, новые первыми.
func (s *Storage) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	const op = "storage.ListContactMessages"
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, name, email, subject, message, ip, created_at
		 FROM contact_messages
		 ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	messages := make([]models.ContactMessage, 0)
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.IP, &m.CreatedAt); err != nil {
			return nil, wrap(op, err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return messages, nil
}

// ContactStats считает сообщения начиная с указанных моментов.
func (s *Storage) ContactStats(ctx context.Context, dayStart, weekAgo, monthAgo time.Time) (models.ContactStats, error) {
	const op = "storage.ContactStats"
	var st models.ContactStats
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE created_at >= $1),
		        COUNT(*) FILTER (WHERE created_at >= $2),
		        COUNT(*) FILTER (WHERE created_at >= $3)
		 FROM contact_messages`, dayStart, weekAgo, monthAgo).
		Scan(&st.Total, &st.Today, &st.ThisWeek, &st.ThisMonth)
	if err != nil {
		return models.ContactStats{}, wrap(op, err)
	}
	return st, nil
}
