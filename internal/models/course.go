package models

import "time"

// Branch технический трек, объединяющий курсы.
type Branch struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Course видеокурс. Branch хранит имя ветки строкой, без внешнего ключа.
type Course struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Branch      string    `json:"branch"`
	YoutubeURL  string    `json:"youtubeUrl"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewCourse данные для создания курса администратором.
type NewCourse struct {
	Title       string
	Branch      string
	YoutubeURL  string
	Description string
}
