package models

import "time"

// Progress состояние прохождения одного курса одним пользователем.
type Progress struct {
	ID          string    `json:"_id"`
	UserUID     string    `json:"userId"`
	CourseID    string    `json:"courseId"`
	Completed   bool      `json:"completed"`
	LastWatched time.Time `json:"lastWatched"`
}

// CourseRef краткие данные курса, подставляемые в строку прогресса.
type CourseRef struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Branch      string `json:"branch"`
	Description string `json:"description"`
	YoutubeURL  string `json:"youtubeUrl"`
}

// ProgressDetail строка прогресса вместе с данными курса.
type ProgressDetail struct {
	ID          string    `json:"_id"`
	Course      CourseRef `json:"courseId"`
	Completed   bool      `json:"completed"`
	LastWatched time.Time `json:"lastWatched"`
}
