package models

// GroupCount количество записей в одной группе. ID равен nil для пустого значения группы.
type GroupCount struct {
	ID    *string `json:"_id"`
	Count int     `json:"count"`
}

// Totals общие количества пользователей и курсов.
type Totals struct {
	TotalUsers   int `json:"totalUsers"`
	TotalCourses int `json:"totalCourses"`
}

// AdminStats агрегаты для панели администратора.
type AdminStats struct {
	UsersByRole     []GroupCount `json:"usersByRole"`
	UsersByBranch   []GroupCount `json:"usersByBranch"`
	CoursesByBranch []GroupCount `json:"coursesByBranch"`
	Totals          Totals       `json:"totals"`
	AvgCompletion   int          `json:"avgCompletion"`
}
