package models

type GradeSystem struct {
	GradingSystem string `json:"gradingSystem" gorm:"primaryKey;type:text"`
}

type Grade struct {
	Grade         string `json:"grade" gorm:"primaryKey;type:text"`
	GradingSystem string `json:"gradingSystem" gorm:"primaryKey;type:text;index"`
	GradeOrder    int    `json:"gradeOrder" gorm:"not null"`
}

type Mode struct {
	Mode string `json:"mode" gorm:"primaryKey;type:text"`
}

type Result struct {
	Result      string `json:"result" gorm:"primaryKey;type:text"`
	ResultOrder int    `json:"resultOrder" gorm:"not null;uniqueIndex"`
}
