package models

type Company struct {
	CompanyName        string `json:"companyName" gorm:"primaryKey;type:text"`
	BoulderGradeSystem string `json:"boulderGradeSystem" gorm:"type:text"`
	SportGradeSystem   string `json:"sportGradeSystem" gorm:"type:text"`
	PrimaryCountry     string `json:"primaryCountry" gorm:"type:text"`
}

type Gym struct {
	CompanyName string `json:"companyName" gorm:"primaryKey;type:text"`
	Suburb      string `json:"suburb" gorm:"primaryKey;type:text"`
	City        string `json:"city" gorm:"type:text"`
	Country     string `json:"country" gorm:"type:text"`
}

type Location struct {
	CompanyName string `json:"companyName" gorm:"primaryKey;type:text"`
	Suburb      string `json:"suburb" gorm:"primaryKey;type:text"`
	Location    string `json:"location" gorm:"primaryKey;type:text"`
	ClimbType   string `json:"climbType" gorm:"type:text;not null;default:'not specified'"`
}

type Colour struct {
	CompanyName string `json:"companyName" gorm:"primaryKey;type:text"`
	Colour      string `json:"colour" gorm:"primaryKey;type:text"`
}
