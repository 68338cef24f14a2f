package models

import (
	"time"
)

type Climber struct {
	Username  string    `json:"username" gorm:"primaryKey;type:text"`
	Pass      string    `json:"-" gorm:"type:text;not null"`
	FirstName string    `json:"firstName" gorm:"type:text"`
	LastName  string    `json:"lastName" gorm:"type:text"`
	Email     string    `json:"email" gorm:"type:text"`
	Access    string    `json:"access" gorm:"type:text;not null;default:'Regular'"`
	CDate     time.Time `json:"cdate" gorm:"autoCreateTime"`
}
