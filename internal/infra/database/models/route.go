package models

import (
	"time"
)

type Route struct {
	ID            int64  `json:"rid" gorm:"primaryKey;autoIncrement"`
	CreationDate  string `json:"creationDate" gorm:"type:text"`
	CompanyName   string `json:"companyName" gorm:"type:text;index:idx_route_wall"`
	Suburb        string `json:"suburb" gorm:"type:text;index:idx_route_wall"`
	Location      string `json:"location" gorm:"type:text;index:idx_route_wall"`
	GradingSystem string `json:"gradingSystem" gorm:"type:text"`
	Grade         string `json:"grade" gorm:"type:text"`
	ClimbType     string `json:"climbType" gorm:"type:text"`
	Colour        string `json:"colour" gorm:"type:text"`
	NumberHolds   int    `json:"numberHolds" gorm:"not null;default:0"`
	Existing      bool   `json:"existing" gorm:"not null;default:true;index"`
}

type Attempt struct {
	Username  string    `json:"username" gorm:"primaryKey;type:text"`
	RouteID   int64     `json:"rid" gorm:"primaryKey;autoIncrement:false"`
	Mode      string    `json:"mode" gorm:"primaryKey;type:text"`
	AttemptNo int       `json:"attemptNo" gorm:"primaryKey;autoIncrement:false"`
	Date      string    `json:"date" gorm:"type:text;not null"`
	Time      string    `json:"time" gorm:"type:text"`
	Result    string    `json:"result" gorm:"type:text"`
	Rating    int       `json:"rating" gorm:"not null;default:0"`
	Notes     string    `json:"notes" gorm:"type:text"`
	Video     *string   `json:"video" gorm:"type:text"`
	CDate     time.Time `json:"cdate" gorm:"autoCreateTime"`
}
