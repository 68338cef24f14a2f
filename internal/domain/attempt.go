package domain

import "time"

// Attempt is one try at a route, identified by (username, route, mode, attempt number).
type Attempt struct {
	Username  string    `json:"username"`
	RouteID   int64     `json:"rid"`
	Mode      string    `json:"mode"`
	AttemptNo int       `json:"attemptNo"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Result    string    `json:"result"`
	Rating    int       `json:"rating"`
	Notes     string    `json:"notes"`
	Video     *string   `json:"video,omitempty"`
	CDate     time.Time `json:"cdate"`
}

// AttemptView is an attempt joined with the route it was made on.
type AttemptView struct {
	Attempt
	CompanyName   string `json:"companyName"`
	Suburb        string `json:"suburb"`
	Location      string `json:"location"`
	Grade         string `json:"grade"`
	GradingSystem string `json:"gradingSystem"`
	GradeOrder    int    `json:"gradeOrder"`
	ClimbType     string `json:"climbType"`
	Colour        string `json:"colour"`
}

// Project summarises an unsent (route, mode) pair for a climber.
type Project struct {
	RouteID         int64  `json:"rid"`
	Mode            string `json:"mode"`
	CompanyName     string `json:"companyName"`
	Suburb          string `json:"suburb"`
	Location        string `json:"location"`
	Grade           string `json:"grade"`
	GradingSystem   string `json:"gradingSystem"`
	GradeOrder      int    `json:"gradeOrder"`
	ClimbType       string `json:"climbType"`
	Colour          string `json:"colour"`
	AttemptCount    int    `json:"attemptCount"`
	LastAttemptDate string `json:"lastAttemptDate"`
	BestResult      string `json:"bestResult"`
}
