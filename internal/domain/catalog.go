package domain

type Company struct {
	CompanyName        string `json:"companyName" validate:"required"`
	BoulderGradeSystem string `json:"boulderGradeSystem"`
	SportGradeSystem   string `json:"sportGradeSystem"`
	PrimaryCountry     string `json:"primaryCountry"`
}

type Gym struct {
	CompanyName string `json:"companyName" validate:"required"`
	Suburb      string `json:"suburb" validate:"required"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

type Location struct {
	CompanyName string `json:"companyName"`
	Suburb      string `json:"suburb"`
	Location    string `json:"location"`
	ClimbType   string `json:"climbType"`
}

type Colour struct {
	CompanyName string `json:"companyName" validate:"required"`
	Colour      string `json:"colour" validate:"required"`
}

type Grade struct {
	Grade         string `json:"grade"`
	GradingSystem string `json:"gradingSystem,omitempty"`
	GradeOrder    int    `json:"gradeOrder"`
}

type Mode struct {
	Mode string `json:"mode" validate:"required"`
}

type Result struct {
	Result      string `json:"result" validate:"required"`
	ResultOrder int    `json:"resultOrder" validate:"required"`
}
