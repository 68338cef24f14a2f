package domain

// Route is a climb set at a gym location.
type Route struct {
	ID            int64  `json:"rid"`
	CreationDate  string `json:"creationDate"`
	CompanyName   string `json:"companyName"`
	Suburb        string `json:"suburb"`
	Location      string `json:"location"`
	GradingSystem string `json:"gradingSystem"`
	Grade         string `json:"grade"`
	ClimbType     string `json:"climbType"`
	Colour        string `json:"colour"`
	NumberHolds   int    `json:"numberHolds"`
	Existing      bool   `json:"existing"`
}

// RouteFilter narrows route and attempt listings to one wall.
// Empty fields do not filter.
type RouteFilter struct {
	CompanyName string
	Suburb      string
	Location    string
	ClimbType   string
}
