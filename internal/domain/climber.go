package domain

import "time"

// Climber is a registered user including the stored credential.
type Climber struct {
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Access    string    `json:"access"`
	CDate     time.Time `json:"cdate"`
}

// Profile is the non-sensitive view returned after login.
type Profile struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Access    string `json:"access"`
}

func (c Climber) Profile() Profile {
	return Profile{
		Username:  c.Username,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Access:    c.Access,
	}
}
