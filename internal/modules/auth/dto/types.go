package dto

import "time"

type LoginInput struct {
	Email    string
	Password string
	// ReturnTo is the guarded path the user was bounced from, if any.
	ReturnTo string
}

type LoginOutput struct {
	Redirect string
}

type RegisterInput struct {
	Email    string
	Password string
}

type RegisterOutput struct {
	Redirect string
}

type StatusOutput struct {
	Present   bool
	Masked    string
	Subject   string
	ExpiresAt time.Time
}

type UserOutput struct {
	ID    string
	Email string
	Name  string
}
