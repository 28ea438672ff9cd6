package dto

type CheckOutput struct {
	State   string
	Message string
	OK      bool
}
