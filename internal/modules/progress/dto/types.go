package dto

type ToggleInput struct {
	PlanID string
	ItemID string
}

type ToggleOutput struct {
	PlanID         string
	ItemID         string
	Completed      bool
	CompletedCount int
}

type CompletedOutput struct {
	PlanID  string
	ItemIDs []string
}
