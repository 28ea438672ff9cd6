package dto

import "time"

type PlanOutput struct {
	ID            string
	TargetRole    string
	DurationWeeks int
	Status        string
	Summary       string
	CreatedAt     time.Time
	CreatedAgo    string
}

type ItemOutput struct {
	ID            string
	WeekNo        int
	DayNo         int
	Title         string
	URL           string
	EstMinutes    int
	Type          string
	RequiredSkill string
	Completed     bool
}

type StatsOutput struct {
	Count            int
	AvgDurationWeeks float64
	LastCreated      string
}

type BrowseInput struct {
	Query  string
	Filter string
}

type BrowseOutput struct {
	Plans []PlanOutput
	Stats StatsOutput
	// Total is the size of the unfiltered collection.
	Total int
}

type WeekOutput struct {
	Week      int
	Items     []ItemOutput
	Completed int
	Total     int
}

type DetailOutput struct {
	Plan      PlanOutput
	Weeks     []WeekOutput
	Completed int
	Total     int
}

type GenerateInput struct {
	Goal          string
	Skills        []string
	DurationWeeks int
}

type GenerateOutput struct {
	PlanID  string
	Summary string
	Weeks   int
	Message string
}
