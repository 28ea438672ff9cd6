package out

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"skillsetu/internal/modules/plan/domain"
	planout "skillsetu/internal/modules/plan/port/out"
	apperrors "skillsetu/internal/platform/errors"
	"skillsetu/internal/platform/httpsession"
)

type HTTPPlanAPI struct {
	http httpsession.Doer
}

func NewHTTPPlanAPI(doer httpsession.Doer) planout.PlanAPI {
	return &HTTPPlanAPI{http: doer}
}

type planBody struct {
	ID            string     `json:"id"`
	TargetRole    string     `json:"target_role"`
	DurationWeeks int        `json:"duration_weeks"`
	Status        string     `json:"status"`
	Summary       *string    `json:"summary"`
	CreatedAt     *apiTime   `json:"created_at"`
	Items         []itemBody `json:"items"`
}

type itemBody struct {
	ID            string  `json:"id"`
	WeekNo        int     `json:"week_no"`
	DayNo         int     `json:"day_no"`
	Title         string  `json:"title"`
	URL           *string `json:"url"`
	EstMinutes    int     `json:"est_minutes"`
	Type          string  `json:"type"`
	RequiredSkill *string `json:"required_skill"`
}

type generateBody struct {
	Goal          string   `json:"goal"`
	CurrentSkills []string `json:"current_skills"`
	DurationWeeks int      `json:"duration_weeks"`
}

type generateResponse struct {
	PlanID  string `json:"plan_id"`
	Summary string `json:"summary"`
	Weeks   int    `json:"weeks"`
	Message string `json:"message"`
}

func (a *HTTPPlanAPI) List(ctx context.Context) ([]domain.Plan, error) {
	resp, err := a.http.Do(ctx, httpsession.Request{Method: http.MethodGet, Path: "/plans/"})
	if err != nil {
		return nil, err
	}
	var body []planBody
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}
	plans := make([]domain.Plan, 0, len(body))
	for _, p := range body {
		plans = append(plans, p.toDomain())
	}
	return plans, nil
}

func (a *HTTPPlanAPI) Get(ctx context.Context, id string) (domain.Detail, error) {
	resp, err := a.http.Do(ctx, httpsession.Request{Method: http.MethodGet, Path: "/plans/" + url.PathEscape(id)})
	if err != nil {
		return domain.Detail{}, err
	}
	var body planBody
	if err := resp.Decode(&body); err != nil {
		return domain.Detail{}, err
	}
	items := make([]domain.Item, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, item.toDomain())
	}
	return domain.Detail{Plan: body.toDomain(), Items: items}, nil
}

func (a *HTTPPlanAPI) Delete(ctx context.Context, id string) error {
	_, err := a.http.DoWithSlashRetry(ctx, httpsession.Request{Method: http.MethodDelete, Path: "/plans/" + url.PathEscape(id)})
	return err
}

func (a *HTTPPlanAPI) Generate(ctx context.Context, req domain.GenerateRequest) (planout.GenerateResult, error) {
	resp, err := a.http.DoWithSlashRetry(ctx, httpsession.Request{
		Method:  http.MethodPost,
		Path:    "/plans/auto",
		Body:    generateBody{Goal: req.Goal, CurrentSkills: req.Skills, DurationWeeks: req.DurationWeeks},
		Timeout: httpsession.GenerateTimeout,
	})
	if err != nil {
		var statusErr *httpsession.StatusError
		if errors.As(err, &statusErr) && statusErr.Status == http.StatusBadGateway {
			return planout.GenerateResult{}, fmt.Errorf("%w: %v", apperrors.ErrGeneratorUnavailable, err)
		}
		return planout.GenerateResult{}, err
	}
	var body generateResponse
	if err := resp.Decode(&body); err != nil {
		return planout.GenerateResult{}, err
	}
	return planout.GenerateResult{PlanID: body.PlanID, Summary: body.Summary, Weeks: body.Weeks, Message: body.Message}, nil
}

func (p planBody) toDomain() domain.Plan {
	plan := domain.Plan{
		ID:            p.ID,
		TargetRole:    p.TargetRole,
		DurationWeeks: p.DurationWeeks,
		Status:        p.Status,
		Summary:       deref(p.Summary),
	}
	if p.CreatedAt != nil {
		plan.CreatedAt = time.Time(*p.CreatedAt).UTC()
	}
	return plan
}

func (i itemBody) toDomain() domain.Item {
	return domain.Item{
		ID:            i.ID,
		WeekNo:        i.WeekNo,
		DayNo:         i.DayNo,
		Title:         i.Title,
		URL:           deref(i.URL),
		EstMinutes:    i.EstMinutes,
		Type:          i.Type,
		RequiredSkill: deref(i.RequiredSkill),
	}
}

// apiTime accepts RFC 3339 timestamps as well as the zone-less form some
// databases hand back, which is read as UTC.
type apiTime time.Time

var apiTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t *apiTime) UnmarshalJSON(raw []byte) error {
	text := strings.Trim(string(raw), `"`)
	if text == "" || text == "null" {
		return nil
	}
	for _, layout := range apiTimeLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			*t = apiTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", text)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
