package out

import (
	"context"
	"net/http"
	"net/url"

	"skillsetu/internal/modules/status/domain"
	statusout "skillsetu/internal/modules/status/port/out"
	"skillsetu/internal/platform/httpsession"
)

type HTTPProbeAPI struct {
	http httpsession.Doer
}

func NewHTTPProbeAPI(doer httpsession.Doer) statusout.ProbeAPI {
	return &HTTPProbeAPI{http: doer}
}

type healthPlanBody struct {
	Goal          string   `json:"goal"`
	CurrentSkills []string `json:"current_skills"`
	DurationWeeks int      `json:"duration_weeks"`
}

func (a *HTTPProbeAPI) CurrentUser(ctx context.Context, token string, stored bool) error {
	_, err := a.http.Do(ctx, probe(http.MethodGet, "/users/me", token, stored))
	return err
}

func (a *HTTPProbeAPI) CreateHealthPlan(ctx context.Context, token string, stored bool) (string, error) {
	req := probe(http.MethodPost, "/plans/auto", token, stored)
	req.Body = healthPlanBody{Goal: domain.HealthcheckGoal, CurrentSkills: []string{}, DurationWeeks: 2}
	req.Timeout = httpsession.GenerateTimeout
	resp, err := a.http.Do(ctx, req)
	if err != nil {
		return "", err
	}
	var body struct {
		PlanID string `json:"plan_id"`
	}
	if err := resp.Decode(&body); err != nil {
		return "", err
	}
	return body.PlanID, nil
}

func (a *HTTPProbeAPI) DeletePlan(ctx context.Context, token string, stored bool, planID string) error {
	req := probe(http.MethodDelete, "/plans/"+url.PathEscape(planID), token, stored)
	req.Timeout = httpsession.CleanupTimeout
	_, err := a.http.Do(ctx, req)
	return err
}

// probe authenticates explicitly. A 401 only evicts when the stored token
// was the one being checked.
func probe(method, path, token string, stored bool) httpsession.Request {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	return httpsession.Request{Method: method, Path: path, Header: header, KeepToken: !stored}
}
