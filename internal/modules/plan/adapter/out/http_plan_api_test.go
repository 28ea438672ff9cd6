package out_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	planout "skillsetu/internal/modules/plan/adapter/out"
	"skillsetu/internal/modules/plan/domain"
	apperrors "skillsetu/internal/platform/errors"
	"skillsetu/internal/platform/httpsession"
)

type recordingDoer struct {
	requests []httpsession.Request
	retried  []bool
	err      error
	body     string
}

func (d *recordingDoer) Do(_ context.Context, req httpsession.Request) (*httpsession.Response, error) {
	d.requests = append(d.requests, req)
	d.retried = append(d.retried, false)
	return d.respond()
}

func (d *recordingDoer) DoWithSlashRetry(_ context.Context, req httpsession.Request) (*httpsession.Response, error) {
	d.requests = append(d.requests, req)
	d.retried = append(d.retried, true)
	return d.respond()
}

func (d *recordingDoer) respond() (*httpsession.Response, error) {
	if d.err != nil {
		return nil, d.err
	}
	return &httpsession.Response{Status: http.StatusOK, Body: []byte(d.body)}, nil
}

func TestGenerateUsesExtendedTimeoutAndSlashRetry(t *testing.T) {
	t.Parallel()
	doer := &recordingDoer{body: `{"plan_id":"p9"}`}
	api := planout.NewHTTPPlanAPI(doer)
	res, err := api.Generate(context.Background(), domain.GenerateRequest{Goal: "Become a Data Engineer", Skills: []string{"go"}, DurationWeeks: 6})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if res.PlanID != "p9" {
		t.Fatalf("unexpected plan id %q", res.PlanID)
	}
	req := doer.requests[0]
	if req.Timeout != httpsession.GenerateTimeout || !doer.retried[0] {
		t.Fatalf("generate must use the extended timeout and slash retry, got %+v", req)
	}
}

func TestGenerateTimeoutIsNotGeneratorUnavailable(t *testing.T) {
	t.Parallel()
	doer := &recordingDoer{err: fmt.Errorf("POST /plans/auto: %w", apperrors.ErrTimeout)}
	api := planout.NewHTTPPlanAPI(doer)
	_, err := api.Generate(context.Background(), domain.GenerateRequest{Goal: "Become a Data Engineer", Skills: []string{"go"}, DurationWeeks: 6})
	if errors.Is(err, apperrors.ErrGeneratorUnavailable) {
		t.Fatalf("timeout must stay distinguishable from 502")
	}
	if msg := apperrors.UserMessage(err, "Failed to create plan"); msg != "Request timeout" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestReadsUseDefaultTimeoutWithoutRetry(t *testing.T) {
	t.Parallel()
	doer := &recordingDoer{body: `[]`}
	api := planout.NewHTTPPlanAPI(doer)
	if _, err := api.List(context.Background()); err != nil {
		t.Fatalf("list: %v", err)
	}
	if doer.retried[0] || doer.requests[0].Timeout != 0 || doer.requests[0].Path != "/plans/" {
		t.Fatalf("unexpected list request %+v", doer.requests[0])
	}
	if err := api.Delete(context.Background(), "a b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !doer.retried[1] || doer.requests[1].Path != "/plans/a%20b" {
		t.Fatalf("unexpected delete request %+v", doer.requests[1])
	}
}
