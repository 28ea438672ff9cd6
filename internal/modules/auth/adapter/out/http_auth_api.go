package out

import (
	"context"
	"net/http"

	"skillsetu/internal/modules/auth/domain"
	authout "skillsetu/internal/modules/auth/port/out"
	"skillsetu/internal/platform/httpsession"
)

type HTTPAuthAPI struct {
	http httpsession.Doer
}

func NewHTTPAuthAPI(doer httpsession.Doer) authout.AuthAPI {
	return &HTTPAuthAPI{http: doer}
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type tokenBody struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userBody struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

func (a *HTTPAuthAPI) Login(ctx context.Context, email, password string) (domain.Credential, error) {
	resp, err := a.http.Do(ctx, httpsession.Request{
		Method: http.MethodPost,
		Path:   "/auth/auth/login",
		Body:   credentialsBody{Email: email, Password: password},
	})
	if err != nil {
		return "", err
	}
	var body tokenBody
	if err := resp.Decode(&body); err != nil {
		return "", err
	}
	return domain.Credential(body.AccessToken), nil
}

func (a *HTTPAuthAPI) Register(ctx context.Context, name, email, password string) error {
	_, err := a.http.Do(ctx, httpsession.Request{
		Method: http.MethodPost,
		Path:   "/auth/auth/register",
		Body:   credentialsBody{Email: email, Password: password, Name: name},
	})
	return err
}

func (a *HTTPAuthAPI) CurrentUser(ctx context.Context, override domain.Credential) (domain.User, error) {
	req := httpsession.Request{Method: http.MethodGet, Path: "/users/me"}
	if !override.IsZero() {
		req.Header = http.Header{}
		req.Header.Set("Authorization", "Bearer "+string(override))
		req.KeepToken = true
	}
	resp, err := a.http.Do(ctx, req)
	if err != nil {
		return domain.User{}, err
	}
	var body userBody
	if err := resp.Decode(&body); err != nil {
		return domain.User{}, err
	}
	user := domain.User{ID: body.ID, Email: body.Email}
	if body.Name != nil {
		user.Name = *body.Name
	}
	return user, nil
}
