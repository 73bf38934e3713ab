package out

import (
	"context"
	"net/http"

	"medtrack/internal/modules/auth/domain"
	authout "medtrack/internal/modules/auth/port/out"
	"medtrack/internal/platform/rest"
)

type HTTPAuthAPI struct {
	client *rest.Client
}

func NewHTTPAuthAPI(client *rest.Client) authout.AuthAPI {
	return &HTTPAuthAPI{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Roles string `json:"roles"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  int    `json:"userId"`
}

type userResponse struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	UserID int    `json:"userId"`
}

func (a *HTTPAuthAPI) Login(ctx context.Context, email, password string) (authout.LoginResult, error) {
	var resp loginResponse
	err := a.client.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   loginRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return authout.LoginResult{}, err
	}
	return authout.LoginResult{Token: resp.Token, Email: resp.Email, Roles: resp.Roles}, nil
}

func (a *HTTPAuthAPI) Register(ctx context.Context, name, email, password string) (authout.RegisterResult, error) {
	var resp registerResponse
	err := a.client.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body:   registerRequest{Name: name, Email: email, Password: password},
	}, &resp)
	if err != nil {
		return authout.RegisterResult{}, err
	}
	return authout.RegisterResult{Message: resp.Message, UserID: resp.UserID}, nil
}

func (a *HTTPAuthAPI) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	var resp userResponse
	err := a.client.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "/auth/me",
		Token:  token,
	}, &resp)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{Email: resp.Email, Name: resp.Name, Role: resp.Role, UserID: resp.UserID}, nil
}
