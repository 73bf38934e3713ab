package out

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"medtrack/internal/modules/admin/domain"
	admout "medtrack/internal/modules/admin/port/out"
	"medtrack/internal/platform/rest"
)

type HTTPAdminAPI struct {
	client *rest.Client
}

func NewHTTPAdminAPI(client *rest.Client) admout.AdminAPI {
	return &HTTPAdminAPI{client: client}
}

type accountWire struct {
	UserID    int    `json:"userId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

type usersResponse struct {
	Users []accountWire `json:"users"`
}

type rolesResponse struct {
	Roles []string `json:"roles"`
}

type updateRolesRequest struct {
	Roles []string `json:"roles"`
}

func (a *HTTPAdminAPI) ListUsers(ctx context.Context, token string, filter domain.Filter) ([]domain.Account, error) {
	query := url.Values{}
	if filter.Role != "" {
		query.Set("role", filter.Role)
	}
	if filter.Only {
		query.Set("only", "true")
	}
	var resp usersResponse
	err := a.client.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "/admin/users",
		Query:  query,
		Token:  token,
	}, &resp)
	if err != nil {
		return nil, err
	}
	accounts := make([]domain.Account, len(resp.Users))
	for i, w := range resp.Users {
		accounts[i] = domain.Account{
			UserID:    w.UserID,
			Name:      w.Name,
			Email:     w.Email,
			Role:      w.Role,
			CreatedAt: w.CreatedAt,
		}
	}
	return accounts, nil
}

func (a *HTTPAdminAPI) Roles(ctx context.Context, token string) ([]string, error) {
	var resp rolesResponse
	err := a.client.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "/admin/roles",
		Token:  token,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Roles, nil
}

func (a *HTTPAdminAPI) UpdateRoles(ctx context.Context, token string, userID int, roles []string) error {
	return a.client.Do(ctx, rest.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/admin/users/%d/roles", userID),
		Token:  token,
		Body:   updateRolesRequest{Roles: roles},
	}, nil)
}

func (a *HTTPAdminAPI) DeleteUser(ctx context.Context, token string, userID int) error {
	return a.client.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/admin/users/%d", userID),
		Token:  token,
	}, nil)
}
