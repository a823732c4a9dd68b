package crmclient

import (
	"context"

	"crm-console/internal/console/listing"
	"crm-console/internal/console/query"
)

type pageFilterData struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func pageBody(q query.State) map[string]any {
	return map[string]any{"filterData": pageFilterData{Page: q.Page, Limit: q.Limit}}
}

func (c *Client) ListUsers(ctx context.Context, q query.State) (listing.Page[User], error) {
	env, err := c.post(ctx, "/user/userlist", pageBody(q))
	if err != nil {
		return listing.Page[User]{}, err
	}
	rows, err := decodeList[User](env)
	if err != nil {
		return listing.Page[User]{}, err
	}
	return listing.Page[User]{Rows: rows, TotalPages: env.ReportedTotalPages()}, nil
}

func (c *Client) GetUser(ctx context.Context, id int) (User, error) {
	env, err := c.post(ctx, "/user/get-user-by-id", map[string]any{"userId": id})
	if err != nil {
		return User{}, err
	}
	return decodeOne[User](env)
}

func (c *Client) CreateUser(ctx context.Context, form UserForm) (string, error) {
	return c.mutate(ctx, "/user/create-user", map[string]any{"formData": form})
}

func (c *Client) UpdateUser(ctx context.Context, id int, form UserForm) (string, error) {
	return c.mutate(ctx, "/user/update-user", map[string]any{
		"user_Id":   id,
		"userName":  form.UserName,
		"userEmail": form.UserEmail,
		"roleId":    form.RoleID,
	})
}

func (c *Client) DeleteUser(ctx context.Context, id int) (string, error) {
	return c.mutate(ctx, "/user/delete-user", map[string]any{"user_Id": id})
}

const (
	RoleAgent = "Agent"
	RoleAdmin = "Admin"
	RoleBoth  = "Both"
)

// AgentOptions - пользователи с ролью role ("Agent", "Admin" или "Both").
func (c *Client) AgentOptions(ctx context.Context, role string) ([]AgentOption, error) {
	env, err := c.post(ctx, "/user/agent-list", map[string]any{"role": role})
	if err != nil {
		return nil, err
	}
	return decodeList[AgentOption](env)
}

// SetDefaultPassword сбрасывает пароль пользователя и возвращает новый временный пароль.
func (c *Client) SetDefaultPassword(ctx context.Context, userID int) (password string, msg string, err error) {
	env, err := c.post(ctx, "/auth/app/set-default-pwd", map[string]any{"userId": userID})
	if err != nil {
		return "", "", err
	}
	return env.DefaultPassword, env.Msg, nil
}
