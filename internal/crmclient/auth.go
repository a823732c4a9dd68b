package crmclient

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "crm-console/pkg/errors"
)

type loginData struct {
	Token string `json:"token"`
}

// Login не требует учётных данных сессии.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	env, err := c.WithCredential(nil).post(ctx, "/auth/app/login", map[string]any{
		"user_Email":    email,
		"user_Password": password,
	})
	if err != nil {
		return LoginResult{}, err
	}

	var data loginData
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		return LoginResult{}, fmt.Errorf("%w: в ответе входа нет токена", apperrors.ErrTransport)
	}

	res := LoginResult{Token: data.Token}
	if env.Page != nil && *env.Page != "" {
		res.MustChangePassword = true
		res.RedirectPage = *env.Page
	}
	return res, nil
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword, confirm string) (string, error) {
	return c.mutate(ctx, "/auth/app/change-password", map[string]any{
		"oldPassword":        oldPassword,
		"newPassword":        newPassword,
		"confirmNewPassword": confirm,
	})
}
