package tui

import (
	"context"

	"crm-console/internal/crmclient"
)

// ClientAuth - Authenticator поверх HTTP-клиента CRM.
type ClientAuth struct {
	Client *crmclient.Client
}

func (a ClientAuth) Login(ctx context.Context, email, password string) (crmclient.LoginResult, error) {
	return a.Client.Login(ctx, email, password)
}

func (a ClientAuth) ChangePassword(ctx context.Context, token, oldPassword, newPassword, confirm string) (string, error) {
	return a.Client.WithCredential(crmclient.StaticToken(token)).ChangePassword(ctx, oldPassword, newPassword, confirm)
}
