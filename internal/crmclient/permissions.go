package crmclient

import (
	"context"

	"crm-console/internal/console/listing"
	"crm-console/internal/console/query"
)

func (c *Client) ListPermissions(ctx context.Context, q query.State) (listing.Page[Permission], error) {
	env, err := c.post(ctx, "/user/permissions", pageBody(q))
	if err != nil {
		return listing.Page[Permission]{}, err
	}
	rows, err := decodeList[Permission](env)
	if err != nil {
		return listing.Page[Permission]{}, err
	}
	return listing.Page[Permission]{Rows: rows, TotalPages: env.ReportedTotalPages()}, nil
}

func (c *Client) GetPermission(ctx context.Context, id int) (Permission, error) {
	env, err := c.post(ctx, "/user/permision-by-id", map[string]any{"permission_Id": id})
	if err != nil {
		return Permission{}, err
	}
	return decodeOne[Permission](env)
}

func (c *Client) CreatePermission(ctx context.Context, form PermissionForm) (string, error) {
	return c.mutate(ctx, "/user/create-permission", form)
}

func (c *Client) UpdatePermission(ctx context.Context, id int, form PermissionForm) (string, error) {
	return c.mutate(ctx, "/user/update-permission", struct {
		ID int `json:"permission_Id"`
		PermissionForm
	}{ID: id, PermissionForm: form})
}

func (c *Client) DeletePermission(ctx context.Context, id int) (string, error) {
	return c.mutate(ctx, "/user/delete-permission", map[string]any{"permission_Id": id})
}
