package crmclient

import (
	"context"

	"crm-console/internal/console/listing"
	"crm-console/internal/console/query"
)

func (c *Client) ListRoles(ctx context.Context, q query.State) (listing.Page[Role], error) {
	env, err := c.post(ctx, "/user/roles", pageBody(q))
	if err != nil {
		return listing.Page[Role]{}, err
	}
	rows, err := decodeList[Role](env)
	if err != nil {
		return listing.Page[Role]{}, err
	}
	return listing.Page[Role]{Rows: rows, TotalPages: env.ReportedTotalPages()}, nil
}

func (c *Client) GetRole(ctx context.Context, id int) (Role, error) {
	env, err := c.post(ctx, "/user/role-by-id", map[string]any{"roleId": id})
	if err != nil {
		return Role{}, err
	}
	return decodeOne[Role](env)
}

func (c *Client) CreateRole(ctx context.Context, name string) (string, error) {
	return c.mutate(ctx, "/user/create-role", map[string]any{
		"formData": map[string]any{"roleName": name},
	})
}

func (c *Client) UpdateRole(ctx context.Context, id int, name string) (string, error) {
	return c.mutate(ctx, "/user/update-role", map[string]any{"roleId": id, "roleName": name})
}

func (c *Client) DeleteRole(ctx context.Context, id int) (string, error) {
	return c.mutate(ctx, "/user/delete-role", map[string]any{"role_Id": id})
}

func (c *Client) RolePermissions(ctx context.Context, roleID int) ([]RolePermission, error) {
	env, err := c.post(ctx, "/user/role-permission", map[string]any{"role_Id": roleID})
	if err != nil {
		return nil, err
	}
	return decodeList[RolePermission](env)
}

func (c *Client) AddRolePermission(ctx context.Context, roleID, permissionID int) (string, error) {
	return c.mutate(ctx, "/user/add-role-permission", map[string]any{
		"formData": map[string]any{"roleId": roleID, "permissionId": permissionID},
	})
}

// RemoveRolePermission деактивирует связь роли и права (isActive = 0).
func (c *Client) RemoveRolePermission(ctx context.Context, roleID, permissionID int) (string, error) {
	return c.mutate(ctx, "/user/delete-role-permission", map[string]any{
		"role_Id":          roleID,
		"rolePermissionId": permissionID,
		"isActive":         0,
	})
}
