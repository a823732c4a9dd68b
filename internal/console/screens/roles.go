package screens

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"crm-console/internal/console/detail"
	"crm-console/internal/console/listing"
	"crm-console/internal/console/mutation"
	"crm-console/internal/console/query"
	"crm-console/internal/crmclient"
	apperrors "crm-console/pkg/errors"
)

type RolesAPI interface {
	ListRoles(ctx context.Context, q query.State) (listing.Page[crmclient.Role], error)
	GetRole(ctx context.Context, id int) (crmclient.Role, error)
	CreateRole(ctx context.Context, name string) (string, error)
	UpdateRole(ctx context.Context, id int, name string) (string, error)
	DeleteRole(ctx context.Context, id int) (string, error)
	RolePermissions(ctx context.Context, roleID int) ([]crmclient.RolePermission, error)
	AddRolePermission(ctx context.Context, roleID, permissionID int) (string, error)
	RemoveRolePermission(ctx context.Context, roleID, permissionID int) (string, error)
	ListPermissions(ctx context.Context, q query.State) (listing.Page[crmclient.Permission], error)
}

// RoleDetail - роль вместе с назначенными правами.
type RoleDetail struct {
	crmclient.Role
	Permissions []crmclient.RolePermission `json:"permissions"`
}

type Roles struct {
	*List[crmclient.Role]
	api      RolesAPI
	detail   *detail.Cache[RoleDetail]
	protocol *mutation.Protocol
}

func NewRoles(api RolesAPI, protocol *mutation.Protocol, changed ChangeFunc, logger *zap.Logger) *Roles {
	s := &Roles{
		List:     newList(NameRoles, api.ListRoles, changed, logger),
		api:      api,
		protocol: protocol,
	}
	s.detail = detail.NewCache("Role", s.loadDetail, logger)
	s.detailView = func() any { return s.detail.Snapshot() }
	return s
}

func (s *Roles) loadDetail(ctx context.Context, id int) (RoleDetail, error) {
	role, err := s.api.GetRole(ctx, id)
	if err != nil {
		return RoleDetail{}, err
	}
	perms, err := s.api.RolePermissions(ctx, id)
	if err != nil {
		return RoleDetail{}, err
	}
	return RoleDetail{Role: role, Permissions: perms}, nil
}

func (s *Roles) Create(ctx context.Context, name string) mutation.Result {
	return s.protocol.Run(ctx, mutation.Request{
		Action:         "create role",
		Submit:         func(ctx context.Context) (string, error) { return s.api.CreateRole(ctx, name) },
		RefreshList:    s.refreshList,
		Form:           s.form,
		SuccessMessage: "Role created successfully",
		FailureMessage: "Failed to create role",
	})
}

func (s *Roles) Update(ctx context.Context, id int, name string) mutation.Result {
	return s.protocol.Run(ctx, mutation.Request{
		Action:         "update role",
		Submit:         func(ctx context.Context) (string, error) { return s.api.UpdateRole(ctx, id, name) },
		ReloadDetail:   reloadIfOpen(s.detail, id, func() { s.notify(PartDetail) }),
		RefreshList:    s.refreshList,
		Form:           s.form,
		SuccessMessage: "Role updated successfully",
		FailureMessage: "Failed to update role",
	})
}

func (s *Roles) Delete(ctx context.Context, id int) mutation.Result {
	return s.protocol.Run(ctx, mutation.Request{
		Action:         "delete role",
		Submit:         func(ctx context.Context) (string, error) { return s.api.DeleteRole(ctx, id) },
		ReloadDetail:   closeIfOpen(s.detail, id, func() { s.notify(PartDetail) }),
		RefreshList:    s.refreshList,
		SuccessMessage: "Role deleted successfully",
		FailureMessage: "Failed to delete role",
	})
}

func (s *Roles) OpenDetail(ctx context.Context, id int) View {
	s.detail.Open(ctx, id)
	s.notify(PartDetail)
	return s.View()
}

func (s *Roles) CloseDetail() {
	s.detail.Close()
	s.notify(PartDetail)
}

// AddPermission назначает право открытой роли; список ролей не меняется,
// поэтому перечитывается только деталь.
func (s *Roles) AddPermission(ctx context.Context, permissionID int) mutation.Result {
	roleID := s.detail.CurrentID()
	return s.protocol.Run(ctx, mutation.Request{
		Action: "add role permission",
		Submit: func(ctx context.Context) (string, error) {
			if roleID == 0 {
				return "", fmt.Errorf("роль не открыта: %w", apperrors.ErrBadRequest)
			}
			return s.api.AddRolePermission(ctx, roleID, permissionID)
		},
		ReloadDetail:   reloadIfOpen(s.detail, roleID, func() { s.notify(PartDetail) }),
		SuccessMessage: "Permission assigned successfully",
		FailureMessage: "Failed to assign permission",
	})
}

func (s *Roles) RemovePermission(ctx context.Context, permissionID int) mutation.Result {
	roleID := s.detail.CurrentID()
	return s.protocol.Run(ctx, mutation.Request{
		Action: "remove role permission",
		Submit: func(ctx context.Context) (string, error) {
			if roleID == 0 {
				return "", fmt.Errorf("роль не открыта: %w", apperrors.ErrBadRequest)
			}
			return s.api.RemoveRolePermission(ctx, roleID, permissionID)
		},
		ReloadDetail:   reloadIfOpen(s.detail, roleID, func() { s.notify(PartDetail) }),
		SuccessMessage: "Permission removed successfully",
		FailureMessage: "Failed to remove permission",
	})
}

// PermissionOptions - все права для выбора при назначении.
func (s *Roles) PermissionOptions(ctx context.Context) ([]crmclient.Permission, error) {
	page, err := s.api.ListPermissions(ctx, query.New().SetLimit(100))
	if err != nil {
		return nil, err
	}
	return page.Rows, nil
}

func (s *Roles) Unmount() {
	s.detail.Close()
	s.List.Unmount()
}
