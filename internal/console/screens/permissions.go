package screens

import (
	"context"

	"go.uber.org/zap"

	"crm-console/internal/console/detail"
	"crm-console/internal/console/listing"
	"crm-console/internal/console/mutation"
	"crm-console/internal/console/query"
	"crm-console/internal/crmclient"
)

type PermissionsAPI interface {
	ListPermissions(ctx context.Context, q query.State) (listing.Page[crmclient.Permission], error)
	GetPermission(ctx context.Context, id int) (crmclient.Permission, error)
	CreatePermission(ctx context.Context, form crmclient.PermissionForm) (string, error)
	UpdatePermission(ctx context.Context, id int, form crmclient.PermissionForm) (string, error)
	DeletePermission(ctx context.Context, id int) (string, error)
}

type Permissions struct {
	*List[crmclient.Permission]
	api      PermissionsAPI
	detail   *detail.Cache[crmclient.Permission]
	protocol *mutation.Protocol
}

func NewPermissions(api PermissionsAPI, protocol *mutation.Protocol, changed ChangeFunc, logger *zap.Logger) *Permissions {
	s := &Permissions{
		List:     newList(NamePermissions, api.ListPermissions, changed, logger),
		api:      api,
		detail:   detail.NewCache("Permission", api.GetPermission, logger),
		protocol: protocol,
	}
	s.detailView = func() any { return s.detail.Snapshot() }
	return s
}

func (s *Permissions) Create(ctx context.Context, form crmclient.PermissionForm) mutation.Result {
	return s.protocol.Run(ctx, mutation.Request{
		Action:         "create permission",
		Submit:         func(ctx context.Context) (string, error) { return s.api.CreatePermission(ctx, form) },
		RefreshList:    s.refreshList,
		Form:           s.form,
		SuccessMessage: "Permission created successfully",
		FailureMessage: "Failed to create permission",
	})
}

func (s *Permissions) Update(ctx context.Context, id int, form crmclient.PermissionForm) mutation.Result {
	return s.protocol.Run(ctx, mutation.Request{
		Action:         "update permission",
		Submit:         func(ctx context.Context) (string, error) { return s.api.UpdatePermission(ctx, id, form) },
		ReloadDetail:   reloadIfOpen(s.detail, id, func() { s.notify(PartDetail) }),
		RefreshList:    s.refreshList,
		Form:           s.form,
		SuccessMessage: "Permission updated successfully",
		FailureMessage: "Failed to update permission",
	})
}

func (s *Permissions) Delete(ctx context.Context, id int) mutation.Result {
	return s.protocol.Run(ctx, mutation.Request{
		Action:         "delete permission",
		Submit:         func(ctx context.Context) (string, error) { return s.api.DeletePermission(ctx, id) },
		ReloadDetail:   closeIfOpen(s.detail, id, func() { s.notify(PartDetail) }),
		RefreshList:    s.refreshList,
		SuccessMessage: "Permission deleted successfully",
		FailureMessage: "Failed to delete permission",
	})
}

func (s *Permissions) OpenDetail(ctx context.Context, id int) View {
	s.detail.Open(ctx, id)
	s.notify(PartDetail)
	return s.View()
}

func (s *Permissions) CloseDetail() {
	s.detail.Close()
	s.notify(PartDetail)
}

func (s *Permissions) Unmount() {
	s.detail.Close()
	s.List.Unmount()
}
