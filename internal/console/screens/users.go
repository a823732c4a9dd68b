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

type UsersAPI interface {
	ListUsers(ctx context.Context, q query.State) (listing.Page[crmclient.User], error)
	GetUser(ctx context.Context, id int) (crmclient.User, error)
	CreateUser(ctx context.Context, form crmclient.UserForm) (string, error)
	UpdateUser(ctx context.Context, id int, form crmclient.UserForm) (string, error)
	DeleteUser(ctx context.Context, id int) (string, error)
	SetDefaultPassword(ctx context.Context, userID int) (string, string, error)
	ListRoles(ctx context.Context, q query.State) (listing.Page[crmclient.Role], error)
}

type Users struct {
	*List[crmclient.User]
	api      UsersAPI
	detail   *detail.Cache[crmclient.User]
	protocol *mutation.Protocol
}

func NewUsers(api UsersAPI, protocol *mutation.Protocol, changed ChangeFunc, logger *zap.Logger) *Users {
	s := &Users{
		List:     newList(NameUsers, api.ListUsers, changed, logger),
		api:      api,
		detail:   detail.NewCache("User", api.GetUser, logger),
		protocol: protocol,
	}
	s.detailView = func() any { return s.detail.Snapshot() }
	return s
}

func (s *Users) Create(ctx context.Context, form crmclient.UserForm) mutation.Result {
	return s.protocol.Run(ctx, mutation.Request{
		Action:         "create user",
		Submit:         func(ctx context.Context) (string, error) { return s.api.CreateUser(ctx, form) },
		RefreshList:    s.refreshList,
		Form:           s.form,
		SuccessMessage: "User created successfully",
		FailureMessage: "Failed to create user",
	})
}

func (s *Users) Update(ctx context.Context, id int, form crmclient.UserForm) mutation.Result {
	return s.protocol.Run(ctx, mutation.Request{
		Action:         "update user",
		Submit:         func(ctx context.Context) (string, error) { return s.api.UpdateUser(ctx, id, form) },
		ReloadDetail:   reloadIfOpen(s.detail, id, func() { s.notify(PartDetail) }),
		RefreshList:    s.refreshList,
		Form:           s.form,
		SuccessMessage: "User updated successfully",
		FailureMessage: "Failed to update user",
	})
}

func (s *Users) Delete(ctx context.Context, id int) mutation.Result {
	return s.protocol.Run(ctx, mutation.Request{
		Action:         "delete user",
		Submit:         func(ctx context.Context) (string, error) { return s.api.DeleteUser(ctx, id) },
		ReloadDetail:   closeIfOpen(s.detail, id, func() { s.notify(PartDetail) }),
		RefreshList:    s.refreshList,
		SuccessMessage: "User deleted successfully",
		FailureMessage: "Failed to delete user",
	})
}

// ResetPassword выдаёт пользователю временный пароль. Пароль возвращается
// только вызывающему и не попадает в тост.
func (s *Users) ResetPassword(ctx context.Context, id int) (mutation.Result, string) {
	var password string
	res := s.protocol.Run(ctx, mutation.Request{
		Action: "reset user password",
		Submit: func(ctx context.Context) (string, error) {
			pwd, msg, err := s.api.SetDefaultPassword(ctx, id)
			password = pwd
			return msg, err
		},
		SuccessMessage: "Password has been reset",
		FailureMessage: "Failed to reset password",
	})
	return res, password
}

func (s *Users) OpenDetail(ctx context.Context, id int) View {
	s.detail.Open(ctx, id)
	s.notify(PartDetail)
	return s.View()
}

func (s *Users) CloseDetail() {
	s.detail.Close()
	s.notify(PartDetail)
}

// RoleOptions - роли для выпадающего списка формы пользователя.
func (s *Users) RoleOptions(ctx context.Context) ([]crmclient.Role, error) {
	page, err := s.api.ListRoles(ctx, query.New().SetLimit(100))
	if err != nil {
		return nil, err
	}
	return page.Rows, nil
}

func (s *Users) Unmount() {
	s.detail.Close()
	s.List.Unmount()
}

func reloadIfOpen[T any](cache *detail.Cache[T], id int, after func()) func(context.Context) {
	return func(ctx context.Context) {
		if cache.CurrentID() == id {
			cache.Reload(ctx)
			after()
		}
	}
}

func closeIfOpen[T any](cache *detail.Cache[T], id int, after func()) func(context.Context) {
	return func(context.Context) {
		if cache.CurrentID() == id {
			cache.Close()
			after()
		}
	}
}
