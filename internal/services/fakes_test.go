package services

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"crm-console/internal/entities"
	apperrors "crm-console/pkg/errors"
	"crm-console/pkg/types"
)

// fakeTx выполняет функцию без реальной транзакции; ошибка функции возвращается как есть.
type fakeTx struct{ calls int }

func (f *fakeTx) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	f.calls++
	return fn(nil)
}

type fakeUserRepo struct {
	users      map[int]*entities.User
	nextID     int
	passwords  map[int]string
	mustChange map[int]bool
	deleted    []int
}

func newFakeUserRepo(users ...*entities.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int]*entities.User{}, nextID: 100, passwords: map[int]string{}, mustChange: map[int]bool{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) List(_ context.Context, _ types.Filter) ([]entities.User, uint64, error) {
	out := make([]entities.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int) (*entities.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) ListByRoles(_ context.Context, roles []string) ([]entities.User, error) {
	out := make([]entities.User, 0)
	for id := 1; id <= r.nextID; id++ {
		u, ok := r.users[id]
		if !ok {
			continue
		}
		for _, role := range roles {
			if u.RoleName == role {
				out = append(out, *u)
			}
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entities.User) (int, error) {
	if _, err := r.FindByEmail(ctx, user.Email); err == nil {
		return 0, apperrors.ErrAlreadyExists
	}
	r.nextID++
	u := *user
	u.ID = r.nextID
	r.users[u.ID] = &u
	return u.ID, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entities.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.users[user.ID].Name = user.Name
	r.users[user.ID].Email = user.Email
	r.users[user.ID].RoleID = user.RoleID
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID int, hash string, mustChange bool) error {
	u, ok := r.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Password = hash
	u.MustChangePassword = mustChange
	r.passwords[userID] = hash
	r.mustChange[userID] = mustChange
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeStatusRepo struct{ statuses []entities.LeadStatus }

func newFakeStatusRepo() *fakeStatusRepo {
	return &fakeStatusRepo{statuses: []entities.LeadStatus{
		{ID: 1, Name: entities.StatusPending},
		{ID: 2, Name: entities.StatusWorking},
		{ID: 3, Name: entities.StatusCompleted},
	}}
}

func (r *fakeStatusRepo) List(_ context.Context) ([]entities.LeadStatus, error) { return r.statuses, nil }

func (r *fakeStatusRepo) FindByID(_ context.Context, id int) (*entities.LeadStatus, error) {
	for i := range r.statuses {
		if r.statuses[i].ID == id {
			return &r.statuses[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeStatusRepo) FindByName(_ context.Context, name string) (*entities.LeadStatus, error) {
	for i := range r.statuses {
		if strings.EqualFold(r.statuses[i].Name, name) {
			return &r.statuses[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

type fakeLeadRepo struct {
	leads  map[int]*entities.Lead
	nextID int
}

func newFakeLeadRepo(leads ...*entities.Lead) *fakeLeadRepo {
	r := &fakeLeadRepo{leads: map[int]*entities.Lead{}, nextID: 50}
	for _, l := range leads {
		r.leads[l.ID] = l
	}
	return r
}

func (r *fakeLeadRepo) List(_ context.Context, filter types.Filter) ([]entities.Lead, uint64, error) {
	out := make([]entities.Lead, 0)
	for _, l := range r.leads {
		out = append(out, *l)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeLeadRepo) FindByID(_ context.Context, id int) (*entities.Lead, error) {
	if l, ok := r.leads[id]; ok {
		return l, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeLeadRepo) LockStatusInTx(_ context.Context, _ pgx.Tx, id int) (int, error) {
	if l, ok := r.leads[id]; ok {
		return l.StatusID, nil
	}
	return 0, apperrors.ErrNotFound
}

func (r *fakeLeadRepo) CreateInTx(_ context.Context, _ pgx.Tx, lead *entities.Lead) (int, error) {
	r.nextID++
	l := *lead
	l.ID = r.nextID
	r.leads[l.ID] = &l
	return l.ID, nil
}

func (r *fakeLeadRepo) UpdateInTx(_ context.Context, _ pgx.Tx, lead *entities.Lead) error {
	if _, ok := r.leads[lead.ID]; !ok {
		return apperrors.ErrNotFound
	}
	l := *lead
	r.leads[lead.ID] = &l
	return nil
}

func (r *fakeLeadRepo) UpdateStatusInTx(_ context.Context, _ pgx.Tx, id, statusID, updatedBy int) error {
	l, ok := r.leads[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	l.StatusID = statusID
	l.UpdatedBy.SetValid(updatedBy)
	return nil
}

func (r *fakeLeadRepo) Delete(_ context.Context, id, _ int) error {
	if _, ok := r.leads[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.leads, id)
	return nil
}

type fakeHistoryRepo struct {
	entries []entities.LeadStatusHistory
	err     error
}

func (r *fakeHistoryRepo) CreateInTx(_ context.Context, _ pgx.Tx, entry *entities.LeadStatusHistory) error {
	if r.err != nil {
		return r.err
	}
	e := *entry
	e.ID = len(r.entries) + 1
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeHistoryRepo) ListByLead(_ context.Context, leadID int) ([]entities.LeadStatusHistory, error) {
	out := make([]entities.LeadStatusHistory, 0)
	for _, e := range r.entries {
		if e.LeadID == leadID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakePermissionRepo struct {
	routes map[int][]string
	calls  int
}

func (r *fakePermissionRepo) List(context.Context, types.Filter) ([]entities.Permission, uint64, error) {
	return nil, 0, nil
}
func (r *fakePermissionRepo) FindByID(_ context.Context, id int) (*entities.Permission, error) {
	return &entities.Permission{ID: id}, nil
}
func (r *fakePermissionRepo) Create(context.Context, *entities.Permission) (int, error) {
	return 0, apperrors.ErrAlreadyExists
}
func (r *fakePermissionRepo) Update(context.Context, *entities.Permission) error { return nil }
func (r *fakePermissionRepo) Delete(context.Context, int) error                  { return nil }

func (r *fakePermissionRepo) GetRoutePathsByRoleID(_ context.Context, roleID int) ([]string, error) {
	r.calls++
	return r.routes[roleID], nil
}

type fakeInvalidator struct {
	AuthPermissionServiceInterface
	invalidated []int
}

func (f *fakeInvalidator) InvalidateRolePermissionsCache(_ context.Context, roleIDs ...int) {
	f.invalidated = append(f.invalidated, roleIDs...)
}
