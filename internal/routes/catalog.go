package routes

// RouteInfo - защищённый маршрут, который выдаётся ролям через права.
type RouteInfo struct {
	Name  string
	Path  string
	Agent bool // право роли Agent по умолчанию
}

// ProtectedRoutes - маршруты под authMW.Authorize; сидер создаёт по праву на каждый.
var ProtectedRoutes = []RouteInfo{
	{Name: "Set default password", Path: "/auth/app/set-default-pwd"},

	{Name: "Lead list", Path: "/sales/lead-list", Agent: true},
	{Name: "Lead details", Path: "/sales/sales-lead/id", Agent: true},
	{Name: "Create lead", Path: "/sales/create-lead", Agent: true},
	{Name: "Update lead", Path: "/sales/update", Agent: true},
	{Name: "Delete lead", Path: "/sales/delete"},
	{Name: "Assigned leads", Path: "/sales/admin/assigned-list"},
	{Name: "Sales report", Path: "/sales/report"},

	{Name: "User list", Path: "/user/userlist"},
	{Name: "User details", Path: "/user/get-user-by-id"},
	{Name: "Create user", Path: "/user/create-user"},
	{Name: "Update user", Path: "/user/update-user"},
	{Name: "Delete user", Path: "/user/delete-user"},
	{Name: "Agent list", Path: "/user/agent-list", Agent: true},

	{Name: "Role list", Path: "/user/roles"},
	{Name: "Role details", Path: "/user/role-by-id"},
	{Name: "Create role", Path: "/user/create-role"},
	{Name: "Update role", Path: "/user/update-role"},
	{Name: "Delete role", Path: "/user/delete-role"},
	{Name: "Role permissions", Path: "/user/role-permission"},
	{Name: "Add role permission", Path: "/user/add-role-permission"},
	{Name: "Remove role permission", Path: "/user/delete-role-permission"},

	{Name: "Permission list", Path: "/user/permissions"},
	{Name: "Permission details", Path: "/user/permision-by-id"},
	{Name: "Create permission", Path: "/user/create-permission"},
	{Name: "Update permission", Path: "/user/update-permission"},
	{Name: "Delete permission", Path: "/user/delete-permission"},
}
