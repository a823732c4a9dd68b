package seeders

import "crm-console/internal/entities"

var statusesData = []string{
	entities.StatusPending,
	entities.StatusWorking,
	entities.StatusCompleted,
}

var rolesData = []string{
	entities.RoleAdmin,
	entities.RoleAgent,
}

const demoAgentPassword = "Agent#Pass2024"

var demoAgents = []struct {
	Name  string
	Email string
}{
	{Name: "Alice Agent", Email: "alice.agent@example.com"},
	{Name: "Bob Agent", Email: "bob.agent@example.com"},
}

var demoLeads = []struct {
	Title       string
	ContactName string
	Email       string
	Phone       string
	Source      string
	City        string
	Status      string
	AgentIdx    int // индекс в demoAgents, -1 - не назначен
}{
	{"Website redesign", "Jane Cooper", "jane@acme.test", "+1 555 0101", "Website", "Austin", entities.StatusPending, 0},
	{"CRM migration", "Wade Warren", "wade@globex.test", "+1 555 0102", "Referral", "Denver", entities.StatusWorking, 0},
	{"Support contract", "Esther Howard", "esther@initech.test", "+1 555 0103", "Cold call", "Boston", entities.StatusCompleted, 1},
	{"Mobile app pilot", "Cameron Williamson", "cameron@umbrella.test", "+1 555 0104", "Exhibition", "Seattle", entities.StatusPending, -1},
}
