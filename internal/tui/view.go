package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"crm-console/internal/console/detail"
	"crm-console/internal/crmclient"
	"crm-console/internal/events"
)

func (m Model) View() string {
	var body string
	switch m.phase {
	case phaseLogin:
		body = m.renderForm("Sign in", []string{"Email", "Password"}, m.login)
	case phaseChangePassword:
		body = m.renderForm("Change password", []string{"Current", "New", "Confirm"}, m.password)
	case phaseLeads, phaseSearch:
		body = m.renderLeads()
	case phaseDetail, phaseStatus:
		body = m.renderDetail()
	}

	parts := []string{titleStyle.Render("CRM Console"), body}
	if line := m.renderStatusLine(); line != "" {
		parts = append(parts, line)
	}
	parts = append(parts, m.help.View(m.helpFor()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderStatusLine() string {
	var out []string
	if m.busy() {
		out = append(out, m.spinner.View()+" loading")
	}
	if m.err != "" {
		out = append(out, errorStyle.Render(m.err))
	} else if m.toast != "" {
		style := okStyle
		if m.toastKind == events.ToastFailure {
			style = errorStyle
		}
		out = append(out, style.Render(m.toast))
	}
	return strings.Join(out, "  ")
}

func (m Model) renderFieldErrors() string {
	if len(m.fieldErrors) == 0 {
		return ""
	}
	names := make([]string, 0, len(m.fieldErrors))
	for name := range m.fieldErrors {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("%s: %s", name, m.fieldErrors[name])))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderForm(title string, labels []string, inputs []textinput.Model) string {
	rows := []string{titleStyle.Render(title), ""}
	for i, in := range inputs {
		rows = append(rows, labelStyle.Render(labels[i])+in.View())
	}
	if errs := m.renderFieldErrors(); errs != "" {
		rows = append(rows, "", errs)
	}
	return panelStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) renderLeads() string {
	if m.board == nil {
		return ""
	}
	q, res := m.board.Query(), m.board.Result()

	summary := []string{fmt.Sprintf("Page %d of %d", max(q.Page, 1), max(res.TotalPages, 1))}
	if q.Search != "" {
		summary = append(summary, fmt.Sprintf("search %q", q.Search))
	}
	if q.StatusFilter != "" {
		summary = append(summary, "status "+q.StatusFilter)
	}
	if len(q.Sort) == 1 {
		summary = append(summary, fmt.Sprintf("sort %s %s", q.Sort[0].Field, q.Sort[0].Order))
	}
	header := mutedStyle.Render(strings.Join(summary, " | "))

	parts := []string{header}
	if m.phase == phaseSearch {
		parts = append(parts, "Search: "+m.search.View())
	}
	switch {
	case res.Error != "":
		parts = append(parts, errorStyle.Render(res.Error))
	case len(res.Rows) == 0 && !res.Loading:
		parts = append(parts, mutedStyle.Render("No leads found"))
	}
	parts = append(parts, m.table.View())
	return strings.Join(parts, "\n")
}

func field(label, value string) string {
	if value == "" {
		value = mutedStyle.Render("-")
	}
	return labelStyle.Render(label) + value
}

func address(l *crmclient.Lead) string {
	var parts []string
	for _, p := range []string{l.AddressHouse, l.AddressStreet, l.AddressCity, l.AddressPostcode, l.AddressCountry} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func (m Model) renderDetail() string {
	snap := m.board.Detail()
	switch snap.Phase {
	case detail.PhaseLoading:
		if snap.Record == nil {
			return panelStyle.Render(m.spinner.View() + " loading lead")
		}
	case detail.PhaseNotFound:
		return panelStyle.Render(mutedStyle.Render("Lead not found"))
	case detail.PhaseError:
		return panelStyle.Render(errorStyle.Render(snap.Error))
	}
	if snap.Record == nil {
		return ""
	}
	l := snap.Record

	rows := []string{
		titleStyle.Render(l.Title),
		field("Status", l.Status),
		field("Source", l.Source),
		field("Contact", l.ContactName),
		field("Email", l.ContactEmail),
		field("Phone", l.ContactPhone),
		field("Assigned to", l.AssignedToName),
		field("Created by", l.CreatedByName),
		field("Address", address(l)),
		field("Description", l.Description),
		field("Note", l.Note),
		"",
		titleStyle.Render("History"),
	}
	if len(l.Tracker) == 0 {
		rows = append(rows, mutedStyle.Render("No status changes yet"))
	}
	for _, e := range l.Tracker {
		line := fmt.Sprintf("%s  %s -> %s  by %s", e.CreatedAt, e.OldStatus, e.NewStatus, e.ChangedBy)
		if e.Comment != "" {
			line += ": " + e.Comment
		}
		rows = append(rows, line)
	}

	if m.phase == phaseStatus {
		rows = append(rows, "", titleStyle.Render("Change status"))
		for i, st := range m.statuses {
			if i == m.statusCursor {
				rows = append(rows, selectedStatusStyle.Render("> "+st.Name))
			} else {
				rows = append(rows, "  "+st.Name)
			}
		}
		rows = append(rows, "Comment: "+m.comment.View())
		if errs := m.renderFieldErrors(); errs != "" {
			rows = append(rows, errs)
		}
	}
	return panelStyle.Render(strings.Join(rows, "\n"))
}
