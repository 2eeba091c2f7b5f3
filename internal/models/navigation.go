package models

import "fmt"

// Role identifies which portal a user sees
type Role string

const (
	RoleStudent     Role = "student"
	RoleCoordinator Role = "coordinator"
)

// ParseRole converts a raw value into a Role. Empty means student.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case "", RoleStudent:
		return RoleStudent, nil
	case RoleCoordinator:
		return RoleCoordinator, nil
	}
	return "", NewValidationError("role", fmt.Sprintf("unknown role %q", raw))
}

// MenuItem is one sidebar entry
type MenuItem struct {
	Title string `json:"title"`
	Page  string `json:"page"`
	Icon  string `json:"icon"`
}

var studentMenu = []MenuItem{
	{Title: "Início", Page: "home", Icon: "home"},
	{Title: "Projetos Disponíveis", Page: "projects", Icon: "book-open"},
	{Title: "Meus Projetos", Page: "my-projects", Icon: "users"},
	{Title: "Histórico", Page: "history", Icon: "calendar"},
	{Title: "Certificados", Page: "certificates", Icon: "file-text"},
}

// Coordinator pages are listed but not served
var coordinatorMenu = []MenuItem{
	{Title: "Dashboard", Page: "dashboard", Icon: "home"},
	{Title: "Criar Projeto", Page: "create-project", Icon: "plus"},
	{Title: "Meus Projetos", Page: "manage-projects", Icon: "book-open"},
	{Title: "Inscrições", Page: "enrollments", Icon: "users"},
	{Title: "Relatórios", Page: "reports", Icon: "file-text"},
}

// Navigation returns the sidebar menu for role
func Navigation(role Role) []MenuItem {
	src := studentMenu
	if role == RoleCoordinator {
		src = coordinatorMenu
	}
	out := make([]MenuItem, len(src))
	copy(out, src)
	return out
}

// PortalName returns the sidebar subtitle for role
func PortalName(role Role) string {
	if role == RoleCoordinator {
		return "Portal do Coordenador"
	}
	return "Portal do Estudante"
}

// PageTitle returns the header title for a student page
func PageTitle(page string) string {
	switch page {
	case "projects":
		return "Projetos Disponíveis"
	case "my-projects":
		return "Meus Projetos"
	case "history":
		return "Histórico"
	case "certificates":
		return "Certificados"
	default:
		return "Projetos de Extensão"
	}
}
