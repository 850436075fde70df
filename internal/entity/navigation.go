package entity

// NavItem é uma entrada da barra lateral do painel.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}

var (
	navDashboard = NavItem{Label: "Tableau de bord", Path: "/dashboard", Icon: "layout-dashboard"}
	navLeads     = NavItem{Label: "Mes Leads", Path: "/leads", Icon: "users"}
	navNewLead   = NavItem{Label: "Nouveau Lead", Path: "/leads/new", Icon: "file-text"}
	navSettings  = NavItem{Label: "Paramètres", Path: "/profile", Icon: "settings"}
)

// BuildNavigation monta a navegação visível para o status informado.
// Dashboard sempre primeiro, Paramètres sempre último; as entradas de leads
// só aparecem para contas validadas.
func BuildNavigation(status VerificationStatus) []NavItem {
	items := make([]NavItem, 0, 4)
	items = append(items, navDashboard)
	if status == StatusValidated {
		items = append(items, navLeads, navNewLead)
	}
	return append(items, navSettings)
}
