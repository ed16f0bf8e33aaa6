package users

// NavEntry is one sidebar destination. Visibility is a flat capability
// check on the session role, nothing more.
type NavEntry struct {
	Label     string `json:"label"`
	Path      string `json:"path"`
	AdminOnly bool   `json:"-"`
}

var navEntries = []NavEntry{
	{Label: "Inicio", Path: "/"},
	{Label: "Inventario", Path: "/inventario"},
	{Label: "Pedidos", Path: "/pedidos"},
	{Label: "Reportes", Path: "/reportes"},
	{Label: "Usuarios", Path: "/usuarios", AdminOnly: true},
}
