package render

// Menu is the display state of the navigation menu. The zero value is
// hidden.
type Menu struct {
	open bool
}

// MenuParam is the query parameter that carries the open state for
// browsers without JavaScript.
const MenuParam = "menu"

// MenuFromQuery restores the state from the menu query value.
func MenuFromQuery(v string) Menu {
	return Menu{open: v == "open"}
}

// Toggle flips the menu, as a hamburger click does.
func (m *Menu) Toggle() { m.open = !m.open }

// Close hides the menu, as a navigation link click does.
func (m *Menu) Close() { m.open = false }

// Open reports whether the menu is shown.
func (m Menu) Open() bool { return m.open }

// Display is the CSS display value for #nav-menu.
func (m Menu) Display() string {
	if m.open {
		return "flex"
	}
	return "none"
}

// ToggleHref is the hamburger link target: the page in the toggled state.
func (m Menu) ToggleHref() string {
	next := m
	next.Toggle()
	if next.open {
		return "?" + MenuParam + "=open"
	}
	return "?"
}

// LinkHref is a navigation link target. With the menu closed it is a plain
// in-page anchor. With the menu open it also drops the menu parameter, so
// browsers without JavaScript reload with the menu closed.
func (m Menu) LinkHref(anchor string) string {
	if !m.open {
		return "#" + anchor
	}
	return "?#" + anchor
}

// NavLink is one entry in the navigation menu.
type NavLink struct {
	Anchor string
	Label  string
}

// NavLinks are the page sections reachable from the menu.
var NavLinks = []NavLink{
	{Anchor: "artists", Label: "Lineup"},
	{Anchor: "stages", Label: "Stages"},
	{Anchor: "schedule", Label: "Schedule"},
}
