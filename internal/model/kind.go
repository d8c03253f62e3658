package model

// Kind describes one record table: how it is routed, stored and named in
// user-facing messages.
type Kind struct {
	Name   string // route segment under /api, e.g. "item"
	Path   string // admin page segment, e.g. "items"
	Table  string
	Noun   string // singular, lower case, as used in messages
	Plural string
	Title  string // singular, capitalised
}

// The two record kinds.
var (
	KindItem = Kind{
		Name:   "item",
		Path:   "items",
		Table:  "items",
		Noun:   "item",
		Plural: "items",
		Title:  "Item",
	}
	KindUser = Kind{
		Name:   "user",
		Path:   "users",
		Table:  "users",
		Noun:   "usuario",
		Plural: "usuarios",
		Title:  "Usuario",
	}
)

// Kinds lists every record kind in display order.
var Kinds = []Kind{KindItem, KindUser}
