package editor

import "strings"

// Route is the navigation context an editing screen opens with. A product
// id selects edit mode; its absence selects create mode. The mode is fixed
// for the lifetime of the screen.
type Route struct {
	Edit      bool
	ProductID string
}

// ResolveRoute maps a navigation path onto an editing context. Paths that
// do not name an editing screen resolve to nothing.
func ResolveRoute(path string) (Route, bool) {
	path = strings.Trim(path, "/")
	switch {
	case path == "new-product":
		return Route{}, true
	case strings.HasPrefix(path, "edit-product/"):
		id := strings.TrimPrefix(path, "edit-product/")
		if id == "" {
			return Route{}, false
		}
		return Route{Edit: true, ProductID: id}, true
	default:
		return Route{}, false
	}
}
