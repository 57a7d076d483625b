package features

// GateMapEntry records a concrete surface that a feature gates.
type GateMapEntry struct {
	Feature string
	Surface string
	Notes   string
}

// GateMap is the authoritative map of gated surfaces to feature flags.
var GateMap = []GateMapEntry{
	{
		Feature: AccountFeatures.Name,
		Surface: "internal/gating#Resolve",
		Notes:   "User-class input to the menu permission check",
	},
	{
		Feature: AccountFeatures.Name,
		Surface: "pkg/usermenu/view.go#renderMenu",
		Notes:   "Menu subtree exists only when permitted",
	},
	{
		Feature: LogoutAck.Name,
		Surface: "pkg/usermenu/model.go#logoutDoneMsg",
		Notes:   "Status acknowledgement after logout",
	},
}

// SurfacesFor returns the gated surfaces for a feature.
func SurfacesFor(name string) []string {
	name = normalizeName(name)
	var out []string
	for _, e := range GateMap {
		if e.Feature == name {
			out = append(out, e.Surface)
		}
	}
	return out
}
