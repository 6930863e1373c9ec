package crm

import "strings"

// DefaultPurgeKeywords mark deals created by smoke tests and demos.
var DefaultPurgeKeywords = []string{
	"Tiago", "Test", "Cloud", "Probe", "Check", "Witness", "Crash", "Mock", "Final", "Match",
}

// DefaultProtectedNames are never purged, whatever else their deal name
// contains. Real client records have ended up keyword-matched before.
var DefaultProtectedNames = []string{"sarah", "litowich"}

// SelectPurgeable returns the deals eligible for deletion: keyword match
// selects, protected-name match excludes, and the protected check takes
// precedence over any keyword hit.
func SelectPurgeable(deals []Deal, keywords, protected []string) []Deal {
	var out []Deal
	for _, d := range deals {
		if isProtected(d.Name, protected) {
			continue
		}
		if matchesKeyword(d.Name, keywords) {
			out = append(out, d)
		}
	}
	return out
}

func isProtected(name string, protected []string) bool {
	lower := strings.ToLower(name)
	for _, p := range protected {
		if p != "" && strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func matchesKeyword(name string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
