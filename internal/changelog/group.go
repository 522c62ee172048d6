package changelog

import "strings"

// Well-known group names. The kind→group table may map commit kinds to any
// of these or to user-defined names; the names below are the ones the
// resolver itself can produce regardless of table contents.
const (
	GroupSecurity = "Security"
	GroupChore    = "Chore"
	GroupUnknown  = "Unknown"
)

// ResolveGroup maps a classified commit to the display group it belongs
// to. Commits without a kind fall into "Unknown". A chore kind is handled
// before the table lookup: chore(deps) is promoted to "Security" so
// dependency bumps surface in the security section, any other chore goes
// to "Chore". All remaining kinds are looked up (lowercased) in the table;
// unmapped kinds fall into "Unknown". The function is pure and total.
func ResolveGroup(commit ConvCommit, table map[string]string) string {
	if commit.Kind == "" {
		return GroupUnknown
	}

	kind := strings.ToLower(commit.Kind)
	if kind == "chore" {
		if commit.Scope == "deps" {
			return GroupSecurity
		}
		return GroupChore
	}

	if group, ok := table[kind]; ok {
		return group
	}
	return GroupUnknown
}
