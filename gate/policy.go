package gate

import (
	"fmt"
	"sort"
	"strings"
)

// wildcardSuffix marks a prefix pattern in route tables, e.g. "/services/*".
const wildcardSuffix = "/*"

// PatternKind distinguishes exact and prefix patterns.
type PatternKind int

const (
	KindExact PatternKind = iota
	KindPrefix
)

// Pattern is one entry of a role's route list.
type Pattern struct {
	Kind PatternKind
	Path string
}

// Exact matches only path itself.
func Exact(path string) Pattern {
	return Pattern{Kind: KindExact, Path: path}
}

// Prefix matches base and every path below it: Prefix("/services") matches
// "/services" and "/services/42" but not "/servicesX".
func Prefix(base string) Pattern {
	return Pattern{Kind: KindPrefix, Path: strings.TrimRight(base, "/")}
}

// ParsePattern turns "/x/*" into Prefix("/x") and anything else into Exact.
func ParsePattern(s string) (Pattern, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "/") {
		return Pattern{}, fmt.Errorf("route pattern %q must start with /", s)
	}
	if strings.HasSuffix(s, wildcardSuffix) {
		base := strings.TrimSuffix(s, wildcardSuffix)
		if strings.Contains(base, "*") {
			return Pattern{}, fmt.Errorf("route pattern %q: wildcard is only allowed as the last segment", s)
		}
		return Prefix(base), nil
	}
	if strings.Contains(s, "*") {
		return Pattern{}, fmt.Errorf("route pattern %q: wildcard is only allowed as the last segment", s)
	}
	return Exact(s), nil
}

// Matches reports whether path is covered by the pattern.
func (p Pattern) Matches(path string) bool {
	switch p.Kind {
	case KindExact:
		return path == p.Path
	case KindPrefix:
		return path == p.Path || strings.HasPrefix(path, p.Path+"/")
	default:
		return false
	}
}

func (p Pattern) String() string {
	if p.Kind == KindPrefix {
		return p.Path + wildcardSuffix
	}
	return p.Path
}

// RoleRoutes maps a role to the patterns it may access. It is built once and
// only read afterwards.
type RoleRoutes map[string][]Pattern

// ParseRoleRoutes builds a table from role -> ["/path", "/prefix/*"] lists.
func ParseRoleRoutes(table map[string][]string) (RoleRoutes, error) {
	routes := make(RoleRoutes, len(table))
	for role, entries := range table {
		patterns := make([]Pattern, 0, len(entries))
		for _, entry := range entries {
			p, err := ParsePattern(entry)
			if err != nil {
				return nil, fmt.Errorf("[Gate ParseRoleRoutes] role %q: %w", role, err)
			}
			patterns = append(patterns, p)
		}
		routes[role] = patterns
	}
	return routes, nil
}

// HasAccess reports whether role may access path. The role's patterns are
// scanned in order and the first match wins; unknown roles match nothing.
func (rr RoleRoutes) HasAccess(role, path string) bool {
	_, ok := rr.Match(role, path)
	return ok
}

// Match returns the first of role's patterns that covers path.
func (rr RoleRoutes) Match(role, path string) (Pattern, bool) {
	for _, p := range rr[role] {
		if p.Matches(path) {
			return p, true
		}
	}
	return Pattern{}, false
}

// Roles returns the configured role names in sorted order.
func (rr RoleRoutes) Roles() []string {
	roles := make([]string, 0, len(rr))
	for role := range rr {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}
