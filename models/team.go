package models

import (
	"regexp"
	"strings"
)

// rankAnnotation matches trailing numeric parentheticals like "(3)" used for
// tournament seeds and poll ranks. Non-numeric qualifiers such as "(OH)" or
// "(FL)" are real parts of a team name and must survive canonicalization.
var rankAnnotation = regexp.MustCompile(`\s*\(\d+\)\s*$`)

// miamiQualifier matches the campus qualifiers that distinguish the two Miamis.
var miamiQualifier = regexp.MustCompile(`\((OH|FL)\)`)

// nameReplacement is one entry of the known-variant table. Replacements are
// applied exact-match or suffix-anchored on a token boundary, never as free
// substring rewrites.
type nameReplacement struct {
	variant   string
	canonical string
}

// teamNameReplacements maps common abbreviations and misspellings to canonical
// spellings. Longer variants come before their prefixes so "Michigan St."
// never falls through to a shorter entry.
var teamNameReplacements = []nameReplacement{
	{"Michigan St.", "Michigan State"},
	{"Michigan St", "Michigan State"},
	{"Mississippi St.", "Mississippi State"},
	{"Mississippi St", "Mississippi State"},
	{"Miss. State", "Mississippi State"},
	{"Miss State", "Mississippi State"},
	{"Ohio St.", "Ohio State"},
	{"Ohio St", "Ohio State"},
	{"N. Carolina", "North Carolina"},
	{"Illionois", "Illinois"},
}

// CanonicalTeamName normalizes a free-text team name so that any two spellings
// of the same team compare equal. It is total: unrecognized input passes
// through trimmed, and the function is idempotent.
func CanonicalTeamName(raw string) string {
	name := strings.TrimSpace(strings.ReplaceAll(raw, "**", ""))
	if name == "" {
		return ""
	}

	// A bare "Miami" defaults to the Florida school unless already qualified.
	if strings.HasPrefix(name, "Miami") && !miamiQualifier.MatchString(name) {
		if rankAnnotation.ReplaceAllString(name, "") == "Miami" {
			return "Miami (FL)"
		}
	}

	name = strings.TrimSpace(rankAnnotation.ReplaceAllString(name, ""))

	for _, r := range teamNameReplacements {
		if name == r.variant {
			return r.canonical
		}
		if strings.HasSuffix(name, r.variant) {
			cut := len(name) - len(r.variant)
			if name[cut-1] == ' ' {
				return name[:cut] + r.canonical
			}
		}
	}

	return name
}

// SameTeam reports whether two raw team names refer to the same team under
// canonicalization. Both sides are always canonicalized; comparing a raw name
// against an already-canonical one directly is a bug.
func SameTeam(a, b string) bool {
	return CanonicalTeamName(a) == CanonicalTeamName(b)
}
