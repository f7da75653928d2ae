package normalize

import (
	"sort"
	"strings"
)

// FallbackRoleKey is the credit key used for roles missing from the ontology
// table. The mapping is total: every role string lands on some key.
const FallbackRoleKey = "contributedTo"

// roleKeys maps canonicalized lowercase role names to the semantic credit
// keys used in issue note headers.
var roleKeys = map[string]string{
	"writer":       "writtenBy",
	"script":       "writtenBy",
	"creator":      "createdBy",
	"penciler":     "penciler",
	"penciller":    "penciler",
	"artist":       "artist",
	"inker":        "inker",
	"colorist":     "colorist",
	"colourist":    "colorist",
	"letterer":     "letterer",
	"editor":       "editor",
	"cover artist": "coverArtist",
	"cover":        "coverArtist",
	"translator":   "translatedBy",
}

// roleKeyRank orders credit keys in rendered headers: writer first, then the
// rest of the classic credit block. Keys not listed sort alphabetically
// after all listed ones.
var roleKeyRank = map[string]int{
	"writtenBy":    0,
	"createdBy":    1,
	"penciler":     2,
	"artist":       3,
	"inker":        4,
	"colorist":     5,
	"letterer":     6,
	"editor":       7,
	"coverArtist":  8,
	"translatedBy": 9,
}

// roleParents is the role-concept hierarchy. It is static and shallow today,
// but resolution still walks it with a cycle guard in case an edit ever
// introduces a loop.
var roleParents = map[string]string{
	"Penciler":     "Artist",
	"Penciller":    "Artist",
	"Inker":        "Artist",
	"Colorist":     "Artist",
	"Colourist":    "Artist",
	"Cover Artist": "Artist",
}

// CanonicalizeRole trims a single role segment, capitalizes the first letter
// of each word, and rejoins the words with single spaces. It is idempotent.
func CanonicalizeRole(role string) string {
	words := strings.Fields(role)
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// CanonicalizeRoles splits a raw credit role string on commas and
// canonicalizes each segment. Segments that are empty after trimming are
// discarded.
func CanonicalizeRoles(raw string) []string {
	var roles []string
	for _, segment := range strings.Split(raw, ",") {
		role := CanonicalizeRole(segment)
		if role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}

// RoleKey maps a role name to its semantic credit key. Unknown roles map to
// FallbackRoleKey.
func RoleKey(role string) string {
	if key, ok := roleKeys[strings.ToLower(strings.TrimSpace(role))]; ok {
		return key
	}
	return FallbackRoleKey
}

// RoleParent returns the parent concept of a role, if it has one.
func RoleParent(role string) (string, bool) {
	parent, ok := roleParents[role]
	return parent, ok
}

// SortRoleKeys orders credit keys by the fixed priority list, with unlisted
// keys alphabetical after all listed ones. The input is sorted in place and
// returned for convenience.
func SortRoleKeys(keys []string) []string {
	sort.SliceStable(keys, func(i, j int) bool {
		ri, iok := roleKeyRank[keys[i]]
		rj, jok := roleKeyRank[keys[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		case jok:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
