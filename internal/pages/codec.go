package pages

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Location is a URL split into the two parts the codec works with
type Location struct {
	Path  string
	Query url.Values
}

// String renders the location as a relative URL
func (l Location) String() string {
	if len(l.Query) == 0 {
		return l.Path
	}
	return l.Path + "?" + l.Query.Encode()
}

// ParseLocation splits a relative URL into path and query. Malformed query
// strings yield an empty query rather than an error; Decode is total anyway.
func ParseLocation(raw string) Location {
	path := raw
	query := url.Values{}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		path = raw[:i]
		if q, err := url.ParseQuery(raw[i+1:]); err == nil {
			query = q
		}
	}
	return Location{Path: path, Query: query}
}

// Encode maps a page to its canonical URL. Deterministic: one path template
// per variant, optional fields appear in the query only when set.
func Encode(p Page) Location {
	q := url.Values{}
	switch p := p.(type) {
	case Home:
		return Location{Path: "/", Query: q}
	case Explore:
		if p.Query != "" {
			q.Set("q", p.Query)
		}
		return Location{Path: "/explore", Query: q}
	case Repos:
		if p.UserID != 0 {
			q.Set("userId", formatUint(p.UserID))
		}
		return Location{Path: "/repos", Query: q}
	case MyRepo:
		if p.UserID != 0 {
			q.Set("userId", formatUint(p.UserID))
		}
		return Location{Path: "/my-repo", Query: q}
	case MyPrompts:
		if p.UserID != 0 {
			q.Set("userId", formatUint(p.UserID))
		}
		return Location{Path: "/my-prompts", Query: q}
	case Repo:
		if p.From != "" {
			q.Set("from", p.From)
		}
		return Location{Path: "/repo/" + formatUint(p.RepoID), Query: q}
	case Create:
		// p.Editing is intentionally dropped: an in-memory prompt has no
		// URL representation.
		if p.RepoID != 0 {
			q.Set("repoId", formatUint(p.RepoID))
		}
		return Location{Path: "/create", Query: q}
	case Prompt:
		if p.From != "" {
			q.Set("from", p.From)
		}
		if p.RepoID != 0 {
			q.Set("repoId", formatUint(p.RepoID))
		}
		return Location{Path: "/prompt/" + p.PromptID, Query: q}
	case Profile:
		if p.Tab != "" {
			q.Set("tab", p.Tab)
		}
		return Location{Path: "/profile/" + formatUint(p.UserID), Query: q}
	case Settings:
		return Location{Path: "/settings", Query: q}
	case About:
		return Location{Path: "/about", Query: q}
	case Terms:
		return Location{Path: "/terms", Query: q}
	case Privacy:
		return Location{Path: "/privacy", Query: q}
	case Admin:
		return Location{Path: "/admin-bulk-ops", Query: q}
	}
	return Location{Path: "/", Query: q}
}

// Decode maps a URL back to a page. Total: unknown or malformed input
// decodes to Home, never an error. The first path segment selects the
// variant, the second supplies the primary id; the path always wins over a
// query parameter carrying the same value.
func Decode(path string, query url.Values) Page {
	segments := splitPath(path)
	if len(segments) == 0 {
		return Home{}
	}

	switch segments[0] {
	case "explore":
		if len(segments) > 1 {
			return Home{}
		}
		return Explore{Query: query.Get("q")}
	case "repos":
		if len(segments) > 1 {
			return Home{}
		}
		return Repos{UserID: parseUint(query.Get("userId"))}
	case "my-repo":
		if len(segments) > 1 {
			return Home{}
		}
		return MyRepo{UserID: parseUint(query.Get("userId"))}
	case "my-prompts":
		if len(segments) > 1 {
			return Home{}
		}
		return MyPrompts{UserID: parseUint(query.Get("userId"))}
	case "repo":
		if len(segments) != 2 {
			return Home{}
		}
		id := parseUint(segments[1])
		if id == 0 {
			return Home{}
		}
		return Repo{RepoID: id, From: query.Get("from")}
	case "create":
		if len(segments) > 1 {
			return Home{}
		}
		return Create{RepoID: parseUint(query.Get("repoId"))}
	case "prompt":
		if len(segments) != 2 || segments[1] == "" {
			return Home{}
		}
		return Prompt{
			PromptID: segments[1],
			From:     query.Get("from"),
			RepoID:   parseUint(query.Get("repoId")),
		}
	case "profile":
		if len(segments) != 2 {
			return Home{}
		}
		id := parseUint(segments[1])
		if id == 0 {
			return Home{}
		}
		return Profile{UserID: id, Tab: query.Get("tab")}
	case "settings":
		if len(segments) > 1 {
			return Home{}
		}
		return Settings{}
	case "about":
		if len(segments) > 1 {
			return Home{}
		}
		return About{}
	case "terms":
		if len(segments) > 1 {
			return Home{}
		}
		return Terms{}
	case "privacy":
		if len(segments) > 1 {
			return Home{}
		}
		return Privacy{}
	case "admin-bulk-ops":
		if len(segments) > 1 {
			return Home{}
		}
		return Admin{}
	}

	return Home{}
}

// DecodeLocation is Decode applied to a Location
func DecodeLocation(l Location) Page {
	return Decode(l.Path, l.Query)
}

func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func formatUint(v uint) string {
	return fmt.Sprintf("%d", v)
}

func parseUint(s string) uint {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}
