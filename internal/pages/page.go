// Package pages maps the current-view value of a session onto URL paths and
// back, and keeps an in-process navigation history so "back" restores the
// prior view exactly.
package pages

import "github.com/KingCobra-dev/goprompt-sub000/internal/models"

// Page is the sealed set of views the application can show. Each variant
// carries only the parameters needed to reconstruct that view from a URL.
type Page interface {
	page()
}

// Home is the landing view and the fallback for any URL that fails to decode
type Home struct{}

// Explore is the public search/browse view
type Explore struct {
	Query string
}

// Repos lists public repos, optionally restricted to one owner
type Repos struct {
	UserID uint
}

// MyRepo shows the session user's repos
type MyRepo struct {
	UserID uint
}

// MyPrompts shows the session user's prompts across repos
type MyPrompts struct {
	UserID uint
}

// Repo shows a single repo. From records where the user came from so back
// navigation can return there.
type Repo struct {
	RepoID uint
	From   string
}

// Create is the prompt editor. Editing holds an in-memory prompt when the
// editor was opened on an existing one; it is dropped on encode, the one
// deliberately lossy field of the codec.
type Create struct {
	RepoID  uint
	Editing *models.Prompt
}

// Prompt shows a single prompt. From and RepoID are provenance for back
// navigation only; the path segment is the prompt's identity.
type Prompt struct {
	PromptID string
	From     string
	RepoID   uint
}

// Profile shows a user profile, optionally opened on a specific tab
type Profile struct {
	UserID uint
	Tab    string
}

// Settings is the account settings view
type Settings struct{}

// About is the about view
type About struct{}

// Terms is the terms-of-service view
type Terms struct{}

// Privacy is the privacy-policy view
type Privacy struct{}

// Admin is the admin bulk-operations view
type Admin struct{}

func (Home) page()      {}
func (Explore) page()   {}
func (Repos) page()     {}
func (MyRepo) page()    {}
func (MyPrompts) page() {}
func (Repo) page()      {}
func (Create) page()    {}
func (Prompt) page()    {}
func (Profile) page()   {}
func (Settings) page()  {}
func (About) page()     {}
func (Terms) page()     {}
func (Privacy) page()   {}
func (Admin) page()     {}
