package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"themargin/internal/pagination"
)

// Users groups the public author handlers.
type Users struct {
	accounts Accounts
	blogs    BlogService
}

// NewUsers creates a new Users handler group.
func NewUsers(accounts Accounts, blogs BlogService) *Users {
	return &Users{accounts: accounts, blogs: blogs}
}

// Profile returns an author with their published post count.
func (u *Users) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := u.accounts.Profile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeResult(w, http.StatusOK, profile)
}

// Posts returns one page of an author's published posts. The page size
// defaults to pagination.DefaultLimit.
func (u *Users) Posts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req, _ := pagination.FromQuery(q.Get("page"), q.Get("limit"))

	page, err := u.blogs.ListByAuthor(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, page)
}
