// Package appstate holds the dashboard's application state: session,
// collections, snippets, selections, and the derived filtered view. It is
// an explicit store passed to whoever needs it — there is no package-level
// singleton. Mutations replace slices rather than editing them in place,
// and the filtered view is recomputed on demand, not on every mutation.
package appstate

import (
	"strings"
	"sync"

	"github.com/NoteLegend/CodeKeep/internal/models"
	"github.com/google/uuid"
)

// Filter narrows the derived snippet view. All parts compose with AND.
type Filter struct {
	FavoritesOnly bool
	Tag           string
	Search        string
}

// State is a point-in-time snapshot of everything the dashboard renders.
type State struct {
	User            *models.User
	Token           string
	IsAuthenticated bool

	Collections        []models.Collection
	SelectedCollection *models.Collection

	Snippets         []models.Snippet
	SelectedSnippet  *models.Snippet
	FilteredSnippets []models.Snippet

	SidebarOpen bool
	Loading     bool
	Err         string
}

type Store struct {
	mu     sync.RWMutex
	state  State
	filter Filter
}

func New() *Store {
	return &Store{
		state: State{SidebarOpen: true},
	}
}

// Snapshot returns a copy of the current state. Slices are copied so the
// caller can iterate without holding the store's lock.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.state
	snap.Collections = append([]models.Collection(nil), s.state.Collections...)
	snap.Snippets = append([]models.Snippet(nil), s.state.Snippets...)
	snap.FilteredSnippets = append([]models.Snippet(nil), s.state.FilteredSnippets...)
	return snap
}

func (s *Store) Filter() Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// --- Session ---

func (s *Store) SetUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = user
	s.state.IsAuthenticated = user != nil
}

func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
}

// Logout clears the session and all server-derived state; UI flags stay.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = nil
	s.state.Token = ""
	s.state.IsAuthenticated = false
	s.state.Collections = nil
	s.state.Snippets = nil
	s.state.FilteredSnippets = nil
	s.state.SelectedCollection = nil
	s.state.SelectedSnippet = nil
	s.filter = Filter{}
}

// --- Collections ---

func (s *Store) SetCollections(collections []models.Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Collections = append([]models.Collection(nil), collections...)
}

func (s *Store) AddCollection(collection models.Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Collections = append(s.state.Collections, collection)
}

func (s *Store) UpdateCollection(updated models.Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Collection, len(s.state.Collections))
	for i, c := range s.state.Collections {
		if c.ID == updated.ID {
			next[i] = updated
		} else {
			next[i] = c
		}
	}
	s.state.Collections = next

	if s.state.SelectedCollection != nil && s.state.SelectedCollection.ID == updated.ID {
		sel := updated
		s.state.SelectedCollection = &sel
	}
}

func (s *Store) DeleteCollection(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Collection, 0, len(s.state.Collections))
	for _, c := range s.state.Collections {
		if c.ID != id {
			next = append(next, c)
		}
	}
	s.state.Collections = next

	if s.state.SelectedCollection != nil && s.state.SelectedCollection.ID == id {
		s.state.SelectedCollection = nil
	}
}

func (s *Store) SelectCollection(collection *models.Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedCollection = collection
}

// --- Snippets ---

func (s *Store) SetSnippets(snippets []models.Snippet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Snippets = append([]models.Snippet(nil), snippets...)
}

// AddSnippet prepends: the list is rendered newest first.
func (s *Store) AddSnippet(snippet models.Snippet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Snippets = append([]models.Snippet{snippet}, s.state.Snippets...)
}

func (s *Store) UpdateSnippet(updated models.Snippet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Snippet, len(s.state.Snippets))
	for i, sn := range s.state.Snippets {
		if sn.ID == updated.ID {
			next[i] = updated
		} else {
			next[i] = sn
		}
	}
	s.state.Snippets = next

	if s.state.SelectedSnippet != nil && s.state.SelectedSnippet.ID == updated.ID {
		sel := updated
		s.state.SelectedSnippet = &sel
	}
}

func (s *Store) DeleteSnippet(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Snippet, 0, len(s.state.Snippets))
	for _, sn := range s.state.Snippets {
		if sn.ID != id {
			next = append(next, sn)
		}
	}
	s.state.Snippets = next

	if s.state.SelectedSnippet != nil && s.state.SelectedSnippet.ID == id {
		s.state.SelectedSnippet = nil
	}
}

func (s *Store) SelectSnippet(snippet *models.Snippet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SelectedSnippet = snippet
}

// ToggleFavorite flips the flag locally, mirroring the server's flip.
func (s *Store) ToggleFavorite(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Snippet, len(s.state.Snippets))
	for i, sn := range s.state.Snippets {
		if sn.ID == id {
			sn.IsFavorite = !sn.IsFavorite
		}
		next[i] = sn
	}
	s.state.Snippets = next

	if s.state.SelectedSnippet != nil && s.state.SelectedSnippet.ID == id {
		sel := *s.state.SelectedSnippet
		sel.IsFavorite = !sel.IsFavorite
		s.state.SelectedSnippet = &sel
	}
}

// --- Filtering ---

// SetFilter stores the filter and recomputes the derived view.
func (s *Store) SetFilter(filter Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = filter
	s.refilterLocked()
}

// Refilter recomputes the derived view against the current snippet list,
// selected collection, and filter.
func (s *Store) Refilter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refilterLocked()
}

func (s *Store) refilterLocked() {
	filtered := make([]models.Snippet, 0, len(s.state.Snippets))

	for _, sn := range s.state.Snippets {
		if s.state.SelectedCollection != nil && sn.CollectionID != s.state.SelectedCollection.ID {
			continue
		}
		if s.filter.FavoritesOnly && !sn.IsFavorite {
			continue
		}
		if s.filter.Tag != "" && !tagMatches(sn.Tags, s.filter.Tag) {
			continue
		}
		if s.filter.Search != "" && !searchMatches(sn, s.filter.Search) {
			continue
		}
		filtered = append(filtered, sn)
	}

	s.state.FilteredSnippets = filtered
}

func tagMatches(tags []string, query string) bool {
	query = strings.ToLower(query)
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func searchMatches(sn models.Snippet, query string) bool {
	query = strings.ToLower(query)
	return strings.Contains(strings.ToLower(sn.Title), query) ||
		strings.Contains(strings.ToLower(sn.Language), query) ||
		strings.Contains(strings.ToLower(sn.Code), query)
}

// --- Derived helpers ---

func (s *Store) Favorites() []models.Snippet {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var favorites []models.Snippet
	for _, sn := range s.state.Snippets {
		if sn.IsFavorite {
			favorites = append(favorites, sn)
		}
	}
	return favorites
}

// AllTags returns the distinct tags across all snippets in first-seen
// order.
func (s *Store) AllTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var tags []string
	for _, sn := range s.state.Snippets {
		for _, tag := range sn.Tags {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// --- UI flags ---

func (s *Store) SetSidebarOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SidebarOpen = open
}

func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = loading
}

func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Err = msg
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Err = ""
}
