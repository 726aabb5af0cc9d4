// Package sync keeps an in-memory entity list consistent with the remote
// store. One Synchronizer is instantiated per page view and entity type
// (drivers, routes, orders); the CRUD contract is identical for all three.
package sync

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	gosync "sync"

	"github.com/greencart/console/internal/api"
)

// ErrBusy is returned when a mutation is requested while another mutation is
// still in flight. The caller should have disabled the triggering control.
var ErrBusy = errors.New("sync: another change is still in flight")

// Client is the slice of the API boundary a Synchronizer needs.
// *api.Client satisfies it.
type Client interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Put(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string) error
}

// Resource describes one entity collection.
type Resource[E any] struct {
	// Path is the collection endpoint, e.g. "/drivers".
	Path string
	// ID returns the server-assigned id of an entity.
	ID func(E) string
	// Immutable lists JSON fields that must never appear in an outgoing
	// patch, even if the form submitted them (routeId, orderId).
	Immutable []string
	// Label names the entity in error messages ("driver", "route", "order").
	Label string
}

// Confirm is the explicit confirmation step required before a removal.
// Remove is a no-op unless it returns true.
type Confirm func(entity any) bool

// Synchronizer mirrors one remote collection. The local list is only ever
// changed after the server confirms: a failed call leaves it untouched, and
// a failed load keeps the previous (stale but available) list.
type Synchronizer[E any] struct {
	client Client
	res    Resource[E]

	mu     gosync.Mutex
	items  []E
	loaded bool // first load has resolved (success or failure)
	gen    int  // load generation; stale responses are dropped
	busy   bool // one mutation in flight at a time
	errMsg string
}

// New creates a Synchronizer for the given resource.
func New[E any](client Client, res Resource[E]) *Synchronizer[E] {
	return &Synchronizer[E]{client: client, res: res}
}

// Load fetches the full collection and replaces the local list wholesale.
// On failure the previous list stays available and Err carries a message.
// A response that arrives after a newer Load (or after Reset) is discarded.
func (s *Synchronizer[E]) Load(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	var fetched []E
	err := s.client.Get(ctx, s.res.Path, &fetched)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		// A newer load superseded this one; its result no longer belongs
		// to any mounted view.
		return err
	}
	s.loaded = true
	if err != nil {
		s.errMsg = api.Reason(err, fmt.Sprintf("Failed to load %ss", s.res.Label))
		return err
	}
	s.items = fetched
	s.errMsg = ""
	return nil
}

// Create submits a draft and, only on success, appends the server-returned
// entity (carrying the authoritative id) to the end of the list.
func (s *Synchronizer[E]) Create(ctx context.Context, draft E) (E, error) {
	var created E
	if err := s.begin(); err != nil {
		return created, err
	}
	defer s.end()

	if err := s.client.Post(ctx, s.res.Path, draft, &created); err != nil {
		s.setErr(api.Reason(err, fmt.Sprintf("Failed to save %s", s.res.Label)))
		return created, err
	}

	s.mu.Lock()
	s.items = append(s.items, created)
	s.errMsg = ""
	s.mu.Unlock()
	return created, nil
}

// Update submits a patch for one entity and, on success, merges it into the
// matching entry in place: list length and order are untouched, and fields
// absent from the patch keep their values. Immutable fields are stripped
// from the outgoing patch.
func (s *Synchronizer[E]) Update(ctx context.Context, id string, patch map[string]any) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	outgoing := make(map[string]any, len(patch))
	for k, v := range patch {
		outgoing[k] = v
	}
	for _, field := range s.res.Immutable {
		delete(outgoing, field)
	}

	if err := s.client.Put(ctx, s.entityPath(id), outgoing, nil); err != nil {
		s.setErr(api.Reason(err, fmt.Sprintf("Failed to save %s", s.res.Label)))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.res.ID(s.items[i]) != id {
			continue
		}
		merged, err := mergePatch(s.items[i], outgoing)
		if err != nil {
			return fmt.Errorf("sync: merge %s %s: %w", s.res.Label, id, err)
		}
		s.items[i] = merged
		break
	}
	s.errMsg = ""
	return nil
}

// Remove deletes one entity after the confirmation step is affirmed.
// Without confirmation it is a no-op on both the server and the list.
func (s *Synchronizer[E]) Remove(ctx context.Context, id string, confirm Confirm) error {
	s.mu.Lock()
	var target *E
	for i := range s.items {
		if s.res.ID(s.items[i]) == id {
			target = &s.items[i]
			break
		}
	}
	s.mu.Unlock()
	if target == nil {
		return fmt.Errorf("sync: no %s with id %s", s.res.Label, id)
	}
	if confirm == nil || !confirm(*target) {
		return nil
	}

	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if err := s.client.Delete(ctx, s.entityPath(id)); err != nil {
		s.setErr(api.Reason(err, fmt.Sprintf("Failed to delete %s", s.res.Label)))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, item := range s.items {
		if s.res.ID(item) != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.errMsg = ""
	return nil
}

// Items returns a copy of the current list in display order: insertion order
// from the last successful load, adjusted by later creates and removes.
func (s *Synchronizer[E]) Items() []E {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]E, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the current list length.
func (s *Synchronizer[E]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Loading reports whether the first load is still outstanding. Views show a
// loading indicator until it flips; later background refreshes do not.
func (s *Synchronizer[E]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.loaded
}

// Busy reports whether a mutation is in flight, so the UI can disable the
// control that issued it.
func (s *Synchronizer[E]) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Err returns the message from the most recent failed operation, or "".
func (s *Synchronizer[E]) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Reset invalidates any in-flight load (its response will be discarded) and
// clears the error. Used when the owning view unmounts.
func (s *Synchronizer[E]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.errMsg = ""
}

func (s *Synchronizer[E]) entityPath(id string) string {
	return s.res.Path + "/" + url.PathEscape(id)
}

func (s *Synchronizer[E]) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

func (s *Synchronizer[E]) end() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *Synchronizer[E]) setErr(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}
