package server

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ncobase/envelope/paging"
)

// ErrWidgetNotFound is returned for unknown widget ids.
var ErrWidgetNotFound = errors.New("widget not found")

// ErrWidgetLocked is returned when mutating a locked widget.
var ErrWidgetLocked = errors.New("widget is locked")

// Widget is the demo domain object.
type Widget struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	Quantity  int       `json:"quantity"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WidgetBody is the create and update payload.
type WidgetBody struct {
	Name     string `json:"name" validate:"required,min=2,max=64"`
	Color    string `json:"color" validate:"omitempty,oneof=red green blue"`
	Quantity int    `json:"quantity" validate:"gte=0,lte=10000"`
}

// Store is an in-memory widget store ordered by creation time.
type Store struct {
	mu    sync.RWMutex
	items map[string]*Widget
	order []*Widget
	last  time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{items: make(map[string]*Widget)}
}

// now returns a strictly increasing timestamp so cursors never collide. Caller holds mu.
func (s *Store) now() time.Time {
	t := time.Now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Nanosecond)
	}
	s.last = t
	return t
}

// Create stores a new widget.
func (s *Store) Create(body WidgetBody) *Widget {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.now()
	w := &Widget{
		ID:        uuid.NewString(),
		Name:      body.Name,
		Color:     body.Color,
		Quantity:  body.Quantity,
		CreatedAt: t,
		UpdatedAt: t,
	}
	s.items[w.ID] = w
	s.order = append(s.order, w)
	return w
}

// Get returns a copy of the widget with id.
func (s *Store) Get(id string) (Widget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.items[id]
	if !ok {
		return Widget{}, ErrWidgetNotFound
	}
	return *w, nil
}

// Update replaces the mutable fields of a widget.
func (s *Store) Update(id string, body WidgetBody) (Widget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.items[id]
	if !ok {
		return Widget{}, ErrWidgetNotFound
	}
	if w.Locked {
		return *w, ErrWidgetLocked
	}
	w.Name = body.Name
	w.Color = body.Color
	w.Quantity = body.Quantity
	w.UpdatedAt = s.now()
	return *w, nil
}

// Lock marks a widget read-only.
func (s *Store) Lock(id string) (Widget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.items[id]
	if !ok {
		return Widget{}, ErrWidgetNotFound
	}
	if w.Locked {
		return *w, ErrWidgetLocked
	}
	w.Locked = true
	w.UpdatedAt = s.now()
	return *w, nil
}

// Delete removes a widget.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrWidgetNotFound
	}
	delete(s.items, id)
	for i, w := range s.order {
		if w.ID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns up to limit widgets starting at offset, and the total count.
func (s *Store) List(offset, limit int) ([]Widget, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.order)
	if offset >= total {
		return []Widget{}, total
	}
	end := min(offset+limit, total)
	out := make([]Widget, 0, end-offset)
	for _, w := range s.order[offset:end] {
		out = append(out, *w)
	}
	return out, total
}

// After returns up to limit widgets created after the cursor. It satisfies
// paging.PagingFunc; the next cursor points at the last item of the trimmed page.
func (s *Store) After(cursor string, limit int) ([]Widget, int, string, error) {
	var after time.Time
	if cursor != "" {
		t, err := paging.DecodeCursor(cursor)
		if err != nil {
			return nil, 0, "", err
		}
		after = t
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	start := sort.Search(len(s.order), func(i int) bool {
		return s.order[i].CreatedAt.After(after)
	})

	out := make([]Widget, 0, limit)
	for _, w := range s.order[start:] {
		if len(out) == limit {
			break
		}
		out = append(out, *w)
	}

	next := ""
	if len(out) == limit && limit > 1 {
		next = paging.EncodeCursor(out[limit-2].CreatedAt)
	}
	return out, len(s.order), next, nil
}

// Stats summarizes the stored widgets.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Total: len(s.order), ByColor: map[string]int{}}
	for _, w := range s.order {
		st.Quantity += w.Quantity
		if w.Locked {
			st.Locked++
		}
		if w.Color != "" {
			st.ByColor[w.Color]++
		}
	}
	return st
}

// Stats converts itself to plain response data.
type Stats struct {
	Total    int
	Locked   int
	Quantity int
	ByColor  map[string]int
}

// ToArray implements resp.Arrayable
func (s Stats) ToArray() any {
	return map[string]any{
		"total":    s.Total,
		"locked":   s.Locked,
		"quantity": s.Quantity,
		"by_color": s.ByColor,
	}
}
