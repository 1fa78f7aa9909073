package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/memoflow/noted/api"
	"github.com/memoflow/noted/common"
)

// Note is the stored representation of a note. Notes are never mutated after
// creation; they are created, read, and deleted.
type Note struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

type FindNoteMessage struct {
	ID *int

	// Search matches case-insensitively against title or content.
	Search *string
	// Tag matches case-sensitively against the note's tag list.
	Tag *string
}

type DeleteNoteMessage struct {
	ID int
}

// Store is the note storage contract. The in-memory store is the default
// backend; store/db provides a sqlite-backed one with the same semantics.
type Store interface {
	CreateNote(ctx context.Context, create *api.CreateNoteRequest) (*Note, error)
	GetNote(ctx context.Context, find *FindNoteMessage) (*Note, error)
	ListNotes(ctx context.Context, find *FindNoteMessage) ([]*Note, error)
	DeleteNote(ctx context.Context, delete *DeleteNoteMessage) error
}

// MemoryStore keeps all notes in a map owned by a single mutex. Ids are
// assigned from a counter that only moves forward, so a deleted id is never
// handed out again.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int
	notes  map[int]*Note
	order  []int
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		notes:  map[int]*Note{},
	}
}

func (s *MemoryStore) CreateNote(ctx context.Context, create *api.CreateNoteRequest) (*Note, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note := &Note{
		ID:        s.nextID,
		Title:     create.Title,
		Content:   create.Content,
		Tags:      cloneTags(create.Tags),
		CreatedAt: time.Now().UTC(),
	}
	s.nextID++
	s.notes[note.ID] = note
	s.order = append(s.order, note.ID)
	return note.clone(), nil
}

func (s *MemoryStore) GetNote(ctx context.Context, find *FindNoteMessage) (*Note, error) {
	list, err := s.ListNotes(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, common.Errorf(common.NotFound, "note not found")
	}
	return list[0], nil
}

func (s *MemoryStore) ListNotes(ctx context.Context, find *FindNoteMessage) ([]*Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*Note, 0)
	for _, id := range s.order {
		note := s.notes[id]
		if note.match(find) {
			list = append(list, note.clone())
		}
	}
	return list, nil
}

func (s *MemoryStore) DeleteNote(ctx context.Context, del *DeleteNoteMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[del.ID]; !ok {
		return common.Errorf(common.NotFound, "note not found")
	}
	delete(s.notes, del.ID)
	for i, id := range s.order {
		if id == del.ID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (n *Note) match(find *FindNoteMessage) bool {
	if find == nil {
		return true
	}
	if v := find.ID; v != nil && n.ID != *v {
		return false
	}
	if v := find.Search; v != nil && *v != "" {
		q := strings.ToLower(*v)
		if !strings.Contains(strings.ToLower(n.Title), q) &&
			!strings.Contains(strings.ToLower(n.Content), q) {
			return false
		}
	}
	if v := find.Tag; v != nil && *v != "" {
		found := false
		for _, tag := range n.Tags {
			if tag == *v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// clone returns a copy so callers never observe or mutate stored state.
func (n *Note) clone() *Note {
	c := *n
	c.Tags = cloneTags(n.Tags)
	return &c
}

func cloneTags(tags []string) []string {
	cloned := make([]string, len(tags))
	copy(cloned, tags)
	return cloned
}
