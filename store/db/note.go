package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/memoflow/noted/api"
	"github.com/memoflow/noted/common"
	"github.com/memoflow/noted/store"
)

type noteRaw struct {
	ID        int
	Title     string
	Content   string
	Tags      string
	CreatedTs int64
}

func (raw *noteRaw) toNote() (*store.Note, error) {
	tags := []string{}
	if raw.Tags != "" {
		if err := json.Unmarshal([]byte(raw.Tags), &tags); err != nil {
			return nil, common.FormatError(err)
		}
	}
	return &store.Note{
		ID:        raw.ID,
		Title:     raw.Title,
		Content:   raw.Content,
		Tags:      tags,
		CreatedAt: time.Unix(raw.CreatedTs, 0).UTC(),
	}, nil
}

// NoteStore implements store.Store on top of sqlite.
type NoteStore struct {
	db *sql.DB
}

func NewNoteStore(db *DB) *NoteStore {
	return &NoteStore{db: db.DBInstance}
}

func (s *NoteStore) CreateNote(ctx context.Context, create *api.CreateNoteRequest) (*store.Note, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.FormatError(err)
	}
	defer tx.Rollback()

	tags := create.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, common.FormatError(err)
	}

	query := `
		INSERT INTO note (
			title,
			content,
			tags,
			created_ts
		)
		VALUES (?, ?, ?, ?)
		RETURNING id, title, content, tags, created_ts
	`
	var raw noteRaw
	if err := tx.QueryRowContext(
		ctx,
		query,
		create.Title,
		create.Content,
		string(tagsJSON),
		time.Now().Unix(),
	).Scan(
		&raw.ID,
		&raw.Title,
		&raw.Content,
		&raw.Tags,
		&raw.CreatedTs,
	); err != nil {
		return nil, common.FormatError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, common.FormatError(err)
	}
	return raw.toNote()
}

func (s *NoteStore) GetNote(ctx context.Context, find *store.FindNoteMessage) (*store.Note, error) {
	list, err := s.ListNotes(ctx, find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, common.Errorf(common.NotFound, "note not found")
	}
	return list[0], nil
}

func (s *NoteStore) ListNotes(ctx context.Context, find *store.FindNoteMessage) ([]*store.Note, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find != nil {
		if v := find.ID; v != nil {
			where, args = append(where, "note.id = ?"), append(args, *v)
		}
		if v := find.Search; v != nil && *v != "" {
			where = append(where, "(LOWER(note.title) LIKE ? OR LOWER(note.content) LIKE ?)")
			pattern := "%" + strings.ToLower(*v) + "%"
			args = append(args, pattern, pattern)
		}
	}

	query := `
		SELECT
			id,
			title,
			content,
			tags,
			created_ts
		FROM note
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.FormatError(err)
	}
	defer rows.Close()

	list := make([]*store.Note, 0)
	for rows.Next() {
		var raw noteRaw
		if err := rows.Scan(
			&raw.ID,
			&raw.Title,
			&raw.Content,
			&raw.Tags,
			&raw.CreatedTs,
		); err != nil {
			return nil, common.FormatError(err)
		}
		note, err := raw.toNote()
		if err != nil {
			return nil, err
		}
		// Exact tag membership is checked here rather than in SQL so the
		// semantics stay identical to the in-memory store.
		if find != nil && find.Tag != nil && *find.Tag != "" && !containsTag(note.Tags, *find.Tag) {
			continue
		}
		list = append(list, note)
	}
	if err := rows.Err(); err != nil {
		return nil, common.FormatError(err)
	}
	return list, nil
}

func (s *NoteStore) DeleteNote(ctx context.Context, del *store.DeleteNoteMessage) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.FormatError(err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM note WHERE id = ?`, del.ID)
	if err != nil {
		return common.FormatError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return common.FormatError(err)
	}
	if rows == 0 {
		return common.Errorf(common.NotFound, "note not found")
	}
	return common.FormatError(tx.Commit())
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
