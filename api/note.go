package api

import (
	"unicode/utf8"

	"github.com/memoflow/noted/common"
)

// MaxNoteTitleLength is the upper bound on a note title.
const MaxNoteTitleLength = 100

type CreateNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Validate checks the field constraints carried by the request type. The
// store runs the same check, so a note can never be inserted with a bad
// title regardless of which layer constructed the request.
func (create *CreateNoteRequest) Validate() error {
	if create.Title == "" {
		return common.Errorf(common.Invalid, "title is required")
	}
	if utf8.RuneCountInString(create.Title) > MaxNoteTitleLength {
		return common.Errorf(common.Invalid, "title exceeds %d characters", MaxNoteTitleLength)
	}
	return nil
}
