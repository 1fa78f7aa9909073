package api

import (
	"github.com/memoflow/noted/common"
)

// WebhookTitleLength is how many characters of the message become the title
// of a webhook-created note.
const WebhookTitleLength = 40

// WebhookNoteRequest is the payload an external automation posts to turn an
// event into a note. Source is optional; when present it is recorded as a
// synthesized "source:<name>" tag on the created note.
type WebhookNoteRequest struct {
	Source  string   `json:"source"`
	Message string   `json:"message"`
	Tags    []string `json:"tags"`
}

func (create *WebhookNoteRequest) Validate() error {
	if create.Message == "" {
		return common.Errorf(common.Invalid, "message is required")
	}
	return nil
}
