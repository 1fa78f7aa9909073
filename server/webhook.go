package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memoflow/noted/api"
	"github.com/memoflow/noted/common"
)

// webhookTokenHeader carries the shared secret for webhook calls.
const webhookTokenHeader = "X-Webhook-Token"

func (s *Server) registerWebhookRoutes(e *echo.Echo) {
	e.POST("/webhooks/note", s.createNoteFromWebhook)
	e.GET("/webhooks/log", s.getWebhookLog)
}

// TranslateWebhookNote derives a note creation request from a webhook
// payload: the title is the first chunk of the message, the content is the
// full message, and the origin system is recorded as a "source:<name>" tag.
func TranslateWebhookNote(payload *api.WebhookNoteRequest) *api.CreateNoteRequest {
	title := payload.Message
	if runes := []rune(title); len(runes) > api.WebhookTitleLength {
		title = string(runes[:api.WebhookTitleLength])
	}

	tags := make([]string, 0, len(payload.Tags)+1)
	tags = append(tags, payload.Tags...)
	if payload.Source != "" {
		tags = append(tags, "source:"+payload.Source)
	}

	return &api.CreateNoteRequest{
		Title:   title,
		Content: payload.Message,
		Tags:    tags,
	}
}

func (s *Server) createNoteFromWebhook(c echo.Context) error {
	if expected := s.Profile.WebhookToken; expected != "" {
		if c.Request().Header.Get(webhookTokenHeader) != expected {
			return httpError(common.Errorf(common.Unauthorized, "invalid %s header", webhookTokenHeader))
		}
	}

	payload := &api.WebhookNoteRequest{}
	if err := c.Bind(payload); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "malformed request body")
	}
	if err := payload.Validate(); err != nil {
		return httpError(err)
	}

	note, err := s.Store.CreateNote(c.Request().Context(), TranslateWebhookNote(payload))
	if err != nil {
		return httpError(err)
	}

	s.WebhookLog.Record(payload.Source, payload.Message, payload.Tags)
	return c.JSON(http.StatusCreated, note)
}

func (s *Server) getWebhookLog(c echo.Context) error {
	return c.JSON(http.StatusOK, s.WebhookLog.List())
}
