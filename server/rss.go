package server

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"
	"github.com/yuin/goldmark"

	"github.com/memoflow/noted/store"
)

func (s *Server) registerFeedRoutes(e *echo.Echo) {
	e.GET("/notes/rss", s.getNoteFeed)
}

func (s *Server) getNoteFeed(c echo.Context) error {
	list, err := s.Store.ListNotes(c.Request().Context(), &store.FindNoteMessage{})
	if err != nil {
		return httpError(err)
	}

	baseURL := fmt.Sprintf("%s://%s", c.Scheme(), c.Request().Host)
	feed := &feeds.Feed{
		Title:       "noted",
		Link:        &feeds.Link{Href: baseURL + "/notes"},
		Description: "Recent notes",
		Created:     time.Now().UTC(),
	}

	// Newest first.
	for i := len(list) - 1; i >= 0; i-- {
		note := list[i]
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          fmt.Sprintf("%s/notes/%d", baseURL, note.ID),
			Title:       note.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/notes/%d", baseURL, note.ID)},
			Description: renderMarkdown(note.Content),
			Created:     note.CreatedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return httpError(err)
	}
	return c.Blob(http.StatusOK, "application/rss+xml", []byte(rss))
}

// renderMarkdown converts note content to HTML for feed readers, falling
// back to the raw text if conversion fails.
func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		return content
	}
	return buf.String()
}
