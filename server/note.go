package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/memoflow/noted/api"
	"github.com/memoflow/noted/common"
	"github.com/memoflow/noted/store"
)

func (s *Server) registerNoteRoutes(e *echo.Echo) {
	e.POST("/notes", s.createNote)
	e.GET("/notes", s.listNotes)
	e.GET("/notes/:id", s.getNote)
	e.DELETE("/notes/:id", s.deleteNote)
}

func (s *Server) createNote(c echo.Context) error {
	create := &api.CreateNoteRequest{}
	if err := c.Bind(create); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "malformed request body")
	}

	key := c.Request().Header.Get("Idempotency-Key")
	if key != "" {
		s.createMu.Lock()
		cached, ok := s.createdByKey[key]
		s.createMu.Unlock()
		if ok {
			return c.JSON(http.StatusCreated, cached)
		}
	}

	note, err := s.Store.CreateNote(c.Request().Context(), create)
	if err != nil {
		return httpError(err)
	}

	if key != "" {
		s.createMu.Lock()
		s.createdByKey[key] = note
		s.createMu.Unlock()
	}
	return c.JSON(http.StatusCreated, note)
}

func (s *Server) listNotes(c echo.Context) error {
	find := &store.FindNoteMessage{}
	if q := c.QueryParam("q"); q != "" {
		find.Search = &q
	}
	if tag := c.QueryParam("tag"); tag != "" {
		find.Tag = &tag
	}

	list, err := s.Store.ListNotes(c.Request().Context(), find)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) getNote(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpError(common.Errorf(common.Invalid, "invalid note id %q", c.Param("id")))
	}

	note, err := s.Store.GetNote(c.Request().Context(), &store.FindNoteMessage{ID: &id})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, note)
}

func (s *Server) deleteNote(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return httpError(common.Errorf(common.Invalid, "invalid note id %q", c.Param("id")))
	}

	if err := s.Store.DeleteNote(c.Request().Context(), &store.DeleteNoteMessage{ID: id}); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
