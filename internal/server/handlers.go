package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nikbrunner/nota/internal/collection"
	"github.com/nikbrunner/nota/internal/model"
	"github.com/nikbrunner/nota/internal/storage"
)

// createNoteRequest is the JSON body for POST /notes.
type createNoteRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Color   string   `json:"color"`
	Tags    []string `json:"tags"`
}

// updateNoteRequest is the JSON body for PUT /notes/:id.
// Absent fields are left unchanged.
type updateNoteRequest struct {
	Title   *string  `json:"title"`
	Content *string  `json:"content"`
	Color   *string  `json:"color"`
	Tags    []string `json:"tags"`
}

// darkModeBody carries the theme flag in both directions.
type darkModeBody struct {
	DarkMode bool `json:"darkMode"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func notFound(c echo.Context, id string) error {
	return c.JSON(http.StatusNotFound, errorResponse{
		Error: fmt.Sprintf("note %s not found", id),
	})
}

func (s *Server) handleListNotes(c echo.Context) error {
	q := collection.Query{
		Term: c.QueryParam("q"),
		Tag:  c.QueryParam("tag"),
		Sort: collection.ParseSortMode(c.QueryParam("sort")),
	}
	if color := c.QueryParam("color"); color != "" {
		q.Color = model.ParseColor(color)
	}

	notes := s.manager.Find(q)
	if notes == nil {
		notes = []model.Note{}
	}
	return c.JSON(http.StatusOK, map[string]any{"notes": notes})
}

func (s *Server) handleCreateNote(c echo.Context) error {
	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	note, err := s.manager.Add(model.NewNoteParams{
		Title:   req.Title,
		Content: req.Content,
		Color:   model.ParseColor(req.Color),
		Tags:    req.Tags,
	})
	if err != nil {
		if errors.Is(err, model.ErrEmptyTitle) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusCreated, note)
}

func (s *Server) handleGetNote(c echo.Context) error {
	id := c.Param("id")
	note, ok := s.manager.Get(id)
	if !ok {
		return notFound(c, id)
	}
	return c.JSON(http.StatusOK, note)
}

func (s *Server) handleUpdateNote(c echo.Context) error {
	id := c.Param("id")

	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	patch := model.NotePatch{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	}
	if req.Color != nil {
		color := model.ParseColor(*req.Color)
		patch.Color = &color
	}

	note, ok, err := s.manager.Update(id, patch)
	if !ok {
		return notFound(c, id)
	}
	if err != nil {
		if errors.Is(err, model.ErrEmptyTitle) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, note)
}

func (s *Server) handleDeleteNote(c echo.Context) error {
	id := c.Param("id")
	if !s.manager.Delete(id) {
		return notFound(c, id)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleTogglePin(c echo.Context) error {
	id := c.Param("id")
	note, ok := s.manager.TogglePin(id)
	if !ok {
		return notFound(c, id)
	}
	return c.JSON(http.StatusOK, note)
}

func (s *Server) handleListTags(c echo.Context) error {
	tags := s.manager.Tags()
	if tags == nil {
		tags = []string{}
	}
	return c.JSON(http.StatusOK, map[string]any{"tags": tags})
}

func (s *Server) handleGetDarkMode(c echo.Context) error {
	return c.JSON(http.StatusOK, darkModeBody{
		DarkMode: storage.DarkMode(s.gateway, false),
	})
}

func (s *Server) handleSetDarkMode(c echo.Context) error {
	var body darkModeBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	storage.SetDarkMode(s.gateway, body.DarkMode)
	return c.JSON(http.StatusOK, body)
}

// handleEvents streams a server-sent event per collection change, so the
// browser can re-render without polling.
func (s *Server) handleEvents(c echo.Context) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	// Coalesce bursts; a slow client only ever misses intermediate ticks
	ch := make(chan struct{}, 1)
	unsubscribe := s.manager.Subscribe(func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	fmt.Fprint(res, "event: hello\ndata: {}\n\n")
	res.Flush()

	for {
		select {
		case <-c.Request().Context().Done():
			return nil
		case <-ch:
			fmt.Fprint(res, "event: change\ndata: {}\n\n")
			res.Flush()
		}
	}
}
