// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/oliverandrich/sparknest/internal/auth"
	"codeberg.org/oliverandrich/sparknest/internal/repository"
)

const maxNoteTitleLength = 200

// NoteRequest is the note create payload.
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (r *NoteRequest) validate() []string {
	var errs []string
	if r.Title == "" {
		errs = append(errs, "Title is required")
	}
	if len(r.Title) > maxNoteTitleLength {
		errs = append(errs, fmt.Sprintf("Title must be at most %d characters", maxNoteTitleLength))
	}
	if r.Content == "" {
		errs = append(errs, "Content is required")
	}
	return errs
}

// UpdateNoteRequest is the partial note update payload. Nil fields stay
// unchanged.
type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (r *UpdateNoteRequest) validate() []string {
	var errs []string
	if r.Title != nil {
		if *r.Title == "" {
			errs = append(errs, "Title is required")
		}
		if len(*r.Title) > maxNoteTitleLength {
			errs = append(errs, fmt.Sprintf("Title must be at most %d characters", maxNoteTitleLength))
		}
	}
	if r.Content != nil && *r.Content == "" {
		errs = append(errs, "Content is required")
	}
	return errs
}

// ListNotes returns all notes of the authenticated user.
func (h *Handlers) ListNotes(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())
	notes, err := h.repo.ListNotes(c.Request().Context(), user.ID)
	if err != nil {
		return message(c, http.StatusInternalServerError, "Failed to fetch notes")
	}
	return c.JSON(http.StatusOK, notes)
}

// CreateNote creates a note for the authenticated user.
func (h *Handlers) CreateNote(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())

	var req NoteRequest
	if err := c.Bind(&req); err != nil {
		return validationFailed(c, []string{"Invalid request body"})
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	note, err := h.repo.CreateNote(c.Request().Context(), user.ID, req.Title, req.Content)
	if err != nil {
		return message(c, http.StatusInternalServerError, "Failed to create note")
	}
	return c.JSON(http.StatusCreated, note)
}

// GetNote returns a single note owned by the authenticated user.
func (h *Handlers) GetNote(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())

	note, err := h.repo.GetNote(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return message(c, http.StatusNotFound, "Note not found")
		}
		return message(c, http.StatusInternalServerError, "Failed to fetch note")
	}
	return c.JSON(http.StatusOK, note)
}

// UpdateNote applies a partial update to a note owned by the
// authenticated user.
func (h *Handlers) UpdateNote(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())

	var req UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return validationFailed(c, []string{"Invalid request body"})
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	note, err := h.repo.UpdateNote(c.Request().Context(), c.Param("id"), user.ID, repository.UpdateNoteParams{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return message(c, http.StatusNotFound, "Note not found")
		}
		return message(c, http.StatusInternalServerError, "Failed to update note")
	}
	return c.JSON(http.StatusOK, note)
}

// DeleteNote deletes a note owned by the authenticated user.
func (h *Handlers) DeleteNote(c echo.Context) error {
	user := auth.GetUser(c.Request().Context())

	err := h.repo.DeleteNote(c.Request().Context(), c.Param("id"), user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return message(c, http.StatusNotFound, "Note not found")
		}
		return message(c, http.StatusInternalServerError, "Failed to delete note")
	}
	return message(c, http.StatusOK, "Note deleted successfully")
}
