// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"codeberg.org/oliverandrich/sparknest/internal/models"
)

// CreateNote inserts a new note for a user.
func (r *Repository) CreateNote(ctx context.Context, userID, title, content string) (*models.Note, error) {
	now := time.Now().UTC()
	note := &models.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (id, title, content, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID, note.Title, note.Content, note.UserID, now, now)
	if err != nil {
		return nil, wrapError(err)
	}
	return note, nil
}

// GetNote retrieves a note by ID, scoped to its owner.
func (r *Repository) GetNote(ctx context.Context, id, userID string) (*models.Note, error) {
	var note models.Note
	err := r.db.GetContext(ctx, &note,
		`SELECT * FROM notes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &note, nil
}

// ListNotes returns all notes of a user, most recently updated first.
func (r *Repository) ListNotes(ctx context.Context, userID string) ([]models.Note, error) {
	notes := []models.Note{}
	err := r.db.SelectContext(ctx, &notes,
		`SELECT * FROM notes WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return notes, nil
}

// UpdateNoteParams holds the updatable note fields. Nil means unchanged.
type UpdateNoteParams struct {
	Title   *string
	Content *string
}

// UpdateNote applies a partial update to a note owned by the user.
func (r *Repository) UpdateNote(ctx context.Context, id, userID string, params UpdateNoteParams) (*models.Note, error) {
	note, err := r.GetNote(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if params.Title != nil {
		note.Title = *params.Title
	}
	if params.Content != nil {
		note.Content = *params.Content
	}
	note.UpdatedAt = time.Now().UTC()

	_, err = r.db.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		note.Title, note.Content, note.UpdatedAt, id, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return note, nil
}

// DeleteNote deletes a note owned by the user. ErrNotFound if the note
// does not exist or belongs to someone else.
func (r *Repository) DeleteNote(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return wrapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
