// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/oliverandrich/sparknest/internal/repository"
	"codeberg.org/oliverandrich/sparknest/internal/testutil"
)

func TestCreateNote(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewVerifiedUser(t, repo, "a@x.com", "pw12345678")

	note, err := repo.CreateNote(ctx, user.ID, "Title", "Content")

	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, user.ID, note.UserID)
	assert.Equal(t, "Title", note.Title)
}

func TestListNotes_ScopedToOwner(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	alice := testutil.NewVerifiedUser(t, repo, "alice@x.com", "pw12345678")
	bob := testutil.NewVerifiedUser(t, repo, "bob@x.com", "pw12345678")

	_, err := repo.CreateNote(ctx, alice.ID, "Alice note", "c")
	require.NoError(t, err)
	_, err = repo.CreateNote(ctx, bob.ID, "Bob note", "c")
	require.NoError(t, err)

	notes, err := repo.ListNotes(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Alice note", notes[0].Title)
}

func TestGetNote_OtherOwner(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	alice := testutil.NewVerifiedUser(t, repo, "alice@x.com", "pw12345678")
	bob := testutil.NewVerifiedUser(t, repo, "bob@x.com", "pw12345678")

	note, err := repo.CreateNote(ctx, alice.ID, "Title", "Content")
	require.NoError(t, err)

	_, err = repo.GetNote(ctx, note.ID, bob.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateNote_Partial(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewVerifiedUser(t, repo, "a@x.com", "pw12345678")
	note, err := repo.CreateNote(ctx, user.ID, "Title", "Content")
	require.NoError(t, err)

	newTitle := "New title"
	updated, err := repo.UpdateNote(ctx, note.ID, user.ID, repository.UpdateNoteParams{Title: &newTitle})

	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "Content", updated.Content)
}

func TestDeleteNote(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewVerifiedUser(t, repo, "a@x.com", "pw12345678")
	note, err := repo.CreateNote(ctx, user.ID, "Title", "Content")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteNote(ctx, note.ID, user.ID))

	_, err = repo.GetNote(ctx, note.ID, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteNote_OtherOwner(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	alice := testutil.NewVerifiedUser(t, repo, "alice@x.com", "pw12345678")
	bob := testutil.NewVerifiedUser(t, repo, "bob@x.com", "pw12345678")

	note, err := repo.CreateNote(ctx, alice.ID, "Title", "Content")
	require.NoError(t, err)

	err = repo.DeleteNote(ctx, note.ID, bob.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Still there for the owner.
	_, err = repo.GetNote(ctx, note.ID, alice.ID)
	require.NoError(t, err)
}
