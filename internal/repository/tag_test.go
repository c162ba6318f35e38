package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRepository_ResolveNames(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()

	// "go" does not exist yet: the insert lands.
	mock.ExpectExec(`INSERT INTO tags \(name, created_at, updated_at\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "tags" WHERE name = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "go"))

	// "ai" already exists: DO NOTHING, then the existing row is read.
	mock.ExpectExec(`INSERT INTO tags \(name, created_at, updated_at\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "tags" WHERE name = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "ai"))

	// duplicate "go" resolves again to the same row.
	mock.ExpectExec(`INSERT INTO tags \(name, created_at, updated_at\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "tags" WHERE name = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "go"))

	mock.ExpectCommit()

	tags, err := repo.ResolveNames(ctx, []string{"go", "ai", "go"})
	require.NoError(t, err)

	// One identifier per input name, in input order; duplicates map to the
	// same identifier.
	require.Len(t, tags, 3)
	assert.Equal(t, uint(1), tags[0].ID)
	assert.Equal(t, uint(2), tags[1].ID)
	assert.Equal(t, uint(1), tags[2].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateTag_LostRace(t *testing.T) {
	db, mock := setupMockDB(t)

	// A concurrent writer won the insert race: our insert affects zero rows
	// and the follow-up read returns the winner's identifier.
	mock.ExpectExec(`INSERT INTO tags \(name, created_at, updated_at\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "tags" WHERE name = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(7, "fresh"))

	tag, created, err := findOrCreateTag(db, "fresh")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, uint(7), tag.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrCreateTag_Created(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectExec(`INSERT INTO tags \(name, created_at, updated_at\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "tags" WHERE name = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "fresh"))

	tag, created, err := findOrCreateTag(db, "fresh")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint(3), tag.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
