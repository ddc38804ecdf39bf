package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"fachnmchi/internal/database"
	"fachnmchi/internal/fixtures"
	"fachnmchi/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestPostRepository_ListQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" ORDER BY position ASC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "question", "time_label", "likes", "tags"}).
			AddRow("1", "Q1", "Il y a 15 min", 5, `["a"]`).
			AddRow("2", "Q2", "Il y a 1h", 0, nil))

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, []string{"a"}, posts[0].Tags)
	assert.Equal(t, []string{}, posts[1].Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts"`)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.List(context.Background())
	assert.ErrorContains(t, err, "connection reset")
}

func TestPostRepository_SaveStateQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SaveState(context.Background(), &models.Post{ID: "3", Likes: 17, IsPinned: true})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_SaveStateMissing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.SaveState(context.Background(), &models.Post{ID: "404"})
	assert.Equal(t, 404, models.StatusFor(err))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: posts.id")))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
	assert.False(t, isUniqueViolation(nil))
}

func TestPostRepository_RoundTrip(t *testing.T) {
	db := setupSQLite(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	set, err := fixtures.Load()
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceAll(ctx, set.Posts))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 5)
	for i, p := range posts {
		assert.Equal(t, set.Posts[i].ID, p.ID)
		assert.Equal(t, set.Posts[i].Tags, p.Tags)
		assert.Equal(t, set.Posts[i].Itinerary, p.Itinerary)
	}

	fresh := &models.Post{ID: "new", Question: "Q", Author: "Vous", Time: "Il y a 1 min", Tags: []string{}}
	require.NoError(t, repo.Create(ctx, fresh))
	assert.ErrorIs(t, repo.Create(ctx, &models.Post{ID: "new", Question: "Q", Author: "x", Time: "t"}), ErrDuplicatePost)

	posts, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", posts[0].ID)

	liked := posts[1]
	liked.Likes = 0
	liked.IsLiked = false
	liked.IsPinned = true
	liked.PinnedUntil = "10 minutes"
	liked.Question = "ignored"
	require.NoError(t, repo.SaveState(ctx, &liked))

	posts, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, posts[1].Likes)
	assert.True(t, posts[1].IsPinned)
	assert.Equal(t, "10 minutes", posts[1].PinnedUntil)
	assert.Equal(t, set.Posts[0].Question, posts[1].Question)

	require.NoError(t, repo.ReplaceAll(ctx, nil))
	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
