// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fachnmchi/internal/models"
	"fachnmchi/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicatePost is returned when a post id is already stored.
var ErrDuplicatePost = errors.New("repository: duplicate post id")

// PostRepository defines the interface for post data operations
type PostRepository interface {
	// List returns every post in collection order.
	List(ctx context.Context) ([]models.Post, error)
	// Create stores a new post ahead of all existing ones.
	Create(ctx context.Context, post *models.Post) error
	// SaveState writes the mutable flags and counters of a post.
	SaveState(ctx context.Context, post *models.Post) error
	// ReplaceAll swaps the stored collection for posts, keeping their order.
	ReplaceAll(ctx context.Context, posts []models.Post) error
	Count(ctx context.Context) (int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{
		db:  db,
		log: observability.NewRepoLogger(nil, "posts"),
	}
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	defer observability.TrackQuery("list", "posts")()

	var posts []models.Post
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&posts).Error; err != nil {
		r.log.LogError(ctx, err, "list")
		return nil, fmt.Errorf("list posts: %w", err)
	}
	for i := range posts {
		if posts[i].Tags == nil {
			posts[i].Tags = []string{}
		}
	}
	return posts, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var head int
		if err := tx.Model(&models.Post{}).
			Select("COALESCE(MIN(position), 0) - 1").
			Scan(&head).Error; err != nil {
			return err
		}
		post.Position = head
		return tx.Create(post).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePost
		}
		r.log.LogError(ctx, err, "create")
		return fmt.Errorf("create post: %w", err)
	}

	r.log.LogWrite(ctx, "create", 1)
	return nil
}

func (r *postRepository) SaveState(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("update", "posts")()

	res := r.db.WithContext(ctx).
		Model(&models.Post{ID: post.ID}).
		Select("likes", "is_liked", "is_pinned", "pinned_until", "is_shared").
		Updates(post)
	if res.Error != nil {
		r.log.LogError(ctx, res.Error, "update")
		return fmt.Errorf("save post %s: %w", post.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", post.ID)
	}
	return nil
}

func (r *postRepository) ReplaceAll(ctx context.Context, posts []models.Post) error {
	defer observability.TrackQuery("replace", "posts")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if len(posts) == 0 {
			return nil
		}
		rows := make([]models.Post, len(posts))
		copy(rows, posts)
		for i := range rows {
			rows[i].Position = i
		}
		return tx.CreateInBatches(rows, 100).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePost
		}
		r.log.LogError(ctx, err, "replace")
		return fmt.Errorf("replace posts: %w", err)
	}

	r.log.LogWrite(ctx, "replace", len(posts))
	return nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL unique violation SQLSTATE 23505
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
