package seed

import (
	"context"
	"fmt"
	"testing"

	"fachnmchi/internal/database"
	"fachnmchi/internal/feed"
	"fachnmchi/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openRepo(t *testing.T) repository.PostRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return repository.NewPostRepository(db)
}

func TestBuildPosts_Deterministic(t *testing.T) {
	a := NewSeeder(nil, 42).BuildPosts(20)
	b := NewSeeder(nil, 42).BuildPosts(20)

	if len(a) != 20 {
		t.Fatalf("expected 20 posts, got %d", len(a))
	}
	ids := make(map[string]struct{}, len(a))
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Question != b[i].Question {
			t.Fatalf("post %d differs between runs with the same seed", i)
		}
		if _, dup := ids[a[i].ID]; dup {
			t.Fatalf("duplicate id %s", a[i].ID)
		}
		ids[a[i].ID] = struct{}{}

		if a[i].Question == "" || a[i].Author == "" {
			t.Fatalf("post %d is missing text: %+v", i, a[i])
		}
		if _, ok := feed.ParseAge(a[i].Time); !ok {
			t.Fatalf("post %d has unparseable time label %q", i, a[i].Time)
		}
		if len(a[i].Tags) == 0 || len(a[i].Tags) > 3 {
			t.Fatalf("post %d has %d tags", i, len(a[i].Tags))
		}
		if it := a[i].Itinerary; it != nil && it.Origin == it.Destination {
			t.Fatalf("post %d goes nowhere: %s", i, it.Origin)
		}
	}
}

func TestRun_Clean(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	n, err := NewSeeder(repo, 1).Run(ctx, Options{Extra: 3, Clean: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 8 {
		t.Fatalf("expected 8 posts written, got %d", n)
	}

	posts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 8 {
		t.Fatalf("expected 8 stored posts, got %d", len(posts))
	}
	if posts[3].ID != "1" || posts[7].ID != "5" {
		t.Fatalf("fixtures should follow generated posts, got %s..%s", posts[3].ID, posts[7].ID)
	}

	// Cleaning again replaces rather than appends.
	if _, err := NewSeeder(repo, 2).Run(ctx, Options{Clean: true}); err != nil {
		t.Fatalf("second run: %v", err)
	}
	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected 5 posts after clean reseed, got %d", count)
	}
}

func TestRun_Additive(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	seeder := NewSeeder(repo, 7)

	n, err := seeder.Run(ctx, Options{})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected fixtures only, got %d", n)
	}

	n, err = seeder.Run(ctx, Options{Extra: 2})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if n != 2 {
		t.Fatalf("existing table must not get fixtures again, wrote %d", n)
	}

	posts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 7 {
		t.Fatalf("expected 7 posts, got %d", len(posts))
	}
	if posts[2].ID != "1" {
		t.Fatalf("generated posts should lead the feed, got %s at index 2", posts[2].ID)
	}
}
