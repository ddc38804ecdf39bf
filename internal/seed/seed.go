// Package seed fills the post table with the shipped fixtures and, on
// request, extra generated questions for load and UI testing.
package seed

import (
	"context"
	"fmt"
	"time"

	"fachnmchi/internal/feed"
	"fachnmchi/internal/fixtures"
	"fachnmchi/internal/models"
	"fachnmchi/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	places = []string{
		"Casa Port", "Casa Voyageurs", "Maarif", "Ain Diab", "Sidi Bernoussi",
		"Sidi Moumen", "Hay Hassani", "Anfa", "Bourgogne", "Derb Sultan",
		"Morocco Mall", "Aéroport Mohammed V", "Place des Nations Unies",
		"Université Hassan II", "Facultés", "Abdelmoumen", "Centre-ville",
	}

	questionTemplates = []string{
		"Comment aller à %[2]s depuis %[1]s ce matin?",
		"Le tram passe-t-il encore entre %[1]s et %[2]s?",
		"Quel bus prendre de %[1]s à %[2]s après 20h?",
		"Combien coûte un petit taxi de %[1]s à %[2]s?",
		"Des embouteillages entre %[1]s et %[2]s en ce moment?",
		"Y a-t-il des travaux sur la route de %[1]s vers %[2]s?",
	}

	tagPool = []string{
		"tram", "bus", "taxi", "travaux", "embouteillage", "horaires",
		"aéroport", "université", "weekend", "nuit", "prix", "panne",
	}
)

// Options control a seeding run.
type Options struct {
	// Extra is the number of generated posts added after the fixtures.
	Extra int
	// Clean replaces the table instead of adding to it.
	Clean bool
}

// Seeder writes posts through a PostRepository.
type Seeder struct {
	repo  repository.PostRepository
	faker *gofakeit.Faker
}

// NewSeeder creates a seeder. The same seed produces the same posts.
func NewSeeder(repo repository.PostRepository, seed int64) *Seeder {
	return &Seeder{repo: repo, faker: gofakeit.New(seed)}
}

// BuildPosts generates n community questions between real Casablanca places.
func (s *Seeder) BuildPosts(n int) []models.Post {
	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		origin := s.faker.RandomString(places)
		destination := s.faker.RandomString(places)
		for destination == origin {
			destination = s.faker.RandomString(places)
		}

		post := models.Post{
			ID:       s.faker.UUID(),
			Question: fmt.Sprintf(s.faker.RandomString(questionTemplates), origin, destination),
			Details:  s.faker.Sentence(12),
			Location: destination,
			Author:   s.faker.FirstName() + " " + s.faker.LastName()[:1] + ".",
			Time:     feed.AgeLabel(time.Duration(s.faker.Number(1, 72*60)) * time.Minute),
			Answers:  s.faker.Number(0, 15),
			Tags:     s.tags(),
			Likes:    s.faker.Number(0, 40),
		}
		if s.faker.Number(1, 3) == 1 {
			post.Itinerary = &models.Itinerary{Origin: origin, Destination: destination}
		}
		posts = append(posts, post)
	}
	return posts
}

func (s *Seeder) tags() []string {
	n := s.faker.Number(1, 3)
	seen := make(map[string]struct{}, n)
	tags := make([]string, 0, n)
	for len(tags) < n {
		tag := s.faker.RandomString(tagPool)
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// Run seeds the repository and returns the number of posts written. Without
// Clean, fixtures are only written to an empty table and generated posts are
// added at the head of the feed.
func (s *Seeder) Run(ctx context.Context, opts Options) (int, error) {
	set, err := fixtures.Load()
	if err != nil {
		return 0, err
	}
	extra := s.BuildPosts(opts.Extra)

	if opts.Clean {
		// Generated posts go first, as if they had been asked after the fixtures.
		all := append(extra, set.Posts...)
		if err := s.repo.ReplaceAll(ctx, all); err != nil {
			return 0, fmt.Errorf("replace posts: %w", err)
		}
		return len(all), nil
	}

	written := 0
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	if count == 0 {
		if err := s.repo.ReplaceAll(ctx, set.Posts); err != nil {
			return 0, fmt.Errorf("seed fixtures: %w", err)
		}
		written += len(set.Posts)
	}
	// Create puts each post at the head, so walk backwards to keep order.
	for i := len(extra) - 1; i >= 0; i-- {
		if err := s.repo.Create(ctx, &extra[i]); err != nil {
			return written, fmt.Errorf("create post %s: %w", extra[i].ID, err)
		}
		written++
	}
	return written, nil
}
