package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fachnmchi/internal/cache"
	"fachnmchi/internal/featureflags"
	"fachnmchi/internal/feed"
	"fachnmchi/internal/models"
	"fachnmchi/internal/notifications"
	"fachnmchi/internal/observability"
	"fachnmchi/internal/repository"
	"fachnmchi/internal/share"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
)

// NewPostTimeLabel is the relative-time label every freshly created post gets.
const NewPostTimeLabel = "Il y a 1 min"

// DefaultAuthor signs posts created without an author name.
const DefaultAuthor = "Vous"

// FeedService is the community feed: ranked reads, post creation and the
// like/pin/share actions. The in-memory store is authoritative; the
// repository, when set, is written through.
type FeedService struct {
	store     *feed.Store
	postRepo  repository.PostRepository
	rdb       *redis.Client
	notifier  *notifications.Notifier
	flags     *featureflags.Manager
	shareBase string
	cacheTTL  time.Duration
	now       func() time.Time
	newID     func() string
}

// FeedServiceOptions are the optional collaborators of a FeedService.
type FeedServiceOptions struct {
	// PostRepo persists the feed. Nil keeps it in memory only.
	PostRepo repository.PostRepository
	Redis    *redis.Client
	Notifier *notifications.Notifier
	Flags    *featureflags.Manager
	// ShareBaseURL prefixes share links.
	ShareBaseURL string
	CacheTTL     time.Duration
	Now          func() time.Time
}

// ListPostsInput selects a ranked, filtered view of the feed.
type ListPostsInput struct {
	Order string
	Query string
	// Subject keys feature-flag rollouts, usually the client id.
	Subject string
}

// FeedPage is one ranked view of the feed.
type FeedPage struct {
	Posts   []models.Post `json:"posts"`
	Order   feed.Order    `json:"order"`
	Query   string        `json:"query,omitempty"`
	Version uint64        `json:"version"`
	Cached  bool          `json:"-"`
}

// CreatePostInput is a new question as typed by a user.
type CreatePostInput struct {
	Question string `json:"question"`
	Details  string `json:"details"`
	Location string `json:"location"`
	// Tags is the raw comma-separated tag field.
	Tags   string `json:"tags"`
	Author string `json:"author"`
}

// ActionResult reports what a feed action did. Post is nil for unknown ids.
type ActionResult struct {
	Post    *models.Post   `json:"post,omitempty"`
	Changed bool           `json:"changed"`
	Version uint64         `json:"version"`
	Notice  *models.Notice `json:"notice,omitempty"`
}

// ShareResult is an ActionResult plus what the client should do with the link.
type ShareResult struct {
	ActionResult
	Payload *share.Payload `json:"payload,omitempty"`
	Outcome share.Outcome  `json:"outcome,omitempty"`

	// CopyFailedNotice is what the client shows if its clipboard write fails.
	// Only set for clipboard outcomes.
	CopyFailedNotice *models.Notice `json:"copyFailedNotice,omitempty"`
}

func NewFeedService(store *feed.Store, opts FeedServiceOptions) *FeedService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &FeedService{
		store:     store,
		postRepo:  opts.PostRepo,
		rdb:       opts.Redis,
		notifier:  opts.Notifier,
		flags:     opts.Flags,
		shareBase: opts.ShareBaseURL,
		cacheTTL:  opts.CacheTTL,
		now:       now,
		newID:     uuid.NewString,
	}
}

// Load replaces the in-memory feed with the persisted one. An empty table is
// filled with the current in-memory posts instead.
//
// Versions restart with the process, so feed views cached by an earlier run
// would collide with fresh keys. Load drops them all.
func (s *FeedService) Load(ctx context.Context) error {
	if s.postRepo != nil {
		posts, err := s.postRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("load posts: %w", err)
		}
		if len(posts) == 0 {
			if err := s.postRepo.ReplaceAll(ctx, s.store.Snapshot().Posts()); err != nil {
				return fmt.Errorf("seed posts: %w", err)
			}
		} else {
			s.store.Replace(posts)
		}
	}
	if err := cache.InvalidateFeed(ctx, s.rdb); err != nil {
		// Reads fall back to ranking in memory while Redis is down.
		slog.WarnContext(ctx, "failed to drop cached feed views", "err", err)
	}
	return nil
}

// ListPosts ranks and filters the feed.
func (s *FeedService) ListPosts(ctx context.Context, in ListPostsInput) (*FeedPage, error) {
	order, ok := feed.ParseOrder(in.Order)
	if !ok {
		return nil, models.NewValidationError("sort must be recent or popular")
	}
	exact := s.flags.Enabled(featureflags.ExactRecency, in.Subject)

	ctx, span := observability.StartSpan(ctx, "feed", "list",
		attribute.String("feed.order", string(order)),
		attribute.Bool("feed.exact_recency", exact),
	)
	defer span.End()

	// Reading the version before the snapshot means a racing write can only
	// make the cached page newer than its key, never older.
	version := s.store.Version()
	snap := s.store.Snapshot()

	var posts []models.Post
	key := cache.FeedKey(version, string(order), exact, in.Query)
	hit, err := cache.Aside(ctx, s.rdb, key, &posts, s.cacheTTL, func() error {
		posts = feed.Filter(feed.Rank(snap, order, feed.RankOptions{ExactRecency: exact}), in.Query)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}

	result := "miss"
	if hit {
		result = "hit"
	}
	observability.FeedViews.WithLabelValues(string(order), result).Inc()
	span.SetAttributes(attribute.Bool("cache.hit", hit), attribute.Int("feed.size", len(posts)))

	return &FeedPage{Posts: posts, Order: order, Query: in.Query, Version: version, Cached: hit}, nil
}

// GetPost looks a single post up.
func (s *FeedService) GetPost(_ context.Context, id string) (*models.Post, error) {
	post, ok := s.store.Snapshot().Find(id)
	if !ok {
		return nil, models.NewNotFoundError("Post", id)
	}
	return &post, nil
}

// CreatePost validates a new question and puts it at the head of the feed.
func (s *FeedService) CreatePost(ctx context.Context, in CreatePostInput) (*ActionResult, error) {
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return nil, models.NewValidationError("question is required").
			WithNotice(models.NewErrorNotice("Erreur", "Veuillez saisir votre question"))
	}
	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = DefaultAuthor
	}

	post := models.Post{
		ID:       s.newID(),
		Question: question,
		Details:  strings.TrimSpace(in.Details),
		Location: strings.TrimSpace(in.Location),
		Author:   author,
		Time:     NewPostTimeLabel,
		Tags:     ParseTags(in.Tags),
	}

	var persist feed.PersistFunc
	if s.postRepo != nil {
		persist = func(p models.Post) error { return s.postRepo.Create(ctx, &p) }
	}
	res, err := s.store.DispatchWith(feed.Action{Kind: feed.ActionCreate, Post: &post}, persist)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicatePost) {
			return nil, models.NewValidationError("post already exists")
		}
		return nil, models.NewInternalError(err)
	}
	observability.RecordFeedAction(string(feed.ActionCreate), res.Changed)
	if !res.Changed {
		return nil, models.NewValidationError("post already exists")
	}
	s.publish(ctx, notifications.EventPostCreated, res)

	notice := models.NewNotice("Question publiée!", "Votre question a été publiée avec succès.")
	return &ActionResult{Post: &res.Post, Changed: true, Version: res.Version, Notice: &notice}, nil
}

// ToggleLike likes or unlikes a post. Unknown ids are a no-op.
func (s *FeedService) ToggleLike(ctx context.Context, id string) (*ActionResult, error) {
	res, err := s.toggle(ctx, feed.ActionLike, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, notifications.EventPostLiked, res)
	return newActionResult(res), nil
}

// TogglePin pins or unpins a post. Unknown ids are a no-op and get no notice.
func (s *FeedService) TogglePin(ctx context.Context, id string) (*ActionResult, error) {
	res, err := s.toggle(ctx, feed.ActionPin, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, notifications.EventPostPinned, res)

	out := newActionResult(res)
	if res.Changed {
		before, _ := res.Before.Find(id)
		notice := feed.PinNotice(before.IsPinned)
		out.Notice = &notice
	}
	return out, nil
}

// SharePost builds the share payload for a post, hands it to sharer and
// marks the post shared whichever way it went out. A nil sharer always
// falls back to the clipboard.
func (s *FeedService) SharePost(ctx context.Context, id string, sharer share.Sharer) (*ShareResult, error) {
	post, ok := s.store.Snapshot().Find(id)
	if !ok {
		observability.RecordFeedAction(string(feed.ActionShare), false)
		return &ShareResult{ActionResult: ActionResult{Version: s.store.Version()}}, nil
	}

	payload := share.NewPayload(post, s.shareBase)
	outcome := share.Dispatch(ctx, sharer, payload)
	observability.ShareOutcomes.WithLabelValues(string(outcome)).Inc()

	var persist feed.PersistFunc
	if s.postRepo != nil {
		// The share already went out, so a failed write only gets logged.
		persist = func(p models.Post) error {
			if err := s.postRepo.SaveState(ctx, &p); err != nil {
				slog.WarnContext(ctx, "failed to persist share", "post_id", id, "err", err)
			}
			return nil
		}
	}
	res, _ := s.store.DispatchWith(feed.Action{Kind: feed.ActionShare, PostID: id}, persist)
	observability.RecordFeedAction(string(feed.ActionShare), res.Changed)
	s.publish(ctx, notifications.EventPostShared, res)

	out := &ShareResult{
		ActionResult: *newActionResult(res),
		Payload:      &payload,
		Outcome:      outcome,
	}
	if outcome == share.OutcomeClipboard {
		notice := share.CopiedNotice()
		out.Notice = &notice
		failed := share.CopyFailedNotice()
		out.CopyFailedNotice = &failed
	}
	return out, nil
}

// toggle applies a self-inverse action and writes it through. A failed write
// leaves the feed as it was.
func (s *FeedService) toggle(ctx context.Context, kind feed.ActionKind, id string) (feed.Result, error) {
	var persist feed.PersistFunc
	if s.postRepo != nil {
		persist = func(p models.Post) error { return s.postRepo.SaveState(ctx, &p) }
	}
	res, err := s.store.DispatchWith(feed.Action{Kind: kind, PostID: id}, persist)
	if err != nil {
		observability.RecordFeedAction(string(kind), false)
		return feed.Result{}, models.NewInternalError(err)
	}
	observability.RecordFeedAction(string(kind), res.Changed)
	return res, nil
}

func (s *FeedService) publish(ctx context.Context, t notifications.EventType, res feed.Result) {
	if !res.Changed {
		return
	}
	post := res.Post
	ev := notifications.FeedEvent{
		Type:    t,
		PostID:  post.ID,
		Post:    &post,
		Version: res.Version,
		At:      s.now().UTC(),
	}
	if err := s.notifier.PublishFeedEvent(ctx, ev); err != nil {
		slog.WarnContext(ctx, "failed to publish feed event", "type", string(t), "post_id", post.ID, "err", err)
	}
}

func newActionResult(res feed.Result) *ActionResult {
	out := &ActionResult{Changed: res.Changed, Version: res.Version}
	if res.Found {
		post := res.Post
		out.Post = &post
	}
	return out
}

// ParseTags splits a comma-separated tag field. Entries are trimmed, empty
// ones dropped and duplicates removed; the first occurrence keeps its place.
func ParseTags(raw string) []string {
	tags := []string{}
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
