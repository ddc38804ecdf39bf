package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fachnmchi/internal/config"
	"fachnmchi/internal/database"
	"fachnmchi/internal/models"
	"fachnmchi/internal/notifications"
	"fachnmchi/internal/repository"
	"fachnmchi/internal/service"
	"fachnmchi/internal/share"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:         "0",
		Env:          "test",
		DBDriver:     config.DriverMemory,
		TimeZone:     "Africa/Casablanca",
		ShareBaseURL: "https://fachnmchi.ma",
	}
}

func newTestServer(t *testing.T, db *gorm.DB, rdb *redis.Client) (*Server, *fiber.App) {
	t.Helper()
	s, err := NewServerWithDeps(testConfig(), db, rdb)
	require.NoError(t, err)
	require.NoError(t, s.Load(context.Background()))
	return s, s.App()
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHealth(t *testing.T) {
	_, app := newTestServer(t, nil, nil)

	resp, _ := doJSON(t, app, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var ready struct {
		Status string         `json:"status"`
		Checks map[string]any `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(body, &ready))
	assert.Equal(t, "healthy", ready.Status)
	assert.Equal(t, "disabled", ready.Checks["database"])
	assert.Equal(t, "disabled", ready.Checks["redis"])
}

func TestReadiness_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	_, app := newTestServer(t, nil, rdb)
	mr.Close()

	resp, _ := doJSON(t, app, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestGetPosts(t *testing.T) {
	_, app := newTestServer(t, nil, nil)

	tests := []struct {
		path   string
		status int
		want   []string
	}{
		{"/api/posts", http.StatusOK, []string{"3", "5", "1", "2", "4"}},
		{"/api/posts?sort=popular", http.StatusOK, []string{"5", "3", "2", "4", "1"}},
		{"/api/posts?q=mall", http.StatusOK, []string{"2"}},
		{"/api/posts?sort=sideways", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := doJSON(t, app, http.MethodGet, tt.path, nil)
			require.Equal(t, tt.status, resp.StatusCode)
			if tt.want == nil {
				return
			}
			var page service.FeedPage
			require.NoError(t, json.Unmarshal(body, &page))
			ids := make([]string, len(page.Posts))
			for i, p := range page.Posts {
				ids[i] = p.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestGetPost(t *testing.T) {
	_, app := newTestServer(t, nil, nil)

	resp, body := doJSON(t, app, http.MethodGet, "/api/posts/3", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var post models.Post
	require.NoError(t, json.Unmarshal(body, &post))
	assert.True(t, post.IsPinned)

	resp, body = doJSON(t, app, http.MethodGet, "/api/posts/42", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "NOT_FOUND", errResp.Code)
}

func TestCreatePost(t *testing.T) {
	_, app := newTestServer(t, nil, nil)

	resp, body := doJSON(t, app, http.MethodPost, "/api/posts", map[string]string{"question": " "})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	require.NotNil(t, errResp.Notice)
	assert.Equal(t, "Erreur", errResp.Notice.Title)
	assert.Equal(t, "Veuillez saisir votre question", errResp.Notice.Description)

	resp, body = doJSON(t, app, http.MethodPost, "/api/posts", map[string]string{
		"question": "Le tram passe à Ain Diab ce soir?",
		"location": "Ain Diab",
		"tags":     "tram, soir",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var res service.ActionResult
	require.NoError(t, json.Unmarshal(body, &res))
	require.NotNil(t, res.Post)
	assert.Equal(t, []string{"tram", "soir"}, res.Post.Tags)
	assert.Equal(t, "Il y a 1 min", res.Post.Time)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/posts/"+res.Post.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPostActions(t *testing.T) {
	_, app := newTestServer(t, nil, nil)

	resp, body := doJSON(t, app, http.MethodPost, "/api/posts/2/like", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var res service.ActionResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.True(t, res.Changed)
	assert.Equal(t, 13, res.Post.Likes)

	resp, body = doJSON(t, app, http.MethodPost, "/api/posts/4/pin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res = service.ActionResult{}
	require.NoError(t, json.Unmarshal(body, &res))
	require.NotNil(t, res.Notice)
	assert.Equal(t, "Le post sera épinglé pendant 10 minutes.", res.Notice.Description)

	resp, body = doJSON(t, app, http.MethodPost, "/api/posts/unknown/like", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res = service.ActionResult{}
	require.NoError(t, json.Unmarshal(body, &res))
	assert.False(t, res.Changed)
	assert.Nil(t, res.Post)
}

func TestSharePost(t *testing.T) {
	_, app := newTestServer(t, nil, nil)

	resp, body := doJSON(t, app, http.MethodPost, "/api/posts/2/share", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var res service.ShareResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, share.OutcomeClipboard, res.Outcome)
	require.NotNil(t, res.Payload)
	assert.Equal(t, "https://fachnmchi.ma/itinerary?origin=Casa+Port&destination=Morocco+Mall", res.Payload.URL)
	require.NotNil(t, res.Notice)
	assert.Equal(t, "Lien copié", res.Notice.Title)
	assert.True(t, res.Post.IsShared)

	resp, body = doJSON(t, app, http.MethodPost, "/api/posts/4/share", map[string]bool{"native": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res = service.ShareResult{}
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, share.OutcomeNative, res.Outcome)
	assert.Equal(t, "https://fachnmchi.ma/community/post/4", res.Payload.URL)
}

func TestRoutesStationsAlerts(t *testing.T) {
	_, app := newTestServer(t, nil, nil)

	resp, body := doJSON(t, app, http.MethodGet, "/api/routes?origin=Casa%20Port&destination=Maarif", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var plan service.RoutePlan
	require.NoError(t, json.Unmarshal(body, &plan))
	require.Len(t, plan.Routes, 3)
	assert.Equal(t, "Bus B22", plan.Routes[0].Title)
	assert.NotEmpty(t, plan.Routes[0].Steps[0].DepartureTime)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/routes?origin=Casa%20Port", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/stations?type=tram", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stations []models.Station
	require.NoError(t, json.Unmarshal(body, &stations))
	assert.Len(t, stations, 3)

	resp, body = doJSON(t, app, http.MethodGet, "/api/stations/2/departures", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deps []models.Departure
	require.NoError(t, json.Unmarshal(body, &deps))
	require.Len(t, deps, 3)
	assert.Equal(t, "Facultés", deps[0].Headsign)
	assert.Equal(t, "T1", deps[0].Line)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/stations/99/departures", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, app, http.MethodGet, "/api/alerts?type=event", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []models.Alert
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Événement", list[0].TypeLabel)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/alerts?type=weather", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReportLocation(t *testing.T) {
	_, app := newTestServer(t, nil, nil)

	resp, body := doJSON(t, app, http.MethodPost, "/api/location", map[string]float64{
		"latitude": 33.5731, "longitude": -7.5898,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var res service.LocationResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.True(t, res.Shared)
	assert.Equal(t, "Position partagée", res.Notice.Title)

	resp, body = doJSON(t, app, http.MethodPost, "/api/location", map[string]string{"error": "denied"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res = service.LocationResult{}
	require.NoError(t, json.Unmarshal(body, &res))
	assert.False(t, res.Shared)
	assert.Equal(t, models.NoticeDestructive, res.Notice.Variant)
}

func TestFeedStream_RequiresUpgrade(t *testing.T) {
	_, app := newTestServer(t, nil, nil)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/ws/feed", nil)
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func TestFeedStream_DisabledByFlag(t *testing.T) {
	cfg := testConfig()
	cfg.FeatureFlags = "feed_stream=off"
	s, err := NewServerWithDeps(cfg, nil, nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/ws/feed", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Sec-WebSocket-Version", "13")
	req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, models.CodeForbidden, body.Code)
	assert.Equal(t, http.StatusForbidden, models.StatusFor(models.NewForbiddenError("x")))
}

func TestFeedStream_DeliversEvents(t *testing.T) {
	s, app := newTestServer(t, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.hub.StartWiring(ctx, s.notifier))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	url := fmt.Sprintf("ws://%s/api/ws/feed", ln.Addr().String())
	header := http.Header{}
	header.Set("X-Client-ID", "watcher")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/posts/1/like", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	ev, err := notifications.DecodeFeedEvent(msg)
	require.NoError(t, err)
	assert.Equal(t, notifications.EventPostLiked, ev.Type)
	assert.Equal(t, "1", ev.PostID)
	require.NotNil(t, ev.Post)
	assert.Equal(t, 6, ev.Post.Likes)
}

func TestWriteThroughToSQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	_, app := newTestServer(t, db, nil)
	repo := repository.NewPostRepository(db)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/posts/4/like", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	var liked models.Post
	for _, p := range posts {
		if p.ID == "4" {
			liked = p
		}
	}
	assert.True(t, liked.IsLiked)
	assert.Equal(t, 8, liked.Likes)

	// A fresh server over the same database picks the stored state up.
	_, app2 := newTestServer(t, db, nil)
	resp, body := doJSON(t, app2, http.MethodGet, "/api/posts/4", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var post models.Post
	require.NoError(t, json.Unmarshal(body, &post))
	assert.Equal(t, 8, post.Likes)
}

func TestFeatureFlags(t *testing.T) {
	cfg := testConfig()
	cfg.FeatureFlags = "exact_recency=on,feed_stream=off"
	s, err := NewServerWithDeps(cfg, nil, nil)
	require.NoError(t, err)
	app := s.App()

	resp, body := doJSON(t, app, http.MethodGet, "/api/feature-flags", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var flags struct {
		Evaluated map[string]bool `json:"evaluated"`
	}
	require.NoError(t, json.Unmarshal(body, &flags))
	assert.True(t, flags.Evaluated["exact_recency"])
	assert.False(t, flags.Evaluated["feed_stream"])
}

func TestClientSharer(t *testing.T) {
	assert.ErrorIs(t, clientSharer{}.Share(context.Background(), share.Payload{}), share.ErrUnavailable)
	assert.NoError(t, clientSharer{available: true}.Share(context.Background(), share.Payload{}))
}
