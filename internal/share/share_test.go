package share

import (
	"context"
	"errors"
	"testing"

	"fachnmchi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSharer struct {
	mock.Mock
}

func (m *mockSharer) Share(ctx context.Context, p Payload) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func TestLink(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		post models.Post
		want string
	}{
		{
			name: "plain post",
			post: models.Post{ID: "42"},
			want: "https://fachnmchi.ma/community/post/42",
		},
		{
			name: "itinerary",
			post: models.Post{ID: "1", Itinerary: &models.Itinerary{Origin: "Sidi Bernoussi", Destination: "Ain Chock"}},
			want: "https://fachnmchi.ma/itinerary?origin=Sidi+Bernoussi&destination=Ain+Chock",
		},
		{
			name: "itinerary with route",
			post: models.Post{ID: "1", Itinerary: &models.Itinerary{Origin: "A&B", Destination: "Maârif", RouteID: "2"}},
			want: "https://fachnmchi.ma/itinerary?origin=A%26B&destination=Ma%C3%A2rif&routeId=2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Link(tt.post, "https://fachnmchi.ma/"))
		})
	}
}

func TestNewPayload(t *testing.T) {
	t.Parallel()

	p := NewPayload(models.Post{ID: "3", Question: "Le tram est-il en retard?"}, "http://x")
	assert.Equal(t, "Publication partagée", p.Title)
	assert.Equal(t, "Le tram est-il en retard?", p.Text)

	p = NewPayload(models.Post{ID: "3", Itinerary: &models.Itinerary{Origin: "Casa Port", Destination: "Maarif"}}, "http://x")
	assert.Equal(t, "Itinéraire de Casa Port à Maarif", p.Title)
	assert.Equal(t, "Découvrez cette publication sur Fach Nmchi", p.Text)
}

func TestDispatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	payload := Payload{Title: "t", Text: "x", URL: "http://x"}

	ok := new(mockSharer)
	ok.On("Share", ctx, payload).Return(nil)
	assert.Equal(t, OutcomeNative, Dispatch(ctx, ok, payload))
	ok.AssertExpectations(t)

	failing := new(mockSharer)
	failing.On("Share", ctx, payload).Return(errors.New("user cancelled"))
	assert.Equal(t, OutcomeClipboard, Dispatch(ctx, failing, payload))

	assert.Equal(t, OutcomeClipboard, Dispatch(ctx, nil, payload))
}

func TestNotices(t *testing.T) {
	t.Parallel()
	assert.Equal(t, models.NoticeDefault, CopiedNotice().Variant)
	assert.Equal(t, models.NoticeDestructive, CopyFailedNotice().Variant)
	assert.Contains(t, CopyFailedNotice().Description, "Impossible de copier")
}
