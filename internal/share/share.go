// Package share builds share links for feed posts and decides how a share is
// delivered to the user.
package share

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"fachnmchi/internal/models"
)

const (
	defaultText  = "Découvrez cette publication sur Fach Nmchi"
	defaultTitle = "Publication partagée"
)

// Outcome tells the client how the share was delivered.
type Outcome string

const (
	// OutcomeNative means the platform share sheet accepted the payload.
	OutcomeNative Outcome = "native"
	// OutcomeClipboard means the client should copy Payload.URL itself.
	OutcomeClipboard Outcome = "clipboard"
)

// ErrUnavailable is returned by a Sharer when the platform has no share sheet.
var ErrUnavailable = errors.New("share: native share unavailable")

// Payload is what gets handed to the share sheet or copied.
type Payload struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// Sharer is the platform's native share facility.
type Sharer interface {
	Share(ctx context.Context, p Payload) error
}

// Link returns the deep link for a post. Itinerary posts open the planner
// prefilled with the trip, every other post opens its own page.
func Link(post models.Post, base string) string {
	base = strings.TrimRight(base, "/")
	if it := post.Itinerary; it != nil {
		raw := "origin=" + url.QueryEscape(it.Origin) + "&destination=" + url.QueryEscape(it.Destination)
		if it.RouteID != "" {
			raw += "&routeId=" + url.QueryEscape(it.RouteID)
		}
		return base + "/itinerary?" + raw
	}
	return base + "/community/post/" + url.PathEscape(post.ID)
}

// NewPayload builds the share payload for a post.
func NewPayload(post models.Post, base string) Payload {
	p := Payload{
		Title: defaultTitle,
		Text:  post.Question,
		URL:   Link(post, base),
	}
	if it := post.Itinerary; it != nil {
		p.Title = "Itinéraire de " + it.Origin + " à " + it.Destination
	}
	if strings.TrimSpace(p.Text) == "" {
		p.Text = defaultText
	}
	return p
}

// Dispatch tries the native share first and falls back to the clipboard on
// any failure, including a nil sharer. It never fails itself.
func Dispatch(ctx context.Context, s Sharer, p Payload) Outcome {
	if s == nil {
		return OutcomeClipboard
	}
	if err := s.Share(ctx, p); err != nil {
		return OutcomeClipboard
	}
	return OutcomeNative
}

// CopiedNotice is shown once the client copied the link.
func CopiedNotice() models.Notice {
	return models.NewNotice("Lien copié", "Le lien a été copié dans votre presse-papiers.")
}

// CopyFailedNotice is shown when the clipboard write failed.
func CopyFailedNotice() models.Notice {
	return models.NewErrorNotice("Erreur", "Impossible de copier le lien dans votre presse-papiers.")
}
