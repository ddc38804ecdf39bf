package server

import (
	"fachnmchi/internal/models"
	"fachnmchi/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
// @Summary Community feed
// @Description Ranked feed, pinned posts first. sort is recent (default) or popular; q filters on question, location and tags.
// @Tags posts
// @Produce json
// @Param sort query string false "recent or popular"
// @Param q query string false "Search text"
// @Success 200 {object} service.FeedPage
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, err := s.feedService.ListPosts(c.UserContext(), service.ListPostsInput{
		Order:   c.Query("sort"),
		Query:   c.Query("q"),
		Subject: clientID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// GetPost handles GET /api/posts/:id
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.feedService.GetPost(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/posts
// @Summary Ask a question
// @Description Publishes a new question at the head of the feed. tags is a comma-separated string.
// @Tags posts
// @Accept json
// @Produce json
// @Param request body service.CreatePostInput true "New question"
// @Success 201 {object} service.ActionResult
// @Failure 400 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req service.CreatePostInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	res, err := s.feedService.CreatePost(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// LikePost handles POST /api/posts/:id/like
// @Summary Toggle like
// @Description Likes or unlikes a post. Unknown ids answer 200 with changed=false.
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} service.ActionResult
// @Router /posts/{id}/like [post]
func (s *Server) LikePost(c *fiber.Ctx) error {
	res, err := s.feedService.ToggleLike(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// PinPost handles POST /api/posts/:id/pin
// @Summary Toggle pin
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} service.ActionResult
// @Router /posts/{id}/pin [post]
func (s *Server) PinPost(c *fiber.Ctx) error {
	res, err := s.feedService.TogglePin(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}

// SharePost handles POST /api/posts/:id/share. The body says whether the
// client has a native share sheet; without one the answer tells it to copy
// the link instead.
// @Summary Share a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body object{native=bool} false "Client share capability"
// @Success 200 {object} service.ShareResult
// @Router /posts/{id}/share [post]
func (s *Server) SharePost(c *fiber.Ctx) error {
	var req struct {
		Native bool `json:"native"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
	}

	res, err := s.feedService.SharePost(c.UserContext(), c.Params("id"), clientSharer{available: req.Native})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(res)
}
