package router

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nexusai/newsnexus/internal/apperr"
	"github.com/nexusai/newsnexus/internal/domain"
	"github.com/nexusai/newsnexus/internal/storage"
)

const defaultMessageLimit = 50

type GroupRouter struct {
	e      *echo.Echo
	groups storage.GroupStore
}

func NewGroupRouter(e *echo.Echo, groups storage.GroupStore) *GroupRouter {
	return &GroupRouter{
		e:      e,
		groups: groups,
	}
}

func (r *GroupRouter) Bind() {
	g := r.e.Group("/api/groups")
	g.GET("", r.listHandler)
	g.POST("/create", r.createHandler)
	g.GET("/:id/messages", r.messagesHandler)
	g.POST("/messages", r.sendHandler)
	g.POST("/share", r.shareHandler)
}

func (r *GroupRouter) listHandler(c echo.Context) error {
	groups, err := r.groups.ListGroups(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}

type createGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

func (r *GroupRouter) createHandler(c echo.Context) error {
	var req createGroupRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	if req.Name == "" {
		return apperr.NewValidation("group name is required")
	}

	group, err := r.groups.CreateGroup(c.Request().Context(), domain.Group{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, group)
}

func (r *GroupRouter) messagesHandler(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid group id", err)
	}

	limit := defaultMessageLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return apperr.NewValidation("limit must be a positive number")
		}
		limit = parsed
	}

	messages, err := r.groups.ListGroupMessages(c.Request().Context(), groupID, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messages)
}

type sendMessageRequest struct {
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id"`
	Content string `json:"content"`
	NewsID  string `json:"news_id"`
}

func (r *GroupRouter) sendHandler(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		return apperr.NewValidationWrap("invalid group id", err)
	}
	if req.Content == "" {
		return apperr.NewValidation("content is required")
	}

	message, err := r.groups.SendGroupMessage(c.Request().Context(), domain.GroupMessage{
		GroupID: groupID,
		UserID:  req.UserID,
		Content: req.Content,
		NewsID:  req.NewsID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]domain.GroupMessage{"data": message})
}

type shareRequest struct {
	GroupID string `json:"group_id"`
	NewsID  string `json:"news_id"`
	UserID  string `json:"user_id"`
}

func (r *GroupRouter) shareHandler(c echo.Context) error {
	var req shareRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		return apperr.NewValidationWrap("invalid group id", err)
	}
	if req.NewsID == "" {
		return apperr.NewValidation("news_id is required")
	}

	message, err := r.groups.SendGroupMessage(c.Request().Context(), domain.GroupMessage{
		GroupID: groupID,
		UserID:  req.UserID,
		Content: "Shared an article",
		NewsID:  req.NewsID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, message)
}
