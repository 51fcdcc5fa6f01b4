package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reviewmarket/api/internal/events"
	"github.com/reviewmarket/api/internal/logging"
	authmw "github.com/reviewmarket/api/internal/middleware/auth"
	"github.com/reviewmarket/api/internal/service"
)

type UserHTTP struct {
	Svc    *service.UserService
	Events *events.Producer
}

func (h *UserHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.register")

	user, err := h.Svc.Register(ctx, requestFields(c))
	if err != nil {
		return fail(c, l, "register_failed", err)
	}

	publish(c, h.Events, events.TopicUsers, fmt.Sprint(user.ID), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	l.Info("register_success", "userID", user.ID)
	return created(c, "Register successfully")
}

func (h *UserHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	users, err := h.Svc.List(ctx)
	if err != nil {
		return fail(c, l, "list_users_failed", err)
	}

	items := make([]userView, len(users))
	for i := range users {
		items[i] = viewUser(&users[i])
	}
	return c.JSON(http.StatusOK, items)
}

func (h *UserHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get")

	id, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	user, err := h.Svc.Get(ctx, authmw.Principal(c), id)
	if err != nil {
		return fail(c, l, "get_user_failed", err)
	}
	return c.JSON(http.StatusOK, viewUser(user))
}

func (h *UserHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update")

	id, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	if err := h.Svc.Update(ctx, id, requestFields(c)); err != nil {
		return fail(c, l, "update_user_failed", err)
	}

	publish(c, h.Events, events.TopicUsers, fmt.Sprint(id), map[string]any{
		"type":   "user_updated",
		"userID": id,
	})

	l.Info("update_user_success", "userID", id)
	return ok(c, "User updated successfully")
}

func (h *UserHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	id, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(c, l, "delete_user_failed", err)
	}

	publish(c, h.Events, events.TopicUsers, fmt.Sprint(id), map[string]any{
		"type":   "user_deleted",
		"userID": id,
	})

	l.Info("delete_user_success", "userID", id)
	return ok(c, "User deleted successfully")
}
