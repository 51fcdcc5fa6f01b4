package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reviewmarket/api/internal/events"
	"github.com/reviewmarket/api/internal/logging"
	"github.com/reviewmarket/api/internal/service"
)

type ReviewHTTP struct {
	Svc    *service.ReviewService
	Events *events.Producer
}

func reviewPath(c echo.Context) (userID, productID uint, err error) {
	userID, err = pathID(c, "userId")
	if err != nil {
		return 0, 0, err
	}
	productID, err = pathID(c, "productId")
	if err != nil {
		return 0, 0, err
	}
	return userID, productID, nil
}

func (h *ReviewHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.list")

	userID, productID, err := reviewPath(c)
	if err != nil {
		return err
	}

	reviews, err := h.Svc.List(ctx, userID, productID)
	if err != nil {
		return fail(c, l, "list_reviews_failed", err)
	}

	items := make([]reviewItem, len(reviews))
	for i, r := range reviews {
		items[i] = reviewItem{ID: r.ID, Title: r.Title, Content: r.Content, CreateDate: r.CreateDate}
	}
	return c.JSON(http.StatusOK, items)
}

// Create answers HTTP 200 with a body status of 201; older clients rely on
// that mismatch, so it stays.
func (h *ReviewHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.create")

	userID, productID, err := reviewPath(c)
	if err != nil {
		return err
	}

	review, err := h.Svc.Create(ctx, userID, productID, requestFields(c))
	if err != nil {
		return fail(c, l, "create_review_failed", err)
	}

	publish(c, h.Events, events.TopicReviews, fmt.Sprint(review.ProductID), map[string]any{
		"type":      "review_created",
		"reviewID":  review.ID,
		"productID": review.ProductID,
	})

	l.Info("create_review_success", "reviewID", review.ID)
	return c.JSON(http.StatusOK, statusBody{Status: 201, Success: "Review added successfully"})
}

func (h *ReviewHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.get")

	userID, productID, err := reviewPath(c)
	if err != nil {
		return err
	}
	reviewID, err := pathID(c, "reviewId")
	if err != nil {
		return err
	}

	review, err := h.Svc.Get(ctx, userID, productID, reviewID)
	if err != nil {
		return fail(c, l, "get_review_failed", err)
	}
	return c.JSON(http.StatusOK, viewReviewLegacy(review))
}

func (h *ReviewHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.update")

	userID, productID, err := reviewPath(c)
	if err != nil {
		return err
	}
	reviewID, err := pathID(c, "reviewId")
	if err != nil {
		return err
	}

	review, err := h.Svc.Update(ctx, userID, productID, reviewID, requestFields(c))
	if err != nil {
		return fail(c, l, "update_review_failed", err)
	}

	publish(c, h.Events, events.TopicReviews, fmt.Sprint(review.ProductID), map[string]any{
		"type":      "review_updated",
		"reviewID":  review.ID,
		"productID": review.ProductID,
	})

	l.Info("update_review_success", "reviewID", review.ID)
	return ok(c, "Review updated successfully")
}

func (h *ReviewHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.delete")

	userID, productID, err := reviewPath(c)
	if err != nil {
		return err
	}
	reviewID, err := pathID(c, "reviewId")
	if err != nil {
		return err
	}

	if err := h.Svc.Delete(ctx, userID, productID, reviewID); err != nil {
		return fail(c, l, "delete_review_failed", err)
	}

	publish(c, h.Events, events.TopicReviews, fmt.Sprint(productID), map[string]any{
		"type":      "review_deleted",
		"reviewID":  reviewID,
		"productID": productID,
	})

	l.Info("delete_review_success", "reviewID", reviewID)
	return ok(c, "Review deleted successfully")
}
