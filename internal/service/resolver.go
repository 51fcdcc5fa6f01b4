package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/reviewmarket/api/internal/apperror"
	"github.com/reviewmarket/api/internal/models"
	"github.com/reviewmarket/api/internal/repo"
)

// Resolution walks the ownership chain top-down and stops at the first
// failure. A product that exists but belongs to a different user is
// indistinguishable from a missing one: the scan over the user's own
// products finds nothing, so the caller sees NotFound, never Forbidden.
// That keeps resource ids unenumerable across users.

func notFoundOr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(entity)
	}
	return err
}

func resolveUserProduct(ctx context.Context, r *repo.GormRepo, userID, productID uint) (*models.Product, error) {
	if _, err := r.GetUser(ctx, userID); err != nil {
		return nil, notFoundOr(err, "User")
	}
	products, err := r.ListUserProducts(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, apperror.NotFound("Product")
}

func resolveUserProductReview(ctx context.Context, r *repo.GormRepo, userID, productID, reviewID uint) (*models.Review, error) {
	product, err := resolveUserProduct(ctx, r, userID, productID)
	if err != nil {
		return nil, err
	}
	reviews, err := r.ListProductReviews(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		if reviews[i].ID == reviewID {
			return &reviews[i], nil
		}
	}
	return nil, apperror.NotFound("Review")
}
