package service

import (
	"context"

	"github.com/reviewmarket/api/internal/apperror"
	"github.com/reviewmarket/api/internal/models"
	"github.com/reviewmarket/api/internal/repo"
	"github.com/reviewmarket/api/internal/transport"
)

type ReviewService struct {
	Repo *repo.GormRepo
}

func (s *ReviewService) List(ctx context.Context, userID, productID uint) ([]models.Review, error) {
	product, err := resolveUserProduct(ctx, s.Repo, userID, productID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.Repo.ListProductReviews(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, apperror.NotFound("Review")
	}
	return reviews, nil
}

// Create validates before resolving, so a malformed body never reads past
// the store and always reports 422 regardless of the path ids.
func (s *ReviewService) Create(ctx context.Context, userID, productID uint, fields transport.Fields) (*models.Review, error) {
	if err := fields.Require("title", "content"); err != nil {
		return nil, err
	}
	product, err := resolveUserProduct(ctx, s.Repo, userID, productID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		Title:     fields.String("title"),
		Content:   fields.String("content"),
		ProductID: product.ID,
	}
	if err := s.Repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Get(ctx context.Context, userID, productID, reviewID uint) (*models.Review, error) {
	return resolveUserProductReview(ctx, s.Repo, userID, productID, reviewID)
}

func (s *ReviewService) Update(ctx context.Context, userID, productID, reviewID uint, fields transport.Fields) (*models.Review, error) {
	review, err := resolveUserProductReview(ctx, s.Repo, userID, productID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := fields.Require("title", "content"); err != nil {
		return nil, err
	}

	review.Title = fields.String("title")
	review.Content = fields.String("content")
	if err := s.Repo.SaveReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, userID, productID, reviewID uint) error {
	review, err := resolveUserProductReview(ctx, s.Repo, userID, productID, reviewID)
	if err != nil {
		return err
	}
	return s.Repo.DeleteReview(ctx, review.ID)
}
