package service

import (
	"context"

	"github.com/reviewmarket/api/internal/apperror"
	"github.com/reviewmarket/api/internal/models"
	"github.com/reviewmarket/api/internal/repo"
	"github.com/reviewmarket/api/internal/transport"
)

type ProductService struct {
	Repo *repo.GormRepo
}

func priceField(fields transport.Fields) *float64 {
	if v, ok := fields.Float("price"); ok {
		return &v
	}
	return nil
}

func (s *ProductService) ListAll(ctx context.Context) ([]models.Product, error) {
	products, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperror.NotFound("Products")
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Product")
	}
	return product, nil
}

// CreateDirect is the non-nested create: the owner comes from the user_id
// field instead of the path. A dangling owner id reports NotFound("User"),
// same as the nested variant.
func (s *ProductService) CreateDirect(ctx context.Context, fields transport.Fields) (*models.Product, error) {
	if err := fields.Require("name", "description"); err != nil {
		return nil, err
	}
	ownerID, _ := fields.Float("user_id")
	return s.create(ctx, uint(ownerID), fields)
}

func (s *ProductService) CreateForUser(ctx context.Context, userID uint, fields transport.Fields) (*models.Product, error) {
	if err := fields.Require("name", "description"); err != nil {
		return nil, err
	}
	return s.create(ctx, userID, fields)
}

func (s *ProductService) create(ctx context.Context, userID uint, fields transport.Fields) (*models.Product, error) {
	user, err := s.Repo.GetUser(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "User")
	}

	product := &models.Product{
		Name:        fields.String("name"),
		Description: fields.String("description"),
		Price:       priceField(fields),
		UserID:      user.ID,
	}
	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateDirect is the admin-style update on /products/{id}: direct lookup,
// no owner check. create_date stays server-assigned and untouched.
func (s *ProductService) UpdateDirect(ctx context.Context, id uint, fields transport.Fields) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Product")
	}
	return s.update(ctx, product, fields)
}

func (s *ProductService) UpdateForUser(ctx context.Context, userID, productID uint, fields transport.Fields) (*models.Product, error) {
	product, err := resolveUserProduct(ctx, s.Repo, userID, productID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, product, fields)
}

func (s *ProductService) update(ctx context.Context, product *models.Product, fields transport.Fields) (*models.Product, error) {
	if err := fields.Require("name", "description"); err != nil {
		return nil, err
	}
	product.Name = fields.String("name")
	product.Description = fields.String("description")
	product.Price = priceField(fields)
	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) DeleteDirect(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return notFoundOr(err, "Product")
	}
	return nil
}

func (s *ProductService) DeleteForUser(ctx context.Context, userID, productID uint) error {
	product, err := resolveUserProduct(ctx, s.Repo, userID, productID)
	if err != nil {
		return err
	}
	return s.Repo.DeleteProduct(ctx, product.ID)
}

func (s *ProductService) ListForUser(ctx context.Context, userID uint) ([]models.Product, error) {
	if _, err := s.Repo.GetUser(ctx, userID); err != nil {
		return nil, notFoundOr(err, "User")
	}
	products, err := s.Repo.ListUserProducts(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperror.NotFound("Product")
	}
	return products, nil
}

func (s *ProductService) GetForUser(ctx context.Context, userID, productID uint) (*models.Product, error) {
	return resolveUserProduct(ctx, s.Repo, userID, productID)
}
