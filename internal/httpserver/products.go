package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reviewmarket/api/internal/events"
	"github.com/reviewmarket/api/internal/logging"
	"github.com/reviewmarket/api/internal/models"
	"github.com/reviewmarket/api/internal/search"
	"github.com/reviewmarket/api/internal/service"
	"github.com/reviewmarket/api/internal/util"
)

type ProductHTTP struct {
	Svc    *service.ProductService
	Events *events.Producer
	Index  *search.Index
}

func (h *ProductHTTP) afterMutation(c echo.Context, kind string, product *models.Product) {
	publish(c, h.Events, events.TopicProducts, fmt.Sprint(product.UserID), map[string]any{
		"type":      kind,
		"productID": product.ID,
		"userID":    product.UserID,
		"name":      product.Name,
	})
	if err := h.Index.IndexProduct(c.Request().Context(), product); err != nil {
		logging.FromContext(c.Request().Context()).Error("index_product_failed", "productID", product.ID, "error", err)
	}
}

func (h *ProductHTTP) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list_all")

	products, err := h.Svc.ListAll(ctx)
	if err != nil {
		return fail(c, l, "list_products_failed", err)
	}

	items := make([]productListItem, len(products))
	for i, p := range products {
		items[i] = productListItem{ID: p.ID, Name: p.Name, Description: p.Description}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) GetOne(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := pathID(c, "productId")
	if err != nil {
		return err
	}

	product, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(c, l, "get_product_failed", err)
	}
	return c.JSON(http.StatusOK, viewProduct(product))
}

func (h *ProductHTTP) CreateDirect(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	product, err := h.Svc.CreateDirect(ctx, requestFields(c))
	if err != nil {
		return fail(c, l, "create_product_failed", err)
	}

	h.afterMutation(c, "product_created", product)
	l.Info("create_product_success", "productID", product.ID)
	return created(c, "Product added successfully")
}

func (h *ProductHTTP) UpdateDirect(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := pathID(c, "productId")
	if err != nil {
		return err
	}

	product, err := h.Svc.UpdateDirect(ctx, id, requestFields(c))
	if err != nil {
		return fail(c, l, "update_product_failed", err)
	}

	h.afterMutation(c, "product_updated", product)
	l.Info("update_product_success", "productID", product.ID)
	return ok(c, "Product updated successfully")
}

func (h *ProductHTTP) DeleteDirect(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := pathID(c, "productId")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteDirect(ctx, id); err != nil {
		return fail(c, l, "delete_product_failed", err)
	}

	publish(c, h.Events, events.TopicProducts, fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	if err := h.Index.DeleteProduct(ctx, id); err != nil {
		l.Error("deindex_product_failed", "productID", id, "error", err)
	}

	l.Info("delete_product_success", "productID", id)
	return ok(c, "Product deleted successfully")
}

func (h *ProductHTTP) ListForUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list_for_user")

	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	products, err := h.Svc.ListForUser(ctx, userID)
	if err != nil {
		return fail(c, l, "list_user_products_failed", err)
	}

	items := make([]productView, len(products))
	for i := range products {
		items[i] = viewProduct(&products[i])
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) CreateForUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_for_user")

	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	product, err := h.Svc.CreateForUser(ctx, userID, requestFields(c))
	if err != nil {
		return fail(c, l, "create_user_product_failed", err)
	}

	h.afterMutation(c, "product_created", product)
	l.Info("create_user_product_success", "productID", product.ID, "userID", userID)
	return created(c, "Product added successfully")
}

func (h *ProductHTTP) GetForUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_for_user")

	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return err
	}

	product, err := h.Svc.GetForUser(ctx, userID, productID)
	if err != nil {
		return fail(c, l, "get_user_product_failed", err)
	}
	return c.JSON(http.StatusOK, viewProduct(product))
}

func (h *ProductHTTP) UpdateForUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update_for_user")

	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return err
	}

	product, err := h.Svc.UpdateForUser(ctx, userID, productID, requestFields(c))
	if err != nil {
		return fail(c, l, "update_user_product_failed", err)
	}

	h.afterMutation(c, "product_updated", product)
	l.Info("update_user_product_success", "productID", product.ID, "userID", userID)
	return ok(c, "Product updated successfully")
}

func (h *ProductHTTP) DeleteForUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_for_user")

	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteForUser(ctx, userID, productID); err != nil {
		return fail(c, l, "delete_user_product_failed", err)
	}

	publish(c, h.Events, events.TopicProducts, fmt.Sprint(userID), map[string]any{
		"type":      "product_deleted",
		"productID": productID,
		"userID":    userID,
	})
	if err := h.Index.DeleteProduct(ctx, productID); err != nil {
		l.Error("deindex_product_failed", "productID", productID, "error", err)
	}

	l.Info("delete_user_product_success", "productID", productID, "userID", userID)
	return ok(c, "Product deleted successfully")
}

func (h *ProductHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query error")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, products, err := h.Index.Query(ctx, q, from, size)
	if err != nil {
		return fail(c, l, "search_products_failed", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
