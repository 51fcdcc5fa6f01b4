package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/reviewmarket/api/internal/middleware/auth"
)

type Deps struct {
	Users    *UserHTTP
	Products *ProductHTTP
	Reviews  *ReviewHTTP
	Auth     *AuthHTTP
	AuthMW   *authmw.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler()

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/login_check", d.Auth.LoginCheck)
	e.POST("/token/refresh", d.Auth.Refresh)
	e.GET("/activeUser", d.Auth.ActiveUser, d.AuthMW.RequireLogin)

	api := e.Group("/api")

	api.GET("/products", d.Products.ListAll)
	api.GET("/products/search", d.Products.Search)
	api.POST("/products", d.Products.CreateDirect)
	api.GET("/products/:productId", d.Products.GetOne)
	api.PUT("/products/:productId", d.Products.UpdateDirect)
	api.DELETE("/products/:productId", d.Products.DeleteDirect)

	api.GET("/users", d.Users.List)
	api.POST("/users", d.Users.Register)
	api.GET("/users/:userId", d.Users.Get, d.AuthMW.WithPrincipal)
	api.PUT("/users/:userId", d.Users.Update)
	api.DELETE("/users/:userId", d.Users.Delete)

	api.GET("/users/:userId/products", d.Products.ListForUser)
	api.POST("/users/:userId/products", d.Products.CreateForUser)
	api.GET("/users/:userId/products/:productId", d.Products.GetForUser)
	api.PUT("/users/:userId/products/:productId", d.Products.UpdateForUser)
	api.DELETE("/users/:userId/products/:productId", d.Products.DeleteForUser)

	api.GET("/users/:userId/products/:productId/reviews", d.Reviews.List)
	api.POST("/users/:userId/products/:productId/reviews", d.Reviews.Create)
	api.GET("/users/:userId/products/:productId/reviews/:reviewId", d.Reviews.Get)
	api.PUT("/users/:userId/products/:productId/reviews/:reviewId", d.Reviews.Update)
	api.DELETE("/users/:userId/products/:productId/reviews/:reviewId", d.Reviews.Delete)
}
