package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reviewmarket/api/internal/apperror"
	"github.com/reviewmarket/api/internal/models"
)

// statusBody is the legacy wire envelope: success messages ride in
// "success" (creates) or "message" (updates/deletes), failures in "errors".
type statusBody struct {
	Status  int    `json:"status"`
	Errors  string `json:"errors,omitempty"`
	Success string `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}

type userView struct {
	ID    uint        `json:"id"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

func viewUser(u *models.User) userView {
	return userView{ID: u.ID, Email: u.Email, Role: u.Role}
}

type productView struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
}

func viewProduct(p *models.Product) productView {
	return productView{ID: p.ID, Name: p.Name, Description: p.Description, Price: p.Price}
}

// The global product list historically omits price.
type productListItem struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type reviewItem struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreateDate time.Time `json:"create_date"`
}

// reviewLegacyView keeps the original single-review wire shape, which
// reused the product keys: name carries the title, description the content,
// price the creation date. Clients depend on it.
type reviewLegacyView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       time.Time `json:"price"`
}

func viewReviewLegacy(r *models.Review) reviewLegacyView {
	return reviewLegacyView{ID: r.ID, Name: r.Title, Description: r.Content, Price: r.CreateDate}
}

// fail is the single translation point from service outcomes to wire
// responses. Validation failures never name the failing field, and internal
// faults never leak detail.
func fail(c echo.Context, l *slog.Logger, op string, err error) error {
	if nf, ok := apperror.AsNotFound(err); ok {
		l.Warn(op, "status", 404, "reason", nf.Error())
		return c.JSON(http.StatusNotFound, statusBody{Status: 404, Errors: nf.Error()})
	}
	if errors.Is(err, apperror.ErrValidation) {
		l.Warn(op, "status", 422, "reason", "invalid data")
		return c.JSON(http.StatusUnprocessableEntity, statusBody{Status: 422, Errors: "Data no valid"})
	}
	if errors.Is(err, apperror.ErrForbidden) {
		l.Warn(op, "status", 403, "reason", "forbidden")
		return c.JSON(http.StatusForbidden, statusBody{Status: 403, Errors: "Forbidden"})
	}
	l.Error(op, "status", 500, "error", err)
	return c.JSON(http.StatusInternalServerError, statusBody{Status: 500, Errors: "Internal server error"})
}

func created(c echo.Context, message string) error {
	return c.JSON(http.StatusCreated, statusBody{Status: 201, Success: message})
}

func ok(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, statusBody{Status: 200, Message: message})
}
