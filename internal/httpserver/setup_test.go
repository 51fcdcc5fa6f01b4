package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/reviewmarket/api/internal/hash"
	authmw "github.com/reviewmarket/api/internal/middleware/auth"
	"github.com/reviewmarket/api/internal/models"
	"github.com/reviewmarket/api/internal/repo"
	"github.com/reviewmarket/api/internal/service"
	"github.com/reviewmarket/api/internal/service/token"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB

	Tokens *token.Service
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Review{},
		&models.RefreshToken{},
	))

	store := repo.New(db)
	tokens := &token.Service{
		Repo:          store,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}

	e := echo.New()
	Register(e, &Deps{
		Users:    &UserHTTP{Svc: &service.UserService{Repo: store}},
		Products: &ProductHTTP{Svc: &service.ProductService{Repo: store}},
		Reviews:  &ReviewHTTP{Svc: &service.ReviewService{Repo: store}},
		Auth:     &AuthHTTP{Tokens: tokens},
		AuthMW:   &authmw.Middleware{Tokens: tokens},
	})

	return &testEnv{T: t, E: e, DB: db, Tokens: tokens}
}

// do runs a request through the full router, so routing, middleware and the
// error handler all participate.
func (env *testEnv) do(method, path string, body any, header ...http.Header) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, h := range header {
		for k, vs := range h {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func bearer(token string) http.Header {
	h := http.Header{}
	h.Set(echo.HeaderAuthorization, "Bearer "+token)
	return h
}

func (env *testEnv) decodeStatus(rec *httptest.ResponseRecorder) statusBody {
	env.T.Helper()
	var body statusBody
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (env *testEnv) seedUser(email string, role models.Role) *models.User {
	env.T.Helper()
	hashed, err := hash.HashPassword("password")
	require.NoError(env.T, err)
	user := &models.User{Email: email, PasswordHash: hashed, Role: role}
	require.NoError(env.T, env.DB.Create(user).Error)
	return user
}

func (env *testEnv) seedProduct(userID uint, name, description string, price *float64) *models.Product {
	env.T.Helper()
	product := &models.Product{Name: name, Description: description, Price: price, UserID: userID}
	require.NoError(env.T, env.DB.Create(product).Error)
	return product
}

func (env *testEnv) seedReview(productID uint, title, content string) *models.Review {
	env.T.Helper()
	review := &models.Review{Title: title, Content: content, ProductID: productID}
	require.NoError(env.T, env.DB.Create(review).Error)
	return review
}

func (env *testEnv) login(email string) (string, string) {
	env.T.Helper()
	rec := env.do(http.MethodPost, "/login_check", map[string]string{
		"email":    email,
		"password": "password",
	})
	require.Equal(env.T, http.StatusOK, rec.Code)

	var resp struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(env.T, resp.Token)
	return resp.Token, resp.RefreshToken
}

func floatPtr(v float64) *float64 { return &v }

func (env *testEnv) count(model any) int64 {
	env.T.Helper()
	var n int64
	require.NoError(env.T, env.DB.Model(model).Count(&n).Error)
	return n
}
