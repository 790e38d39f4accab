package handler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"doorman/config"
	"doorman/internal/delivery/http/cookie"
	deliverymw "doorman/internal/delivery/http/middleware"
	"doorman/internal/delivery/http/router"
	"doorman/internal/delivery/http/router/handler"
	"doorman/internal/delivery/http/validator"
	"doorman/internal/domain/entity"
	"doorman/internal/domain/repository"
	"doorman/internal/infra/auth"
	"doorman/internal/infra/persistence/memory"
	"doorman/internal/usecase"
	"doorman/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testApp struct {
	echo *echo.Echo
}

// newTestApp wires the full HTTP stack against in-memory stores, the
// same assembly as production minus the process plumbing.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Session: config.SessionConfig{
			CookieName: "chocolatechip",
			Secret:     "integration-test-secret",
			TTL:        time.Hour,
		},
	}

	cookies, err := cookie.NewManager(cookie.ManagerParams{Config: cfg})
	require.NoError(t, err)

	userRepo := newMemoryUserRepo()
	sessionSrv := impl.NewSessionService(impl.SessionServiceParams{
		SessionRepo: memory.NewSessionRepository(),
		Config:      cfg,
		Logger:      logger,
	})
	authSrv := impl.NewAuthService(impl.AuthServiceParams{
		UserRepo:   userRepo,
		SessionSrv: sessionSrv,
		Hasher:     auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		Logger:     logger,
	})
	userSrv := impl.NewUserService(impl.UserServiceParams{UserRepo: userRepo})

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = deliverymw.NewErrorMiddleware(logger).HandleHTTPError

	router.NewRouter(router.RouterParams{
		AuthHandler: handler.NewAuthHandler(handler.AuthHandlerParams{
			AuthSrv: authSrv,
			Cookies: cookies,
		}),
		UserHandler: handler.NewUserHandler(handler.UserHandlerParams{UserSrv: userSrv}),
		AuthMiddleware: deliverymw.NewAuthMiddleware(deliverymw.AuthMiddlewareParams{
			SessionSrv: sessionSrv,
			Cookies:    cookies,
		}),
	}).RegisterRoutes(e)

	return &testApp{echo: e}
}

func (app *testApp) request(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	app.echo.ServeHTTP(rec, req)

	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == "chocolatechip" {
			return c
		}
	}

	t.Fatal("no session cookie in response")

	return nil
}

func TestRoot(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"api":"up"}`, rec.Body.String())
}

func TestRegister(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(http.MethodPost, "/api/auth/register", `{"username":"sue","password":"porcupine"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"user_id":1,"username":"sue"}`, rec.Body.String())

	// Registration does not open a session.
	assert.Empty(t, rec.Result().Cookies())
}

func TestRegister_Rejections(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(http.MethodPost, "/api/auth/register", `{"username":"sue","password":"abc"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"message":"Password must be longer than 3 chars"}`, rec.Body.String())

	rec = app.request(http.MethodPost, "/api/auth/register", `{"username":"sue","password":"porcupine"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = app.request(http.MethodPost, "/api/auth/register", `{"username":"sue","password":"different"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"message":"Username taken"}`, rec.Body.String())

	rec = app.request(http.MethodPost, "/api/auth/register", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid request body"}`, rec.Body.String())

	// A missing username is a malformed body; a missing password is a
	// too-short password, not a shape problem.
	rec = app.request(http.MethodPost, "/api/auth/register", `{"password":"porcupine"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid request body"}`, rec.Body.String())
}

func TestRegister_EmptyPassword(t *testing.T) {
	app := newTestApp(t)

	// Zero-length counts as too short, same as any password of length <= 3.
	rec := app.request(http.MethodPost, "/api/auth/register", `{"username":"sue","password":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"message":"Password must be longer than 3 chars"}`, rec.Body.String())

	rec = app.request(http.MethodPost, "/api/auth/register", `{"username":"sue"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"message":"Password must be longer than 3 chars"}`, rec.Body.String())
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(http.MethodPost, "/api/auth/register", `{"username":"sue","password":"porcupine"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = app.request(http.MethodPost, "/api/auth/login", `{"username":"sue","password":"porcupine"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Welcome sue!"}`, rec.Body.String())

	issued := sessionCookie(t, rec)
	assert.True(t, issued.HttpOnly)
	assert.NotEmpty(t, issued.Value)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(http.MethodPost, "/api/auth/register", `{"username":"sue","password":"porcupine"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Unknown username and wrong password produce identical responses,
	// and neither sets a cookie.
	wrongUser := app.request(http.MethodPost, "/api/auth/login", `{"username":"nobody","password":"porcupine"}`)
	wrongPass := app.request(http.MethodPost, "/api/auth/login", `{"username":"sue","password":"wrong"}`)

	// Empty fields are rejected the same way: no distinct status that
	// would reveal whether a username exists or a field was blank.
	emptyUser := app.request(http.MethodPost, "/api/auth/login", `{"username":"","password":"porcupine"}`)
	emptyPass := app.request(http.MethodPost, "/api/auth/login", `{"username":"sue","password":""}`)

	for _, rec := range []*httptest.ResponseRecorder{wrongUser, wrongPass, emptyUser, emptyPass} {
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Invalid credentials"}`, rec.Body.String())
		assert.Empty(t, rec.Result().Cookies())
	}
}

func TestListUsers(t *testing.T) {
	app := newTestApp(t)

	require.Equal(t, http.StatusCreated,
		app.request(http.MethodPost, "/api/auth/register", `{"username":"sue","password":"porcupine"}`).Code)
	require.Equal(t, http.StatusCreated,
		app.request(http.MethodPost, "/api/auth/register", `{"username":"bob","password":"hunter22"}`).Code)

	login := app.request(http.MethodPost, "/api/auth/login", `{"username":"sue","password":"porcupine"}`)
	require.Equal(t, http.StatusOK, login.Code)

	rec := app.request(http.MethodGet, "/api/users", "", sessionCookie(t, login))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"user_id":1,"username":"sue"},{"user_id":2,"username":"bob"}]`, rec.Body.String())
}

func TestListUsers_Unauthenticated(t *testing.T) {
	app := newTestApp(t)

	// No cookie
	rec := app.request(http.MethodGet, "/api/users", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"You shall not pass!"}`, rec.Body.String())

	// Forged cookie
	rec = app.request(http.MethodGet, "/api/users", "", &http.Cookie{Name: "chocolatechip", Value: "forged"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"You shall not pass!"}`, rec.Body.String())
}

func TestLogout(t *testing.T) {
	app := newTestApp(t)

	require.Equal(t, http.StatusCreated,
		app.request(http.MethodPost, "/api/auth/register", `{"username":"sue","password":"porcupine"}`).Code)
	login := app.request(http.MethodPost, "/api/auth/login", `{"username":"sue","password":"porcupine"}`)
	require.Equal(t, http.StatusOK, login.Code)
	issued := sessionCookie(t, login)

	rec := app.request(http.MethodGet, "/api/auth/logout", "", issued)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"logged out"}`, rec.Body.String())
	assert.Negative(t, sessionCookie(t, rec).MaxAge)

	// The session is gone server-side even though the browser still
	// holds a validly signed cookie.
	rec = app.request(http.MethodGet, "/api/users", "", issued)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"You shall not pass!"}`, rec.Body.String())

	rec = app.request(http.MethodGet, "/api/auth/logout", "", issued)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"no session"}`, rec.Body.String())
}

func TestLogout_ClearsCookieOnStoreError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Session: config.SessionConfig{
			CookieName: "chocolatechip",
			Secret:     "integration-test-secret",
			TTL:        time.Hour,
		},
	}
	cookies, err := cookie.NewManager(cookie.ManagerParams{Config: cfg})
	require.NoError(t, err)

	e := echo.New()
	e.HTTPErrorHandler = deliverymw.NewErrorMiddleware(logger).HandleHTTPError
	e.GET("/api/auth/logout", handler.NewAuthHandler(handler.AuthHandlerParams{
		AuthSrv: &failingAuthUsecase{},
		Cookies: cookies,
	}).Logout)

	issue := httptest.NewRecorder()
	require.NoError(t, cookies.Issue(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), issue), "session-123"))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/logout", nil)
	req.AddCookie(issue.Result().Cookies()[0])
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// The request fails, but the browser cookie is dropped regardless.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rec.Body.String())

	cleared := sessionCookie(t, rec)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

// failingAuthUsecase simulates a session store outage during logout.
type failingAuthUsecase struct{}

func (u *failingAuthUsecase) Register(context.Context, usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	return nil, errors.New("store unavailable")
}

func (u *failingAuthUsecase) Login(context.Context, usecase.LoginInput) (*usecase.LoginOutput, error) {
	return nil, errors.New("store unavailable")
}

func (u *failingAuthUsecase) Logout(context.Context, string) (usecase.LogoutStatus, error) {
	return usecase.LogoutStatusNoSession, errors.New("store unavailable")
}

func TestLogout_NoSession(t *testing.T) {
	app := newTestApp(t)

	rec := app.request(http.MethodGet, "/api/auth/logout", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"no session"}`, rec.Body.String())
}

// memoryUserRepo backs the integration tests without a database.
type memoryUserRepo struct {
	users  []*entity.User
	nextID uint64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{nextID: 1}
}

func (r *memoryUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}

	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++

	stored := *user
	r.users = append(r.users, &stored)

	return nil
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			found := *user

			return &found, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		found := *user
		users = append(users, &found)
	}

	return users, nil
}
