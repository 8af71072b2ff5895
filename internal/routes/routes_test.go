package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"COURSEHUB_BACK-END/internal/config"
	"COURSEHUB_BACK-END/internal/events"
	"COURSEHUB_BACK-END/internal/handlers"
	"COURSEHUB_BACK-END/internal/metrics"
	"COURSEHUB_BACK-END/internal/middleware"
	"COURSEHUB_BACK-END/internal/service"
	"COURSEHUB_BACK-END/internal/storage/memory"
	"COURSEHUB_BACK-END/internal/storage/seed"
)

type testServer struct {
	*httptest.Server
	jwt *config.JWTConfig
}

func newTestServer(t *testing.T, requireToken bool) *testServer {
	t.Helper()
	store := memory.New()
	courses, err := seed.DefaultCourses()
	require.NoError(t, err)
	_, err = seed.Courses(context.Background(), store, courses)
	require.NoError(t, err)

	jwtCfg := &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour, RequireToken: requireToken}
	m := metrics.New("coursehub_test")
	publisher := events.NewLogPublisher(zerolog.Nop())

	h := Handlers{
		Auth:         handlers.NewAuthHandler(service.NewAuthService(store), jwtCfg, m),
		Courses:      handlers.NewCourseHandler(service.NewCourseService(store)),
		Registration: handlers.NewRegistrationHandler(service.NewRegistrationService(store, publisher, nil), jwtCfg, m),
		Contact:      handlers.NewContactHandler(service.NewContactService(store, nil), m),
		Health:       handlers.NewHealthHandler(map[string]handlers.Pinger{"storage": store}),
	}
	mux := http.NewServeMux()
	limiter := middleware.NewRateLimiter(config.RateLimitConfig{RequestsPerSecond: 100, Burst: 100})
	SetupRoutes(mux, h, jwtCfg, limiter, m)

	srv := httptest.NewServer(Wrap(mux, m))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, jwt: jwtCfg}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) (*http.Response, []byte) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, s.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

type authBody struct {
	User  map[string]any `json:"user"`
	Token string         `json:"token"`
}

func TestEnrollmentFlow(t *testing.T) {
	srv := newTestServer(t, false)

	resp, body := srv.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":     "alice@x.com",
		"password":  "secret123",
		"firstName": "Alice",
		"lastName":  "Smith",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var registered authBody
	require.NoError(t, json.Unmarshal(body, &registered))
	assert.NotContains(t, registered.User, "password")
	assert.EqualValues(t, 1, registered.User["id"])

	resp, body = srv.do(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "alice@x.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var login authBody
	require.NoError(t, json.Unmarshal(body, &login))
	assert.NotContains(t, login.User, "password")
	assert.Equal(t, "alice@x.com", login.User["email"])
	require.NotEmpty(t, login.Token)

	resp, body = srv.do(t, http.MethodPost, "/api/course-registrations", map[string]any{
		"userId":        1,
		"courseId":      1,
		"paymentStatus": "completed",
	}, login.Token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = srv.do(t, http.MethodGet, "/api/users/1/registrations", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var regs []map[string]any
	require.NoError(t, json.Unmarshal(body, &regs))
	require.Len(t, regs, 1)
	assert.EqualValues(t, 1, regs[0]["courseId"])
	assert.Equal(t, "completed", regs[0]["paymentStatus"])

	resp, body = srv.do(t, http.MethodGet, "/api/courses/1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var course map[string]any
	require.NoError(t, json.Unmarshal(body, &course))
	assert.EqualValues(t, 1, course["id"])

	resp, _ = srv.do(t, http.MethodGet, "/api/auth/profile", nil, login.Token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthErrors(t *testing.T) {
	srv := newTestServer(t, false)
	user := map[string]any{"email": "alice@x.com", "password": "secret123", "firstName": "Alice", "lastName": "Smith"}
	resp, _ := srv.do(t, http.MethodPost, "/api/auth/register", user, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := srv.do(t, http.MethodPost, "/api/auth/register", user, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "User already exists with this email")

	_, unknown := srv.do(t, http.MethodPost, "/api/auth/login", map[string]any{"email": "bob@x.com", "password": "secret123"}, "")
	resp, wrong := srv.do(t, http.MethodPost, "/api/auth/login", map[string]any{"email": "alice@x.com", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, string(unknown), string(wrong))

	resp, body = srv.do(t, http.MethodPost, "/api/auth/register", map[string]any{"email": "bad"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(body, &errBody))
	assert.Equal(t, "Invalid email address", errBody.Fields["email"])

	resp, _ = srv.do(t, http.MethodGet, "/api/auth/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCourses(t *testing.T) {
	srv := newTestServer(t, false)

	for _, tc := range []struct {
		query string
		want  int
	}{
		{"", 6},
		{"?category=all", 6},
		{"?category=astrology", 6},
		{"?category=technology", 2},
	} {
		t.Run(tc.query, func(t *testing.T) {
			resp, body := srv.do(t, http.MethodGet, "/api/courses"+tc.query, nil, "")
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var courses []map[string]any
			require.NoError(t, json.Unmarshal(body, &courses))
			assert.Len(t, courses, tc.want)
		})
	}

	resp, _ := srv.do(t, http.MethodGet, "/api/courses/999", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = srv.do(t, http.MethodGet, "/api/courses/abc", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRegistrationErrors(t *testing.T) {
	srv := newTestServer(t, false)
	resp, body := srv.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email": "alice@x.com", "password": "secret123", "firstName": "Alice", "lastName": "Smith",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var alice authBody
	require.NoError(t, json.Unmarshal(body, &alice))

	resp, body = srv.do(t, http.MethodPost, "/api/course-registrations", map[string]any{"userId": 1, "courseId": 99}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "Course not found")

	resp, body = srv.do(t, http.MethodPost, "/api/course-registrations", map[string]any{"userId": 99, "courseId": 1}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "User not found")

	resp, _ = srv.do(t, http.MethodPost, "/api/course-registrations", map[string]any{"userId": 1, "courseId": 2}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = srv.do(t, http.MethodPost, "/api/course-registrations", map[string]any{"userId": 1, "courseId": 2}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = srv.do(t, http.MethodPost, "/api/course-registrations", map[string]any{"userId": 2, "courseId": 1}, alice.Token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = srv.do(t, http.MethodGet, "/api/users/abc/registrations", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = srv.do(t, http.MethodGet, "/api/users/42/registrations", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestRegistrationKeepsPaymentStatus(t *testing.T) {
	srv := newTestServer(t, false)
	resp, body := srv.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email": "alice@x.com", "password": "secret123", "firstName": "Alice", "lastName": "Smith",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = srv.do(t, http.MethodPost, "/api/course-registrations", map[string]any{
		"userId": 1, "courseId": 1, "paymentStatus": "paid",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "paid", created["paymentStatus"])

	resp, body = srv.do(t, http.MethodGet, "/api/users/1/registrations", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var regs []map[string]any
	require.NoError(t, json.Unmarshal(body, &regs))
	require.Len(t, regs, 1)
	assert.Equal(t, "paid", regs[0]["paymentStatus"])

	resp, body = srv.do(t, http.MethodPost, "/api/course-registrations", map[string]any{
		"userId": 1, "courseId": 2, "paymentStatus": strings.Repeat("x", 33),
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "paymentStatus")
}

func TestRequireToken(t *testing.T) {
	srv := newTestServer(t, true)
	resp, _ := srv.do(t, http.MethodGet, "/api/users/1/registrations", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := middleware.GenerateToken(1, "alice@x.com", srv.jwt)
	require.NoError(t, err)
	resp, _ = srv.do(t, http.MethodGet, "/api/users/1/registrations", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestContact(t *testing.T) {
	srv := newTestServer(t, false)
	resp, body := srv.do(t, http.MethodPost, "/api/contact", map[string]any{
		"firstName": "Bob",
		"lastName":  "Jones",
		"email":     "bob@x.com",
		"subject":   "Hello",
		"message":   "Is there a student discount?",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Message sent successfully"}`, string(body))

	resp, _ = srv.do(t, http.MethodPost, "/api/contact", map[string]any{"firstName": "Bob"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOpsEndpoints(t *testing.T) {
	srv := newTestServer(t, false)

	resp, body := srv.do(t, http.MethodGet, "/readyz", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ready","details":{"storage":"ok"}}`, string(body))

	resp, _ = srv.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	srv.do(t, http.MethodGet, "/api/courses", nil, "")
	resp, body = srv.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `path="GET /api/courses"`))

	resp, body = srv.do(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CourseHub backend is running.", string(body))
}
