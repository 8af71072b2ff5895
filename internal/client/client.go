// Package client is a Go client for the CourseHub API. It keeps the signed-in
// session and validates forms locally before any request is sent.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"COURSEHUB_BACK-END/internal/dto"
	"COURSEHUB_BACK-END/internal/models"
	"COURSEHUB_BACK-END/internal/validation"
)

// ErrNotSignedIn is returned by operations that need a session
var ErrNotSignedIn = errors.New("client: not signed in")

// APIError is a non-2xx answer from the server
type APIError struct {
	Status  int
	Type    string
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Type, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Type)
}

// Session is the signed-in user and their bearer token
type Session struct {
	User  dto.UserResponse
	Token string
}

// Client talks to the REST API
type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.RWMutex
	session *Session
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a client for the API served at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register validates the form, creates the account and signs in
func (c *Client) Register(ctx context.Context, form RegisterForm) (*dto.UserResponse, error) {
	validation.Sanitize(&form)
	if err := validation.Struct(form); err != nil {
		return nil, err
	}
	req := dto.RegisterRequest{
		Email:          form.Email,
		Password:       form.Password,
		FirstName:      form.FirstName,
		LastName:       form.LastName,
		Phone:          form.Phone,
		EducationLevel: form.EducationLevel,
	}
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	c.setSession(&Session{User: resp.User, Token: resp.Token})
	return &resp.User, nil
}

// Login validates the form and signs in
func (c *Client) Login(ctx context.Context, form LoginForm) (*dto.UserResponse, error) {
	validation.Sanitize(&form)
	if err := validation.Struct(form); err != nil {
		return nil, err
	}
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", dto.LoginRequest(form), &resp); err != nil {
		return nil, err
	}
	c.setSession(&Session{User: resp.User, Token: resp.Token})
	return &resp.User, nil
}

// Logout forgets the session. Nothing is sent to the server.
func (c *Client) Logout() {
	c.setSession(nil)
}

// CurrentUser returns the signed-in user, if any
func (c *Client) CurrentUser() (*dto.UserResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil, false
	}
	u := c.session.User
	return &u, true
}

// Session returns a copy of the current session
func (c *Client) Session() (Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

func (c *Client) setSession(s *Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

// ListCourses returns the catalogue; an empty category means all
func (c *Client) ListCourses(ctx context.Context, category string) ([]models.Course, error) {
	path := "/api/courses"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var courses []models.Course
	if err := c.do(ctx, http.MethodGet, path, nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// GetCourse returns one course
func (c *Client) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	if err := c.do(ctx, http.MethodGet, "/api/courses/"+strconv.FormatInt(id, 10), nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// RegisterForCourse sends the enrollment request
func (c *Client) RegisterForCourse(ctx context.Context, userID, courseID int64, paymentStatus string) (*models.CourseRegistration, error) {
	req := dto.CourseRegistrationRequest{UserID: &userID, CourseID: &courseID}
	if paymentStatus != "" {
		req.PaymentStatus = &paymentStatus
	}
	var reg models.CourseRegistration
	if err := c.do(ctx, http.MethodPost, "/api/course-registrations", req, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// UserRegistrations lists a user's registrations
func (c *Client) UserRegistrations(ctx context.Context, userID int64) ([]models.CourseRegistration, error) {
	var regs []models.CourseRegistration
	if err := c.do(ctx, http.MethodGet, "/api/users/"+strconv.FormatInt(userID, 10)+"/registrations", nil, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// DashboardEntry is one enrolled course as shown on the dashboard
type DashboardEntry struct {
	Registration models.CourseRegistration
	Course       *models.Course
}

// Dashboard returns the signed-in user's registrations joined with their
// courses. A registration whose course lookup fails keeps a nil Course.
func (c *Client) Dashboard(ctx context.Context) ([]DashboardEntry, error) {
	user, ok := c.CurrentUser()
	if !ok {
		return nil, ErrNotSignedIn
	}
	regs, err := c.UserRegistrations(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	courses, err := c.ListCourses(ctx, "")
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]models.Course, len(courses))
	for _, course := range courses {
		byID[course.ID] = course
	}

	entries := make([]DashboardEntry, 0, len(regs))
	for _, r := range regs {
		e := DashboardEntry{Registration: r}
		if course, ok := byID[r.CourseID]; ok {
			e.Course = &course
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// SendContact validates the form and posts it. An invalid form never reaches the network.
func (c *Client) SendContact(ctx context.Context, form ContactForm) error {
	validation.Sanitize(&form)
	if err := validation.Struct(form); err != nil {
		return err
	}
	req := dto.ContactRequest{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Phone:     form.Phone,
		Subject:   form.Subject,
		Message:   form.Message,
	}
	return c.do(ctx, http.MethodPost, "/api/contact", req, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s, ok := c.Session(); ok && s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Type: http.StatusText(resp.StatusCode)}
		var e dto.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil {
			if e.Error != "" {
				apiErr.Type = e.Error
			}
			apiErr.Message = e.Message
			apiErr.Fields = e.Fields
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
