// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/exam-archive/catalog"
	"github.com/danielhkuo/exam-archive/models"
	"github.com/danielhkuo/exam-archive/session"
)

// Error is a non-2xx answer from the API. Error() is the server's message verbatim.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.StatusCode)
}

// UpstreamMessage is the message the server sent, "" when it sent none
func (e *Error) UpstreamMessage() string {
	return e.Message
}

// IsStatus reports whether err is an API error with the given status code
func IsStatus(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

type listener func(event models.AuthEvent, s *models.Session)

// Client talks to the exam archive HTTP API. It serves as the remote for
// both catalog.Store and session.Store.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore

	mu        sync.Mutex
	session   *models.Session
	hydrated  bool
	listeners map[int]listener
	nextID    int
}

var (
	_ catalog.Remote = (*Client)(nil)
	_ session.Remote = (*Client)(nil)
)

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) { c.tokens = ts }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: 15 * time.Second},
		tokens:    &MemoryTokenStore{},
		listeners: map[int]listener{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog

func (c *Client) List(ctx context.Context) ([]models.Exam, error) {
	var resp models.ExamListResponse
	if err := c.do(ctx, http.MethodGet, "/exams", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Exams, nil
}

func (c *Client) Insert(ctx context.Context, in models.ExamInput) (models.Exam, error) {
	var exam models.Exam
	err := c.do(ctx, http.MethodPost, "/admin/exams", in, &exam)
	return exam, err
}

func (c *Client) Update(ctx context.Context, id string, patch models.ExamPatch) (models.Exam, error) {
	var exam models.Exam
	err := c.do(ctx, http.MethodPatch, "/admin/exams/"+url.PathEscape(id), patch, &exam)
	return exam, err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/exams/"+url.PathEscape(id), nil, nil)
}

// Careers returns every career with its exam count
func (c *Client) Careers(ctx context.Context) ([]models.CareerSummary, error) {
	var out []models.CareerSummary
	err := c.do(ctx, http.MethodGet, "/careers", nil, &out)
	return out, err
}

// Query runs a filtered listing on the server
func (c *Client) Query(ctx context.Context, f catalog.Filter) (models.ExamListResponse, error) {
	var resp models.ExamListResponse
	path := "/exams"
	if qs := filterValues(f).Encode(); qs != "" {
		path += "?" + qs
	}
	err := c.do(ctx, http.MethodGet, path, nil, &resp)
	return resp, err
}

func (c *Client) Years(ctx context.Context) ([]int, error) {
	var resp models.YearsResponse
	err := c.do(ctx, http.MethodGet, "/exams/years", nil, &resp)
	return resp.Years, err
}

func (c *Client) Exam(ctx context.Context, id string) (models.Exam, error) {
	var exam models.Exam
	err := c.do(ctx, http.MethodGet, "/exams/"+url.PathEscape(id), nil, &exam)
	return exam, err
}

// Reload asks the server to reread its catalog
func (c *Client) Reload(ctx context.Context) (int, error) {
	var resp models.ReloadResponse
	err := c.do(ctx, http.MethodPost, "/admin/exams/reload", nil, &resp)
	return resp.Count, err
}

func filterValues(f catalog.Filter) url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("career", f.Career)
	set("q", f.Q)
	set("cycle", f.Cycle)
	set("type", f.Type)
	set("period", f.Period)
	set("year", f.Year)
	if f.Sort != "" {
		v.Set("sort", string(f.Sort))
	}
	return v
}

// Auth

// GetSession returns the stored session if the server still accepts it.
// A rejected token is forgotten and reported as no session.
func (c *Client) GetSession(ctx context.Context) (*models.Session, error) {
	current, err := c.current()
	if err != nil || current == nil {
		return nil, err
	}

	var fresh models.Session
	err = c.do(ctx, http.MethodGet, "/auth/session", nil, &fresh)
	if IsStatus(err, http.StatusUnauthorized) {
		c.forget()
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fresh, nil
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*models.User, error) {
	var s models.Session
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &s); err != nil {
		return nil, err
	}
	if s.User.ID == "" {
		return nil, nil
	}
	if err := c.remember(&s); err != nil {
		return nil, err
	}
	c.emit(models.EventSignedIn, &s)
	user := s.User
	return &user, nil
}

// SignOut ends the session on the server. The local token is dropped
// whatever the server answers; a token the server no longer knows counts
// as signed out, any other failure is returned after clearing.
func (c *Client) SignOut(ctx context.Context) error {
	current, err := c.current()
	if current != nil {
		err = c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
		if IsStatus(err, http.StatusUnauthorized) {
			err = nil
		}
	}
	c.forget()
	c.emit(models.EventSignedOut, nil)
	return err
}

// RefreshSession extends the current session and stores the new token
func (c *Client) RefreshSession(ctx context.Context) (*models.Session, error) {
	var s models.Session
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, &s); err != nil {
		return nil, err
	}
	if err := c.remember(&s); err != nil {
		return nil, err
	}
	c.emit(models.EventTokenRefreshed, &s)
	return &s, nil
}

type subscription struct {
	once sync.Once
	fn   func()
}

func (s *subscription) Unsubscribe() { s.once.Do(s.fn) }

// OnAuthStateChange registers fn for sign-in, sign-out and refresh events
func (c *Client) OnAuthStateChange(fn func(event models.AuthEvent, s *models.Session)) session.Subscription {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return &subscription{fn: func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}}
}

// Token returns the current access token, or "" when signed out
func (c *Client) Token() string {
	s, _ := c.current()
	if s == nil {
		return ""
	}
	return s.AccessToken
}

func (c *Client) current() (*models.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hydrated {
		s, err := c.tokens.Load()
		if err != nil {
			return nil, err
		}
		c.session = s
		c.hydrated = true
	}
	return c.session, nil
}

func (c *Client) remember(s *models.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *s
	c.session = &cp
	c.hydrated = true
	return c.tokens.Save(&cp)
}

func (c *Client) forget() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
	c.hydrated = true
	_ = c.tokens.Clear()
}

func (c *Client) emit(event models.AuthEvent, s *models.Session) {
	c.mu.Lock()
	fns := make([]listener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		var cp *models.Session
		if s != nil {
			v := *s
			cp = &v
		}
		fn(event, cp)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var envelope models.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&envelope) == nil {
			apiErr.Message = envelope.Message
			if apiErr.Message == "" {
				apiErr.Message = envelope.Error
			}
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
