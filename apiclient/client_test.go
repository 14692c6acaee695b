// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/exam-archive/catalog"
	"github.com/danielhkuo/exam-archive/models"
	"github.com/danielhkuo/exam-archive/session"
)

const testToken = "token-1"

// fakeAPI answers the subset of routes the client uses
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, code int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(v)
	}
	authorized := func(r *http.Request) bool {
		return r.Header.Get("Authorization") == "Bearer "+testToken
	}
	session := models.Session{
		AccessToken: testToken,
		ExpiresAt:   time.Now().Add(time.Hour).UTC(),
		User:        models.User{ID: "admin-1", Email: "admin@urp.edu.pe", Name: "Admin"},
	}

	mux.HandleFunc("GET /exams", func(w http.ResponseWriter, r *http.Request) {
		exams := []models.Exam{{ID: "a", Title: "Final Física", Career: "civil", Year: 2024}}
		if r.URL.Query().Get("career") == "informatica" {
			exams = []models.Exam{}
		}
		writeJSON(w, http.StatusOK, models.ExamListResponse{Exams: exams, Count: len(exams)})
	})
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized", Message: "Invalid login credentials"})
			return
		}
		writeJSON(w, http.StatusOK, session)
	})
	mux.HandleFunc("GET /auth/session", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized", Message: "invalid token"})
			return
		}
		writeJSON(w, http.StatusOK, session)
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized", Message: "invalid token"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshed := session
		refreshed.ExpiresAt = session.ExpiresAt.Add(time.Hour)
		writeJSON(w, http.StatusOK, refreshed)
	})
	mux.HandleFunc("DELETE /admin/exams/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized", Message: "missing bearer token"})
			return
		}
		if r.PathValue("id") != "a" {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Not Found", Message: "exam not found"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_List(t *testing.T) {
	srv := fakeAPI(t)
	c := New(srv.URL)

	exams, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, exams, 1)
	assert.Equal(t, "Final Física", exams[0].Title)
}

func TestClient_QuerySendsFilter(t *testing.T) {
	srv := fakeAPI(t)
	c := New(srv.URL)

	resp, err := c.Query(context.Background(), catalog.Filter{Career: "informatica"})
	require.NoError(t, err)
	assert.Empty(t, resp.Exams)
}

func TestFilterValues(t *testing.T) {
	v := filterValues(catalog.Filter{Career: "civil", Q: "calc", Year: "2024", Sort: catalog.SortOldest})
	assert.Equal(t, "career=civil&q=calc&sort=oldest&year=2024", v.Encode())
	assert.Empty(t, filterValues(catalog.Filter{}).Encode())
}

func TestClient_ErrorMessageIsVerbatim(t *testing.T) {
	srv := fakeAPI(t)
	c := New(srv.URL)

	_, err := c.SignInWithPassword(context.Background(), "admin@urp.edu.pe", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid login credentials", err.Error())
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
}

func TestClient_SignInEmitsAndPersists(t *testing.T) {
	srv := fakeAPI(t)
	store := &MemoryTokenStore{}
	c := New(srv.URL, WithTokenStore(store))

	var events []models.AuthEvent
	sub := c.OnAuthStateChange(func(e models.AuthEvent, s *models.Session) { events = append(events, e) })
	defer sub.Unsubscribe()

	user, err := c.SignInWithPassword(context.Background(), "admin@urp.edu.pe", "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", user.ID)
	assert.Equal(t, []models.AuthEvent{models.EventSignedIn}, events)

	saved, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, testToken, saved.AccessToken)
	assert.Equal(t, testToken, c.Token())
}

func TestClient_GetSession(t *testing.T) {
	srv := fakeAPI(t)

	t.Run("no stored token", func(t *testing.T) {
		c := New(srv.URL)
		s, err := c.GetSession(context.Background())
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("rehydrates from token store", func(t *testing.T) {
		store := &MemoryTokenStore{}
		require.NoError(t, store.Save(&models.Session{AccessToken: testToken}))

		c := New(srv.URL, WithTokenStore(store))
		s, err := c.GetSession(context.Background())
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "admin@urp.edu.pe", s.User.Email)
	})

	t.Run("rejected token is forgotten", func(t *testing.T) {
		store := &MemoryTokenStore{}
		require.NoError(t, store.Save(&models.Session{AccessToken: "stale"}))

		c := New(srv.URL, WithTokenStore(store))
		s, err := c.GetSession(context.Background())
		require.NoError(t, err)
		assert.Nil(t, s)

		saved, _ := store.Load()
		assert.Nil(t, saved)
	})
}

func TestClient_SignOut(t *testing.T) {
	srv := fakeAPI(t)
	c := New(srv.URL)
	_, err := c.SignInWithPassword(context.Background(), "admin@urp.edu.pe", "secret")
	require.NoError(t, err)

	var last models.AuthEvent
	sub := c.OnAuthStateChange(func(e models.AuthEvent, s *models.Session) {
		last = e
		assert.Nil(t, s)
	})
	defer sub.Unsubscribe()

	require.NoError(t, c.SignOut(context.Background()))
	assert.Equal(t, models.EventSignedOut, last)
	assert.Empty(t, c.Token())
}

// brokenLogoutAPI signs in normally but fails every logout
func brokenLogoutAPI(t *testing.T) *httptest.Server {
	t.Helper()
	session := models.Session{
		AccessToken: testToken,
		ExpiresAt:   time.Now().Add(time.Hour).UTC(),
		User:        models.User{ID: "admin-1", Email: "admin@urp.edu.pe"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(session)
	})
	mux.HandleFunc("GET /auth/session", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(session)
	})
	mux.HandleFunc("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Internal Server Error", Message: "boom"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_SignOutFailureStillForgets(t *testing.T) {
	srv := brokenLogoutAPI(t)
	store := &MemoryTokenStore{}
	c := New(srv.URL, WithTokenStore(store))
	_, err := c.SignInWithPassword(context.Background(), "admin@urp.edu.pe", "secret")
	require.NoError(t, err)

	var last models.AuthEvent
	sub := c.OnAuthStateChange(func(e models.AuthEvent, s *models.Session) { last = e })
	defer sub.Unsubscribe()

	err = c.SignOut(context.Background())
	assert.EqualError(t, err, "boom")
	assert.Equal(t, models.EventSignedOut, last)
	assert.Empty(t, c.Token())

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestSessionStore_LogoutFailureEndsSignedOut(t *testing.T) {
	srv := brokenLogoutAPI(t)
	path := filepath.Join(t.TempDir(), "session.json")

	c := New(srv.URL, WithTokenStore(NewFileTokenStore(path)))
	s := session.NewStore(c)
	release := s.Initialize(context.Background())
	defer release()

	_, err := s.Login(context.Background(), "admin@urp.edu.pe", "secret")
	require.NoError(t, err)
	require.True(t, s.IsAdmin())
	require.FileExists(t, path)

	err = s.Logout(context.Background())
	assert.EqualError(t, err, "boom")
	assert.False(t, s.IsAdmin())
	assert.Empty(t, c.Token())
	assert.NoFileExists(t, path)

	// A later process on the same session file starts signed out
	next := session.NewStore(New(srv.URL, WithTokenStore(NewFileTokenStore(path))))
	releaseNext := next.Initialize(context.Background())
	defer releaseNext()
	state, who := next.Current()
	assert.Equal(t, session.StateAnonymous, state)
	assert.Nil(t, who)
}

func TestSessionStore_LoginWithoutServerMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	s := session.NewStore(New(srv.URL))
	_, err := s.Login(context.Background(), "admin@urp.edu.pe", "secret")
	assert.EqualError(t, err, "Error al iniciar sesión")
}

func TestClient_RefreshEmits(t *testing.T) {
	srv := fakeAPI(t)
	c := New(srv.URL)
	_, err := c.SignInWithPassword(context.Background(), "admin@urp.edu.pe", "secret")
	require.NoError(t, err)

	var last models.AuthEvent
	sub := c.OnAuthStateChange(func(e models.AuthEvent, s *models.Session) { last = e })
	defer sub.Unsubscribe()

	s, err := c.RefreshSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.EventTokenRefreshed, last)
	assert.Equal(t, testToken, s.AccessToken)
}

func TestClient_UnsubscribeStopsEvents(t *testing.T) {
	srv := fakeAPI(t)
	c := New(srv.URL)

	calls := 0
	sub := c.OnAuthStateChange(func(models.AuthEvent, *models.Session) { calls++ })
	sub.Unsubscribe()
	sub.Unsubscribe()

	_, err := c.SignInWithPassword(context.Background(), "admin@urp.edu.pe", "secret")
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestClient_DeleteSendsBearerToken(t *testing.T) {
	srv := fakeAPI(t)
	c := New(srv.URL)

	err := c.Delete(context.Background(), "a")
	assert.True(t, IsStatus(err, http.StatusUnauthorized))

	_, err = c.SignInWithPassword(context.Background(), "admin@urp.edu.pe", "secret")
	require.NoError(t, err)
	require.NoError(t, c.Delete(context.Background(), "a"))

	err = c.Delete(context.Background(), "missing")
	assert.Equal(t, "exam not found", err.Error())
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	fs := NewFileTokenStore(path)

	s, err := fs.Load()
	require.NoError(t, err)
	assert.Nil(t, s)

	require.NoError(t, fs.Save(&models.Session{AccessToken: "abc", User: models.User{ID: "u1"}}))

	s, err = fs.Load()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "abc", s.AccessToken)
	assert.Equal(t, "u1", s.User.ID)

	require.NoError(t, fs.Clear())
	require.NoError(t, fs.Clear())
	s, err = fs.Load()
	require.NoError(t, err)
	assert.Nil(t, s)
}
