package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanziflash/hanziflash/internal/api"
	"github.com/hanziflash/hanziflash/internal/services"
)

func newUserService(t *testing.T, handler http.Handler) services.UserService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return services.NewUserService(api.New(srv.URL, nil))
}

func TestFetchUser_FullPayload(t *testing.T) {
	svc := newUserService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"u1","name":"Linh","email":"linh@example.com","avatar":"a.png",
			"streak":{"current":4,"best":9,"lastUpdated":"2026-08-29"},
			"bookmarks":["card-1","card-2"],
			"badges":[{"id":"b1","name":"Starter","icon":"star","description":"First review"}]}`))
	}))

	u, err := svc.FetchUser(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Linh", u.Name)
	require.NotNil(t, u.Streak)
	assert.Equal(t, 4, u.Streak.Current)
	assert.Equal(t, []string{"card-1", "card-2"}, u.Bookmarks)
	require.Len(t, u.Badges, 1)
	assert.Equal(t, "Starter", u.Badges[0].Name)
}

func TestFetchUser_MinimalPayload(t *testing.T) {
	svc := newUserService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"u1","name":"Linh","email":"linh@example.com"}`))
	}))

	u, err := svc.FetchUser(context.Background())
	require.NoError(t, err)

	assert.Nil(t, u.Streak)
	assert.Nil(t, u.Bookmarks)
	assert.Nil(t, u.Badges)
}

func TestBookmarksEnvelope(t *testing.T) {
	var gotBody map[string][]string
	svc := newUserService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"data":{"bookmarks":["card-9"]}}`))
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Write([]byte(`{"data":{"bookmarks":["card-9","card-1"]}}`))
		}
	}))
	ctx := context.Background()

	got, err := svc.FetchBookmarks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"card-9"}, got)

	updated, err := svc.UpdateBookmarks(ctx, []string{"card-9", "card-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"card-9", "card-1"}, gotBody["bookmarks"])
	assert.Equal(t, []string{"card-9", "card-1"}, updated)
}

func TestUpdateBookmarks_NilSendsEmptyList(t *testing.T) {
	var gotBody map[string]any
	svc := newUserService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"data":{"bookmarks":[]}}`))
	}))

	_, err := svc.UpdateBookmarks(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []any{}, gotBody["bookmarks"], "nil list marshals as [] not null")
}

func TestFetchStreakAndBadges(t *testing.T) {
	svc := newUserService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/streak":
			w.Write([]byte(`{"current":2,"best":11,"lastUpdated":"2026-08-30"}`))
		case "/badges":
			w.Write([]byte(`{"data":[{"id":"b1","name":"Starter","icon":"star","description":"d"},
				{"id":"b2","name":"Streak 7","icon":"fire","description":"d"}]}`))
		}
	}))
	ctx := context.Background()

	streak, err := svc.FetchStreak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, streak.Current)
	assert.Equal(t, 11, streak.Best)

	badges, err := svc.FetchBadges(ctx)
	require.NoError(t, err)
	require.Len(t, badges, 2)
	assert.Equal(t, "Streak 7", badges[1].Name)
}

func TestAuthService_LoginLogout(t *testing.T) {
	var loginBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&loginBody))
			w.Write([]byte(`{"token":"tok-1","user":{"id":"u1","name":"Linh","email":"linh@example.com"}}`))
		case "/auth/logout":
			w.Write([]byte(`{}`))
		}
	}))
	t.Cleanup(srv.Close)

	svc := services.NewAuthService(api.New(srv.URL, nil))
	ctx := context.Background()

	res, err := svc.Login(ctx, "linh@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.Token)
	assert.Equal(t, "u1", res.User.ID)
	assert.Equal(t, "linh@example.com", loginBody["email"])
	assert.Equal(t, "secret", loginBody["password"])

	assert.NoError(t, svc.Logout(ctx))
}

func TestAuthService_LogoutFailurePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	svc := services.NewAuthService(api.New(srv.URL, nil))
	// The service layer does not swallow the failure; the user store does.
	assert.Error(t, svc.Logout(context.Background()))
}
