package stores_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hanziflash/hanziflash/internal/models"
	"github.com/hanziflash/hanziflash/internal/services"
	"github.com/hanziflash/hanziflash/internal/session"
	"github.com/hanziflash/hanziflash/internal/stores"
	"github.com/hanziflash/hanziflash/internal/testutil"
	"github.com/hanziflash/hanziflash/internal/testutil/mocks"
)

type userStoreFixture struct {
	auth  *mocks.MockAuthService
	users *mocks.MockUserService
	repo  *session.Repository
	store *stores.UserStore
}

func newUserStoreFixture() *userStoreFixture {
	f := &userStoreFixture{
		auth:  new(mocks.MockAuthService),
		users: new(mocks.MockUserService),
		repo:  session.NewRepository(testutil.NewMemStore()),
	}
	f.store = stores.NewUserStore(f.auth, f.users, f.repo)
	return f
}

func TestLogin_StoresTokenAndProfile(t *testing.T) {
	f := newUserStoreFixture()
	f.auth.On("Login", mock.Anything, "linh@example.com", "secret").Return(&services.LoginResult{
		Token: "tok-1",
		User:  models.UserProfile{ID: "u1", Name: "linh", Email: "linh@example.com"},
		Role:  models.RolePaidUser,
	}, nil)
	f.users.On("FetchUser", mock.Anything).Return(&services.UserPayload{
		UserProfile: models.UserProfile{ID: "u1", Name: "Nguyễn Linh", Email: "linh@example.com", Avatar: "a.png"},
		Bookmarks:   []string{"card-7"},
	}, nil)

	err := f.store.Login(context.Background(), "linh@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "tok-1", f.repo.Token(), "token persisted before profile fetch")
	assert.Equal(t, models.RolePaidUser, f.repo.Role(), "server-provided role cached for feature gating")
	require.NotNil(t, f.store.User())
	assert.Equal(t, "Nguyễn Linh", f.store.User().Name, "profile fetch overwrites login user wholesale")
	assert.Equal(t, []string{"card-7"}, f.store.Bookmarks())

	persisted := f.repo.User()
	require.NotNil(t, persisted, "profile mirrored into persisted storage")
	assert.Equal(t, "Nguyễn Linh", persisted.Name)
	assert.False(t, f.store.Loading())
	f.auth.AssertExpectations(t)
	f.users.AssertExpectations(t)
}

func TestLogin_FailureRecordsErrorAndReRaises(t *testing.T) {
	f := newUserStoreFixture()
	f.auth.On("Login", mock.Anything, "linh@example.com", "wrong").
		Return(nil, errors.New("UNAUTHORIZED: /auth/login returned status 401"))

	err := f.store.Login(context.Background(), "linh@example.com", "wrong")

	require.Error(t, err)
	assert.Contains(t, f.store.Err(), "Login failed")
	assert.Empty(t, f.repo.Token())
	assert.False(t, f.store.Loading())
}

func TestLogin_ProfileFetchFailureIsSilent(t *testing.T) {
	f := newUserStoreFixture()
	f.auth.On("Login", mock.Anything, "linh@example.com", "secret").Return(&services.LoginResult{
		Token: "tok-1",
		User:  models.UserProfile{ID: "u1", Name: "linh", Email: "linh@example.com"},
	}, nil)
	f.users.On("FetchUser", mock.Anything).Return(nil, errors.New("boom"))

	err := f.store.Login(context.Background(), "linh@example.com", "secret")

	require.NoError(t, err, "login succeeds even when the richer profile fetch fails")
	require.NotNil(t, f.store.User())
	assert.Equal(t, "linh", f.store.User().Name, "login response user is kept")
	assert.Equal(t, "tok-1", f.repo.Token())
}

func TestLogout_ClearsStateEvenWhenRemoteFails(t *testing.T) {
	f := newUserStoreFixture()
	require.NoError(t, f.repo.SetToken("tok-1"))
	require.NoError(t, f.repo.SetUser(&models.UserProfile{ID: "u1"}))
	require.NoError(t, f.repo.SetBookmarks([]string{"card-1"}))
	f.store.LoadSession()

	f.auth.On("Logout", mock.Anything).Return(errors.New("server on fire"))

	f.store.Logout(context.Background())

	assert.Empty(t, f.repo.Token(), "persisted token cleared despite remote failure")
	assert.Nil(t, f.repo.User())
	assert.Nil(t, f.store.User())
	assert.Empty(t, f.store.Bookmarks())
	assert.False(t, f.store.LoggedIn())
}

func TestRefreshMeta_AllOrNothing(t *testing.T) {
	f := newUserStoreFixture()
	require.NoError(t, f.repo.SetBookmarks([]string{"old-card"}))
	f.store.LoadSession()

	f.users.On("FetchBookmarks", mock.Anything).Return([]string{"new-card"}, nil)
	f.users.On("FetchStreak", mock.Anything).Return(nil, errors.New("streak down"))
	f.users.On("FetchBadges", mock.Anything).Return([]models.Badge{{ID: "b1"}}, nil)

	f.store.RefreshMeta(context.Background())

	assert.Equal(t, []string{"old-card"}, f.store.Bookmarks(), "failed batch applies nothing")
	assert.Nil(t, f.store.Streak())
	assert.Empty(t, f.store.Badges())
}

func TestRefreshMeta_AppliesAndPersists(t *testing.T) {
	f := newUserStoreFixture()
	f.users.On("FetchBookmarks", mock.Anything).Return([]string{"card-2"}, nil)
	f.users.On("FetchStreak", mock.Anything).Return(&models.Streak{Current: 3, Best: 8}, nil)
	f.users.On("FetchBadges", mock.Anything).Return([]models.Badge{{ID: "b1", Name: "Starter"}}, nil)

	f.store.RefreshMeta(context.Background())

	assert.Equal(t, []string{"card-2"}, f.store.Bookmarks())
	require.NotNil(t, f.store.Streak())
	assert.Equal(t, 3, f.store.Streak().Current)
	require.Len(t, f.store.Badges(), 1)
	assert.Equal(t, []string{"card-2"}, f.repo.Bookmarks(), "refresh persists bookmarks")
}

func TestToggleBookmark_AddThenRemove(t *testing.T) {
	f := newUserStoreFixture()
	f.users.On("UpdateBookmarks", mock.Anything, []string{"card-1"}).
		Return([]string{"card-1"}, nil).Once()
	f.users.On("UpdateBookmarks", mock.Anything, []string{}).
		Return([]string{}, nil).Once()

	ctx := context.Background()

	require.NoError(t, f.store.ToggleBookmark(ctx, "card-1"))
	assert.Equal(t, []string{"card-1"}, f.store.Bookmarks())
	assert.True(t, f.store.IsBookmarked("card-1"))
	assert.Equal(t, []string{"card-1"}, f.repo.Bookmarks())

	require.NoError(t, f.store.ToggleBookmark(ctx, "card-1"))
	assert.Empty(t, f.store.Bookmarks())
	assert.False(t, f.store.IsBookmarked("card-1"))
	f.users.AssertExpectations(t)
}

func TestToggleBookmark_FailureReverts(t *testing.T) {
	f := newUserStoreFixture()
	require.NoError(t, f.repo.SetBookmarks([]string{"card-1"}))
	f.store.LoadSession()

	f.users.On("UpdateBookmarks", mock.Anything, []string{"card-1", "card-2"}).
		Return(nil, errors.New("RATE_LIMITED"))

	err := f.store.ToggleBookmark(context.Background(), "card-2")

	require.Error(t, err)
	assert.Equal(t, []string{"card-1"}, f.store.Bookmarks(), "optimistic change reverted on failure")
}

func TestToggleBookmark_PreservesOrder(t *testing.T) {
	f := newUserStoreFixture()
	require.NoError(t, f.repo.SetBookmarks([]string{"card-3", "card-1", "card-2"}))
	f.store.LoadSession()

	f.users.On("UpdateBookmarks", mock.Anything, []string{"card-3", "card-2"}).
		Return([]string{"card-3", "card-2"}, nil)

	require.NoError(t, f.store.ToggleBookmark(context.Background(), "card-1"))
	assert.Equal(t, []string{"card-3", "card-2"}, f.store.Bookmarks())
}
