package session_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/hanziflash/hanziflash/internal/models"
	"github.com/hanziflash/hanziflash/internal/session"
	"github.com/hanziflash/hanziflash/internal/testutil"
)

type RepositorySuite struct {
	suite.Suite
	store *testutil.MemStore
	repo  *session.Repository
}

func (s *RepositorySuite) SetupTest() {
	s.store = testutil.NewMemStore()
	s.repo = session.NewRepository(s.store)
}

func (s *RepositorySuite) TestTokenRoundTrip() {
	s.Assert().Empty(s.repo.Token(), "fresh store has no token")

	s.Require().NoError(s.repo.SetToken("tok-1"))
	s.Assert().Equal("tok-1", s.repo.Token())

	s.Require().NoError(s.repo.SetToken(""))
	s.Assert().Empty(s.repo.Token(), "empty token removes the key")
}

func (s *RepositorySuite) TestUserRoundTrip() {
	s.Assert().Nil(s.repo.User())

	u := &models.UserProfile{ID: "u1", Name: "Linh", Email: "linh@example.com"}
	s.Require().NoError(s.repo.SetUser(u))

	got := s.repo.User()
	s.Require().NotNil(got)
	s.Assert().Equal(*u, *got)

	s.Require().NoError(s.repo.SetUser(nil))
	s.Assert().Nil(s.repo.User())
}

func (s *RepositorySuite) TestUserCorruptPayload() {
	s.Require().NoError(s.store.Set("user", "{not json"))
	s.Assert().Nil(s.repo.User(), "corrupt profile reads as absent")
}

func (s *RepositorySuite) TestBookmarksPreserveOrder() {
	ids := []string{"card-3", "card-1", "card-2"}
	s.Require().NoError(s.repo.SetBookmarks(ids))
	s.Assert().Equal(ids, s.repo.Bookmarks())
}

func (s *RepositorySuite) TestRoleDefaultsToGuest() {
	s.Assert().Equal(models.RoleGuest, s.repo.Role())

	s.Require().NoError(s.repo.SetRole(models.RolePaidUser))
	s.Assert().Equal(models.RolePaidUser, s.repo.Role())

	s.Require().NoError(s.store.Set("user_role", "superuser"))
	s.Assert().Equal(models.RoleGuest, s.repo.Role(), "unknown role reads as guest")
}

func (s *RepositorySuite) TestGlobalLevel() {
	s.Assert().Empty(s.repo.GlobalLevel())

	s.Require().NoError(s.repo.SetGlobalLevel("HSK2"))
	s.Assert().Equal("HSK2", s.repo.GlobalLevel())

	s.Require().NoError(s.repo.SetGlobalLevel(""))
	_, ok, err := s.store.Get("globalLevel")
	s.Require().NoError(err)
	s.Assert().False(ok, "clearing the level removes the key from storage")
}

func (s *RepositorySuite) TestInvalidateClearsTokenAndUser() {
	s.Require().NoError(s.repo.SetToken("tok-1"))
	s.Require().NoError(s.repo.SetUser(&models.UserProfile{ID: "u1"}))
	s.Require().NoError(s.repo.SetBookmarks([]string{"card-1"}))

	s.repo.Invalidate()

	s.Assert().Empty(s.repo.Token())
	s.Assert().Nil(s.repo.User())
	s.Assert().Equal([]string{"card-1"}, s.repo.Bookmarks(), "invalidation leaves bookmarks alone")
}

func (s *RepositorySuite) TestClearRemovesSessionKeys() {
	s.Require().NoError(s.repo.SetToken("tok-1"))
	s.Require().NoError(s.repo.SetUser(&models.UserProfile{ID: "u1"}))
	s.Require().NoError(s.repo.SetBookmarks([]string{"card-1"}))
	s.Require().NoError(s.repo.SetRole(models.RolePaidUser))
	s.Require().NoError(s.repo.SetGlobalLevel("HSK2"))

	s.repo.Clear()

	s.Assert().Empty(s.repo.Token())
	s.Assert().Nil(s.repo.User())
	s.Assert().Empty(s.repo.Bookmarks())
	s.Assert().Equal(models.RoleGuest, s.repo.Role())
	s.Assert().Equal("HSK2", s.repo.GlobalLevel(), "settings survive logout")
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func TestRepository_SQLiteBacked(t *testing.T) {
	repo := session.NewRepository(testutil.NewTestStore(t))

	if err := repo.SetToken("tok-9"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if got := repo.Token(); got != "tok-9" {
		t.Fatalf("Token = %q, want %q", got, "tok-9")
	}
}
