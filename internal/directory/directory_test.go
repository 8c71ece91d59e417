package directory

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/events"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/social"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func newDirectory(db *sqlx.DB) *Directory {
	return New(db, social.New(db, events.NewLocalBus()))
}

func TestSearchEmptyQueryReturnsNothing(t *testing.T) {
	db, mock := newMockDB(t)
	dir := newDirectory(db)

	// No store round trip at all for an empty query.
	results, err := dir.Search(uuid.New(), "")

	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchExcludesCaller(t *testing.T) {
	db, mock := newMockDB(t)
	dir := newDirectory(db)
	caller, match := uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT id, username, email, bio, avatar_path").
		WithArgs(caller, "%trip%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "bio", "avatar_path"}).
			AddRow(match.String(), "tripper", "tripper@example.com", "I love trips", nil))

	results, err := dir.Search(caller, "trip")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, match, results[0].ID)
	assert.Equal(t, "tripper", results[0].Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchMatchesWildcardsLiterally(t *testing.T) {
	db, mock := newMockDB(t)
	dir := newDirectory(db)
	caller := uuid.New()

	// "%" and "_" in the query are escaped, so they match themselves
	// instead of turning the search into a match-everything pattern.
	mock.ExpectQuery("SELECT id, username, email, bio, avatar_path").
		WithArgs(caller, `%100\% fun\_trips%`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "bio", "avatar_path"}))

	results, err := dir.Search(caller, "100% fun_trips")

	require.NoError(t, err)
	assert.Empty(t, results)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicProfileIncludesEdges(t *testing.T) {
	db, mock := newMockDB(t)
	dir := newDirectory(db)
	user, follower, followee := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery("SELECT username, email, bio, avatar_path, location").
		WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{
			"username", "email", "bio", "avatar_path", "location",
			"trip_count", "review_count", "year_count"}).
			AddRow("alice", "alice@example.com", "wanderer", nil, "Lisbon", 12, 4, 3))

	mock.ExpectQuery("SELECT follower_id FROM follows WHERE followee_id").
		WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{"follower_id"}).AddRow(follower.String()))

	mock.ExpectQuery("SELECT followee_id FROM follows WHERE follower_id").
		WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{"followee_id"}).AddRow(followee.String()))

	profile, err := dir.PublicProfile(user)

	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, 12, profile.Trips)
	assert.Equal(t, []uuid.UUID{follower}, profile.Followers)
	assert.Equal(t, []uuid.UUID{followee}, profile.Following)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfileReportsReplacedAvatar(t *testing.T) {
	db, mock := newMockDB(t)
	dir := newDirectory(db)
	user := uuid.New()
	newAvatar := "/uploads/new.png"

	mock.ExpectQuery("SELECT avatar_path FROM users WHERE id").
		WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{"avatar_path"}).AddRow("/uploads/old.png"))
	mock.ExpectExec("UPDATE users SET avatar_path").
		WithArgs(newAvatar, user).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT bio, avatar_path, location").
		WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{
			"bio", "avatar_path", "location", "trip_count", "review_count", "year_count"}).
			AddRow("wanderer", newAvatar, "Lisbon", 0, 0, 0))

	profile, oldAvatar, err := dir.UpdateProfile(user, nil, &newAvatar)

	require.NoError(t, err)
	require.NotNil(t, profile.AvatarPath)
	assert.Equal(t, newAvatar, *profile.AvatarPath)
	require.NotNil(t, oldAvatar)
	assert.Equal(t, "/uploads/old.png", *oldAvatar)
	require.NoError(t, mock.ExpectationsWereMet())
}
