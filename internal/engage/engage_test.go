package engage

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/events"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/models/api_error"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func expectPostExists(mock sqlmock.Sqlmock, id uuid.UUID, exists bool) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(exists))
}

func expectLikeInsert(mock sqlmock.Sqlmock, postID, userID uuid.UUID) {
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING")).
		WithArgs(postID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func expectLikeMembers(mock sqlmock.Sqlmock, postID uuid.UUID, members ...uuid.UUID) {
	rows := sqlmock.NewRows([]string{"user_id"})
	for _, m := range members {
		rows.AddRow(m.String())
	}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM post_likes WHERE post_id = $1")).
		WithArgs(postID).
		WillReturnRows(rows)
}

func apiStatus(t *testing.T, err error) int {
	t.Helper()

	var apiErr api_error.APIError
	require.ErrorAs(t, err, &apiErr)
	return apiErr.HTTPStatus()
}

func TestLikeTwiceKeepsSingleMembership(t *testing.T) {
	db, mock := newMockDB(t)
	engine := New(db, events.NewLocalBus(), nil)
	postID, userID := uuid.New(), uuid.New()

	// First like inserts; the repeat hits the conflict clause and the
	// resulting set is unchanged.
	expectPostExists(mock, postID, true)
	expectLikeInsert(mock, postID, userID)
	expectLikeMembers(mock, postID, userID)

	members, err := engine.Like(postID, userID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{userID}, members)

	expectPostExists(mock, postID, true)
	expectLikeInsert(mock, postID, userID)
	expectLikeMembers(mock, postID, userID)

	members, err = engine.Like(postID, userID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{userID}, members)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUnlikeAbsentIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	engine := New(db, events.NewLocalBus(), nil)
	postID, userID, other := uuid.New(), uuid.New(), uuid.New()

	expectPostExists(mock, postID, true)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2")).
		WithArgs(postID, userID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	expectLikeMembers(mock, postID, other)

	members, err := engine.Unlike(postID, userID)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{other}, members)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeUnknownPost(t *testing.T) {
	db, mock := newMockDB(t)
	engine := New(db, events.NewLocalBus(), nil)
	postID, userID := uuid.New(), uuid.New()

	expectPostExists(mock, postID, false)

	_, err := engine.Like(postID, userID)

	assert.Equal(t, http.StatusNotFound, apiStatus(t, err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveUsesSaveSet(t *testing.T) {
	db, mock := newMockDB(t)
	engine := New(db, events.NewLocalBus(), nil)
	postID, userID := uuid.New(), uuid.New()

	expectPostExists(mock, postID, true)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO post_saves (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING")).
		WithArgs(postID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM post_saves WHERE post_id = $1")).
		WithArgs(postID).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(userID.String()))

	members, err := engine.Save(postID, userID)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{userID}, members)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCommentRequiresText(t *testing.T) {
	db, mock := newMockDB(t)
	engine := New(db, events.NewLocalBus(), nil)

	_, err := engine.AddComment(uuid.New(), uuid.New(), "   ")

	assert.Equal(t, http.StatusBadRequest, apiStatus(t, err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCommentAppends(t *testing.T) {
	db, mock := newMockDB(t)

	bus := events.NewLocalBus()
	var commented int
	bus.Subscribe(events.SubjectPostCommented, func([]byte) { commented++ })

	engine := New(db, bus, nil)
	postID, userID := uuid.New(), uuid.New()
	now := time.Now().UTC()

	expectPostExists(mock, postID, true)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO comments (post_id, user_id, comment, creation_date) VALUES ($1, $2, $3, $4)")).
		WithArgs(postID, userID, "great trip!", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectQuery("SELECT c.id, c.user_id, u.username, c.comment, c.creation_date").
		WithArgs(postID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "username", "comment", "creation_date"}).
			AddRow(1, userID.String(), "alice", "first!", now.Add(-time.Hour)).
			AddRow(2, userID.String(), "alice", "great trip!", now))

	comments, err := engine.AddComment(postID, userID, "great trip!")

	require.NoError(t, err)
	require.Len(t, comments, 2)
	// Prior comments keep their position; the new one lands at the end.
	assert.Equal(t, "first!", comments[0].Comment)
	assert.Equal(t, "great trip!", comments[1].Comment)
	assert.Equal(t, "alice", comments[1].Username)
	assert.Equal(t, 1, commented)
	require.NoError(t, mock.ExpectationsWereMet())
}
