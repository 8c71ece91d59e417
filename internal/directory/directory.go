// Package directory exposes user lookups: substring search and profile
// projections.
package directory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/models"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/models/api_error"
	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/social"
)

type Directory struct {
	db    *sqlx.DB
	graph *social.Graph
}

func New(db *sqlx.DB, graph *social.Graph) *Directory {
	return &Directory{db: db, graph: graph}
}

// likeEscaper neutralizes pattern metacharacters so the query text is
// matched literally. Without it a q of "%" would match every row.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search returns users whose username, email, bio or display name
// contains q as a literal substring, case-insensitively, excluding the
// caller. An empty query returns an empty result rather than the whole
// directory.
func (d *Directory) Search(callerID uuid.UUID, q string) ([]models.SearchResult, error) {
	results := make([]models.SearchResult, 0)
	if q == "" {
		return results, nil
	}

	query := `
		SELECT id, username, email, bio, avatar_path
		FROM users
		WHERE id <> $1
			AND (username ILIKE $2 ESCAPE '\'
				OR email ILIKE $2 ESCAPE '\'
				OR bio ILIKE $2 ESCAPE '\'
				OR name ILIKE $2 ESCAPE '\')
		ORDER BY username
		`

	pattern := "%" + likeEscaper.Replace(q) + "%"
	if err := d.db.Select(&results, query, callerID, pattern); err != nil {
		return nil, api_error.Store(err)
	}

	return results, nil
}

// OwnProfile returns the caller's profile fields.
func (d *Directory) OwnProfile(userID uuid.UUID) (models.Profile, error) {
	var profile models.Profile
	err := d.db.Get(&profile,
		"SELECT bio, avatar_path, location, trip_count, review_count, year_count FROM users WHERE id = $1",
		userID)
	if err != nil {
		return profile, api_error.FromDB(err, "user not found")
	}

	return profile, nil
}

// PublicProfile resolves any user's public projection, including the
// follower/following id lists.
func (d *Directory) PublicProfile(userID uuid.UUID) (models.PublicProfile, error) {
	var row struct {
		Username string `db:"username"`
		Email    string `db:"email"`
		models.Profile
	}

	err := d.db.Get(&row,
		"SELECT username, email, bio, avatar_path, location, trip_count, review_count, year_count FROM users WHERE id = $1",
		userID)
	if err != nil {
		return models.PublicProfile{}, api_error.FromDB(err, "user not found")
	}

	followers, err := d.graph.FollowerIDs(userID)
	if err != nil {
		return models.PublicProfile{}, err
	}
	following, err := d.graph.FollowingIDs(userID)
	if err != nil {
		return models.PublicProfile{}, err
	}

	return models.PublicProfile{
		Username:  row.Username,
		Email:     row.Email,
		Bio:       row.Bio,
		Avatar:    row.AvatarPath,
		Location:  row.Location,
		Trips:     row.TripCount,
		Reviews:   row.ReviewCount,
		Years:     row.YearCount,
		Followers: followers,
		Following: following,
	}, nil
}

// UpdateProfile applies the provided fields and returns the updated
// profile along with the avatar path it replaced, so the caller can
// delete the orphaned upload.
func (d *Directory) UpdateProfile(userID uuid.UUID, bio *string, avatarPath *string) (models.Profile, *string, error) {
	var oldAvatar *string
	err := d.db.Get(&oldAvatar, "SELECT avatar_path FROM users WHERE id = $1", userID)
	if err != nil {
		return models.Profile{}, nil, api_error.FromDB(err, "user not found")
	}

	if bio != nil {
		if _, err := d.db.Exec("UPDATE users SET bio = $1 WHERE id = $2", *bio, userID); err != nil {
			return models.Profile{}, nil, api_error.Store(err)
		}
	}

	replaced := false
	if avatarPath != nil {
		if _, err := d.db.Exec("UPDATE users SET avatar_path = $1 WHERE id = $2", *avatarPath, userID); err != nil {
			return models.Profile{}, nil, api_error.Store(err)
		}
		replaced = true
	}

	profile, err := d.OwnProfile(userID)
	if err != nil {
		return models.Profile{}, nil, err
	}

	if !replaced {
		oldAvatar = nil
	}
	return profile, oldAvatar, nil
}
