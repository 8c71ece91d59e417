package utils_auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/argon2"
)

type Claims struct {
	UserID uuid.UUID `json:"id"`
	jwt.RegisteredClaims
}

var jwtSecretKey []byte

// Configure sets the HMAC secret used to sign and verify tokens. Must be
// called once at startup before any token operation.
func Configure(secret []byte) {
	jwtSecretKey = secret
}

const (
	ARGON2_TIME       = uint32(1)
	ARGON2_MEMORY     = uint32(64 * 1024)
	ARGON2_THREADS    = uint8(2)
	ARGON2_KEYLENGTH  = uint32(32)
	ARGON2_SALTLENGTH = uint32(16)

	JWT_ACCESS_TOKEN_EXPIRATION  = 15 * time.Minute
	JWT_REFRESH_TOKEN_EXPIRATION = 14 * 24 * time.Hour
)

// formatHash takes in a salt and Argon2 hash of a password in bytes,
// and returns a string containing the cost parameters used to generate
// the hash, as well as the base64-encoded hash and salt for storage.
func formatHash(salt []byte, hashedPassword []byte) string {
	encodedSalt := base64.RawStdEncoding.EncodeToString(salt)
	encodedHashedPassword := base64.RawStdEncoding.EncodeToString(hashedPassword)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		uint32(argon2.Version),
		ARGON2_MEMORY,
		ARGON2_TIME,
		ARGON2_THREADS,
		encodedSalt,
		encodedHashedPassword,
	)
}

// parsePasswordHashStdForm takes in the standard representation of a
// hashed password in string format, where the Argon2 hash and salt is
// base64-encoded, and returns the memory, time, and thread parameters
// used to generate the hash, as well as the base64-encoded salt and hash.
func parsePasswordHashStdForm(passwordHash *string) (
	uint32, uint32, uint8, string, string, error) {
	pattern := fmt.Sprintf(
		"^\\$argon2id\\$v=%d\\$m=(\\d+),t=(\\d+),p=(\\d+)\\$([A-Za-z0-9+/=]+)\\$([A-Za-z0-9+/=]+)$",
		uint32(argon2.Version))
	regex := regexp.MustCompile(pattern)
	matches := regex.FindStringSubmatch(*passwordHash)

	if matches == nil {
		return 0, 0, 0, "", "", errors.New("invalid argon2 hash format")
	}

	arg2Mem, _ := strconv.ParseUint(matches[1], 10, 32)
	arg2Time, _ := strconv.ParseUint(matches[2], 10, 32)
	arg2Threads, _ := strconv.ParseUint(matches[3], 10, 32)

	return uint32(arg2Mem), uint32(arg2Time), uint8(arg2Threads), matches[4], matches[5], nil
}

func generateArgon2Salt() ([]byte, error) {
	salt := make([]byte, ARGON2_SALTLENGTH)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	return salt, nil
}

func generateArgon2Hash(payload []byte, salt []byte) []byte {
	return argon2.IDKey(payload, salt, ARGON2_TIME, ARGON2_MEMORY, ARGON2_THREADS, ARGON2_KEYLENGTH)
}

// GenerateArgon2Hash takes in a string payload in its original form and
// returns the Argon2 hash of the payload along with its salt, as a string
// formatted in the standard format. The hash and the salt is encoded as base64.
func GenerateArgon2Hash(payload string) (string, error) {
	salt, err := generateArgon2Salt()
	if err != nil {
		return "", err
	}
	hash := generateArgon2Hash([]byte(payload), salt)
	return formatHash(salt, hash), nil
}

// VerifyArgon2Hash takes in a string payload and storedHash, and checks if the
// hash of the payload matches storedHash. Note that storedHash must be in the
// standard representation of Argon2Hash (i.e. the output of GenerateArgon2Hash)
func VerifyArgon2Hash(payload string, storedHash string) bool {
	arg2Mem, arg2Time, arg2Threads, salt, expectedHash, err := parsePasswordHashStdForm(&storedHash)
	if err != nil {
		return false
	}

	decodedSalt, err := base64.RawStdEncoding.DecodeString(salt)
	if err != nil {
		return false
	}

	computedHash := base64.RawStdEncoding.EncodeToString(
		argon2.IDKey([]byte(payload), decodedSalt, arg2Time, arg2Mem, arg2Threads, ARGON2_KEYLENGTH))

	return computedHash == expectedHash
}

func generateToken(userID uuid.UUID, expiration time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			NotBefore: jwt.NewNumericDate(time.Now().UTC()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecretKey)
}

func GenerateAccessToken(userID uuid.UUID) (string, error) {
	return generateToken(userID, JWT_ACCESS_TOKEN_EXPIRATION)
}

func GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return generateToken(userID, JWT_REFRESH_TOKEN_EXPIRATION)
}

// ParseToken verifies the signature and validity window of a token and
// returns its claims.
func ParseToken(token string) (*Claims, error) {
	parsedToken, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsedToken.Claims.(*Claims)
	if !ok || !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func HashRefreshToken(refreshToken string) (string, error) {
	return GenerateArgon2Hash(refreshToken)
}

// ValidateRefreshToken checks the given refresh token against the hash
// stored for the user.
func ValidateRefreshToken(db *sqlx.DB, userID uuid.UUID, givenRefreshToken string) error {
	var storedHash string
	err := db.Get(&storedHash,
		"SELECT token_hash FROM refresh_tokens WHERE user_id = $1 ORDER BY expiration_date DESC LIMIT 1", userID)
	if err != nil {
		return err
	}

	if ok := VerifyArgon2Hash(givenRefreshToken, storedHash); !ok {
		return errors.New("invalid refresh token")
	}

	return nil
}
