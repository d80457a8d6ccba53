package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/thereayou/socialnet/internal/database"
	"github.com/thereayou/socialnet/internal/models"
)

// bcrypt only hashes the first 72 bytes and rejects longer input.
const maxPasswordBytes = 72

// IdentityStore persists accounts and verifies credentials.
type IdentityStore struct {
	db   *database.Database
	cost int

	// dummyHash is compared against when the user does not exist so a
	// missing account costs the same as a wrong password.
	dummyHash []byte
}

func NewIdentityStore(db *database.Database, cost int) (*IdentityStore, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("socialnet-dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("cannot hash password: %w", err)
	}
	return &IdentityStore{db: db, cost: cost, dummyHash: dummy}, nil
}

// NormalizeUsername trims surrounding space and folds the name to NFC so
// visually identical names map to one account.
func NormalizeUsername(username string) string {
	return norm.NFC.String(strings.TrimSpace(username))
}

func (s *IdentityStore) Register(ctx context.Context, username, firstName, lastName, password string) (uint, error) {
	username = NormalizeUsername(username)
	if username == "" || password == "" || len(password) > maxPasswordBytes {
		return 0, ErrInvalidInput
	}

	if _, err := s.db.FindUserByUsername(ctx, username); err == nil {
		return 0, ErrDuplicateUsername
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("register %q: %w", username, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return 0, fmt.Errorf("cannot hash password: %w", err)
	}

	user := &models.User{
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Password:  string(hash),
	}
	user.SetProfile(models.DefaultProfile())

	if err := s.db.SaveUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrDuplicateUsername
		}
		return 0, fmt.Errorf("register %q: %w", username, err)
	}

	return user.ID, nil
}

// Authenticate returns ErrUserNotFound or ErrBadCredential on failure. Both
// paths run one bcrypt comparison.
func (s *IdentityStore) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrBadCredential
	}

	return user, nil
}

// UpdateProfile overwrites every profile attribute with the given values.
func (s *IdentityStore) UpdateProfile(ctx context.Context, username string, profile models.Profile) error {
	return s.db.Transaction(ctx, func(tx *database.Database) error {
		user, err := tx.FindUserByUsername(ctx, NormalizeUsername(username))
		if err != nil {
			return lookupError(err, ErrUserNotFound)
		}
		if err := tx.UpdateProfile(ctx, user.ID, profile); err != nil {
			return fmt.Errorf("update profile of %q: %w", username, err)
		}
		return nil
	})
}

func (s *IdentityStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.db.FindUserByUsername(ctx, NormalizeUsername(username))
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *IdentityStore) UserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.db.GetUser(ctx, id)
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound)
	}
	return user, nil
}

// lookupError maps gorm's not-found error to notFound and wraps anything else.
func lookupError(err error, notFound *Error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("lookup: %w", err)
}
