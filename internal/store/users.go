package store

import (
	"context"                         // Context for request-scoped queries
	"currency_wizard/internal/domain" // Importing domain models
	"errors"                          // Error inspection
	"fmt"                             // Error wrapping
	"time"                            // Last-login timestamps

	"github.com/go-sql-driver/mysql" // MySQL error codes
	"gorm.io/gorm"                   // GORM ORM library
)

// MySQL error number for a unique index violation
const mysqlDuplicateEntry = 1062

// PasswordChecker compares a plaintext password with a stored hash
type PasswordChecker interface {
	CheckPasswordHash(password, hash string) bool
}

// UserStore persists user records in the users table
type UserStore struct {
	db      *gorm.DB        // Database handle
	checker PasswordChecker // Hash comparison used by FindByUsernameAndPassword
}

// NewUserStore creates a UserStore backed by db
func NewUserStore(db *gorm.DB, checker PasswordChecker) *UserStore {
	return &UserStore{db: db, checker: checker}
}

// FindByUsername returns the user with the given username or domain.ErrNotFound
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByUsernameAndPassword returns the user whose username matches and whose stored hash
// accepts password. An unknown username and a wrong password both yield domain.ErrNotFound.
func (s *UserStore) FindByUsernameAndPassword(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		s.checker.CheckPasswordHash(password, "") // Same hashing cost as a real comparison
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !s.checker.CheckPasswordHash(password, user.Password) {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

// FindByEmail returns the user with the given email or domain.ErrNotFound
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Insert creates a new user; a taken username or email yields domain.ErrDuplicateCredential
func (s *UserStore) Insert(ctx context.Context, user *domain.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return translate(err)
	}
	return nil
}

// UpdateLastLogin sets the last-login time of the user with the given id
func (s *UserStore) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	// The id was just read, so an unchanged row is not an error
	res := s.db.WithContext(ctx).Model(&domain.User{}).Where("user_id = ?", id).Update("last_login", at)
	if res.Error != nil {
		return translate(res.Error)
	}
	return nil
}

// UpdatePassword replaces the stored password hash of the user with the given email
func (s *UserStore) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	res := s.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Update("password", passwordHash)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// translate maps driver and gorm errors onto domain errors
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case isDuplicate(err):
		return domain.ErrDuplicateCredential
	default:
		return fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}
