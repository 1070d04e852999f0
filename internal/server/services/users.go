// Package services implements the application logic on top of the
// repositories: credential handling (signup/login) and comment CRUD with
// ownership authorization.
package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"

	"github.com/commently/commently/internal/common"
	"github.com/commently/commently/internal/server/auth"
	"github.com/commently/commently/internal/server/config"
	"github.com/commently/commently/internal/server/models"
	"github.com/commently/commently/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// emailPattern requires local@domain.tld with a top-level segment of at
// least two characters.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

const minPasswordLength = 3

type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		bcryptCost:            cfg.BcryptCost,
	}
}

// SignUp validates the credentials, persists a new identity record with a
// bcrypt hash of the password, and returns a bearer token for it.
//
// The duplicate pre-check is a courtesy only: two concurrent signups with
// the same email can both pass it, and the unique index on users.email is
// what actually enforces uniqueness. A unique-violation from Create is
// therefore reported exactly like a pre-check hit.
func (s *UserService) SignUp(ctx context.Context, email, password string) (string, error) {

	if email == "" || password == "" {
		return "", common.ErrorMissingFields
	}
	if !emailPattern.MatchString(email) {
		return "", common.ErrorInvalidEmail
	}
	if len(password) < minPasswordLength {
		return "", common.ErrorPasswordTooShort
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return "", common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", common.ErrorInternal
	}

	user, err := repo.Create(ctx, &models.User{Email: email, PasswordHash: string(hash)})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) || errors.Is(err, common.ErrorValidation) {
			return "", err
		}
		return "", common.ErrorInternal
	}

	return s.generateToken(user)
}

// Login verifies the credentials against the stored hash and returns a
// bearer token with the same payload shape and lifetime as SignUp.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {

	if email == "" || password == "" {
		return "", common.ErrorMissingFields
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrorUnauthorized
	}

	return s.generateToken(user)
}

func (s *UserService) generateToken(user *models.User) (string, error) {
	token, err := auth.GenerateToken(user.Email, user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
