package acl

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/accesskeeper/internal/common"
	"github.com/dmitrijs2005/accesskeeper/internal/passwd"
	"github.com/dmitrijs2005/accesskeeper/internal/server/models"
)

// Register creates a new user. It returns false (and no error) when the
// login is empty or already taken, or when the password fails the length
// policy. The password is stored only as an argon2id hash.
func (s *Service) Register(ctx context.Context, login, password, name, email string) (bool, error) {
	if login == "" || !passwd.Acceptable(password) {
		return false, nil
	}

	repo := s.repos.Users(s.db)

	_, err := repo.GetByLogin(ctx, login)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return false, fmt.Errorf("error checking login: %w", err)
	}

	hash, err := passwd.Hash(password)
	if err != nil {
		return false, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Login: login, PasswordHash: hash, Name: name, Email: email}
	if err := repo.Create(ctx, user); err != nil {
		return false, fmt.Errorf("error creating user: %w", err)
	}

	return true, nil
}

// dummyVerify is a seam for testing that the unknown-login path still burns
// a key derivation.
var dummyVerify = passwd.DummyVerify

// Authenticate verifies login/password and returns the user on success.
// Failure is common.ErrorUnauthorized whether the login is unknown or the
// password wrong; an unknown login still burns a hash computation so the
// two paths cost the same.
func (s *Service) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	user, err := s.repos.Users(s.db).GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			dummyVerify(password)
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "authenticate lookup failed", "error", err.Error())
		return nil, common.ErrorInternal
	}

	if !passwd.Verify(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// GetUser looks a user up by login; common.ErrorNotFound when absent.
func (s *Service) GetUser(ctx context.Context, login string) (*models.User, error) {
	return s.repos.Users(s.db).GetByLogin(ctx, login)
}

// ListUsers returns every user ordered by login.
func (s *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.repos.Users(s.db).List(ctx)
}

// EditUser updates the mutable profile fields. The login itself is never
// editable. Returns false when the user does not exist.
func (s *Service) EditUser(ctx context.Context, login, name, email string) (bool, error) {
	return s.repos.Users(s.db).UpdateProfile(ctx, login, name, email)
}

// UpdatePassword re-hashes and stores a new password. Returns false when the
// user does not exist or the new password fails the length policy; a
// rejected update leaves the previous password valid.
func (s *Service) UpdatePassword(ctx context.Context, login, password string) (bool, error) {
	if !passwd.Acceptable(password) {
		return false, nil
	}

	hash, err := passwd.Hash(password)
	if err != nil {
		return false, fmt.Errorf("error hashing password: %w", err)
	}

	return s.repos.Users(s.db).UpdatePassword(ctx, login, hash)
}
