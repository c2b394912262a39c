// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/addressbook/internal/platform/apperr"
	"github.com/taibuivan/addressbook/internal/platform/cache"
	"github.com/taibuivan/addressbook/internal/platform/mail"
	"github.com/taibuivan/addressbook/internal/platform/sec"
	"github.com/taibuivan/addressbook/internal/users/reset"
)

// # Collaborators

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(email string, role sec.Role) (string, error)
}

// ResetTokens issues and redeems one-time reset tokens.
type ResetTokens interface {
	Issue(context context.Context, userID int64, email string) (string, error)
	Validate(context context.Context, token string) (reset.Result, error)
}

// Dependencies wires a [Repository].
type Dependencies struct {
	Store  Store
	Cache  *cache.Cache
	Hasher *sec.PasswordHasher
	Tokens TokenIssuer
	Resets ResetTokens
	Mailer mail.Sender

	// BaseURL prefixes the reset link sent by ForgotPassword.
	BaseURL string
	Logger  *slog.Logger
}

// # Repository

// Repository orchestrates accounts over the durable store and the cache.
type Repository struct {
	store   Store
	cache   *cache.Cache
	hasher  *sec.PasswordHasher
	tokens  TokenIssuer
	resets  ResetTokens
	mailer  mail.Sender
	baseURL string
	logger  *slog.Logger
}

// NewRepository constructs a new [Repository].
func NewRepository(deps Dependencies) *Repository {
	return &Repository{
		store:   deps.Store,
		cache:   deps.Cache,
		hasher:  deps.Hasher,
		tokens:  deps.Tokens,
		resets:  deps.Resets,
		mailer:  deps.Mailer,
		baseURL: deps.BaseURL,
		logger:  deps.Logger,
	}
}

/*
Register creates an account with the default role.

The welcome mail is best-effort: its failure is logged and does not fail
the registration.

Returns:
  - *Profile: The new account's public projection
  - error: apperr.Conflict when the email is taken, or storage failures
*/
func (repository *Repository) Register(context context.Context, input RegisterInput) (*Profile, error) {
	email := NormalizeEmail(input.Email)

	digest, err := repository.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("account_repo_hash_failed: %w", err)
	}

	user := &User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		PasswordHash: digest,
		Role:         sec.RoleUser,
	}

	if err := repository.store.Insert(context, user); err != nil {
		return nil, fmt.Errorf("account_repo_register_failed: %w", err)
	}

	repository.logger.InfoContext(context, "account_registered", slog.Int64("user_id", user.ID))

	if err := repository.mailer.SendWelcome(context, email); err != nil {
		repository.logger.WarnContext(context, "welcome_mail_failed",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	profile := user.Profile()
	return &profile, nil
}

/*
Login verifies credentials against the durable hash and mints a session token.

A stale bcrypt cost is upgraded in place. The account record is cached on success.

Returns:
  - string: The session token, "" on unknown email or wrong password
  - error: Storage or signing failures
*/
func (repository *Repository) Login(context context.Context, input LoginInput) (string, error) {
	email := NormalizeEmail(input.Email)

	user, err := repository.store.FindByEmail(context, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("account_repo_login_failed: %w", err)
	}

	if !repository.hasher.Verify(input.Password, user.PasswordHash) {
		repository.logger.InfoContext(context, "login_rejected", slog.Int64("user_id", user.ID))
		return "", nil
	}

	if repository.hasher.NeedsRehash(user.PasswordHash) {
		repository.upgradeHash(context, user, input.Password)
	}

	token, err := repository.tokens.Issue(user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("account_repo_issue_token_failed: %w", err)
	}

	repository.cache.Prime(context, userKey(email), cachedAccount{ID: user.ID, Profile: user.Profile()})

	return token, nil
}

// upgradeHash rewrites the stored hash at the configured cost. Failure is logged only.
func (repository *Repository) upgradeHash(context context.Context, user *User, password string) {
	digest, err := repository.hasher.Hash(password)
	if err == nil {
		_, err = repository.store.UpdatePassword(context, user.ID, digest)
	}
	if err != nil {
		repository.logger.WarnContext(context, "password_rehash_failed",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err),
		)
		return
	}
	repository.logger.InfoContext(context, "password_rehashed", slog.Int64("user_id", user.ID))
}

// lookup is the cache-aside read of the account record behind an email.
func (repository *Repository) lookup(context context.Context, email string) (cachedAccount, bool, error) {
	email = NormalizeEmail(email)
	return cache.Fetch(context, repository.cache, userKey(email), repository.loadAccount(email))
}

func (repository *Repository) loadAccount(email string) cache.Loader[cachedAccount] {
	return func(ctx context.Context) (cachedAccount, bool, error) {
		user, err := repository.store.FindByEmail(ctx, email)
		if err != nil {
			if apperr.IsNotFound(err) {
				return cachedAccount{}, false, nil
			}
			return cachedAccount{}, false, err
		}
		return cachedAccount{ID: user.ID, Profile: user.Profile()}, true, nil
	}
}

// GetUserIDByEmail returns the account id, or 0 when no account exists.
func (repository *Repository) GetUserIDByEmail(context context.Context, email string) (int64, error) {
	account, found, err := repository.lookup(context, email)
	if err != nil {
		return 0, fmt.Errorf("account_repo_get_id_failed: %w", err)
	}
	if !found {
		return 0, nil
	}
	return account.ID, nil
}

// GetUserRoleByEmail returns the account role. An unknown email yields [sec.RoleUser];
// use [Repository.LookupRole] to tell absence apart.
func (repository *Repository) GetUserRoleByEmail(context context.Context, email string) (sec.Role, error) {
	role, _, err := repository.LookupRole(context, email)
	return role, err
}

// LookupRole returns the account role and whether the account exists.
func (repository *Repository) LookupRole(context context.Context, email string) (sec.Role, bool, error) {
	account, found, err := repository.lookup(context, email)
	if err != nil {
		return sec.RoleUser, false, fmt.Errorf("account_repo_get_role_failed: %w", err)
	}
	if !found {
		return sec.RoleUser, false, nil
	}
	return sec.ParseRole(string(account.Profile.Role)), true, nil
}

// GetUserProfile returns the public profile, or nil when no account exists.
func (repository *Repository) GetUserProfile(context context.Context, email string) (*Profile, error) {
	account, found, err := repository.lookup(context, email)
	if err != nil {
		return nil, fmt.Errorf("account_repo_get_profile_failed: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &account.Profile, nil
}

/*
ForgotPassword issues a reset token and mails the reset link.

Returns:
  - bool: false when no account exists or delivery failed
  - error: Lookup or token storage failures
*/
func (repository *Repository) ForgotPassword(context context.Context, email string) (bool, error) {
	account, found, err := repository.lookup(context, email)
	if err != nil {
		return false, fmt.Errorf("account_repo_forgot_password_failed: %w", err)
	}
	if !found {
		return false, nil
	}

	token, err := repository.resets.Issue(context, account.ID, account.Profile.Email)
	if err != nil {
		return false, fmt.Errorf("account_repo_issue_reset_failed: %w", err)
	}

	delivered := repository.mailer.SendPasswordReset(context, account.Profile.Email, token, repository.baseURL)

	repository.logger.InfoContext(context, "password_reset_requested",
		slog.Int64("user_id", account.ID),
		slog.Bool("delivered", delivered),
	)

	return delivered, nil
}

/*
ResetPassword redeems token and sets a new password.

Checks run in order: the two passwords match, the token is valid, the bound
account still exists. The token is consumed by the second check.

Returns:
  - bool: true only after the new hash is durably written
  - error: Token storage, hashing or database failures
*/
func (repository *Repository) ResetPassword(context context.Context, token, newPassword, confirmPassword string) (bool, error) {
	if newPassword == "" || newPassword != confirmPassword {
		return false, nil
	}

	result, err := repository.resets.Validate(context, token)
	if err != nil {
		return false, fmt.Errorf("account_repo_validate_reset_failed: %w", err)
	}

	email, ok := result.Email()
	if !ok {
		return false, nil
	}

	user, err := repository.store.FindByEmail(context, NormalizeEmail(email))
	if err != nil {
		if apperr.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("account_repo_reset_password_failed: %w", err)
	}

	written, err := repository.writePassword(context, user, newPassword)
	if err != nil || !written {
		return false, err
	}

	repository.logger.InfoContext(context, "password_reset", slog.Int64("user_id", user.ID))
	return true, nil
}

/*
ChangePassword replaces the password of an authenticated account after
verifying the current one.

Returns:
  - bool: false on unknown email or wrong current password
  - error: Hashing or database failures
*/
func (repository *Repository) ChangePassword(context context.Context, email, currentPassword, newPassword string) (bool, error) {
	user, err := repository.store.FindByEmail(context, NormalizeEmail(email))
	if err != nil {
		if apperr.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("account_repo_change_password_failed: %w", err)
	}

	if !repository.hasher.Verify(currentPassword, user.PasswordHash) {
		return false, nil
	}

	written, err := repository.writePassword(context, user, newPassword)
	if err != nil || !written {
		return false, err
	}

	repository.logger.InfoContext(context, "password_changed", slog.Int64("user_id", user.ID))
	return true, nil
}

// writePassword hashes, writes, then invalidates the cached record.
// It reports false when the row disappeared in between.
func (repository *Repository) writePassword(context context.Context, user *User, password string) (bool, error) {
	digest, err := repository.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("account_repo_hash_failed: %w", err)
	}

	updated, err := repository.store.UpdatePassword(context, user.ID, digest)
	if err != nil {
		return false, fmt.Errorf("account_repo_update_password_failed: %w", err)
	}
	if !updated {
		return false, nil
	}

	repository.cache.Invalidate(context, userKey(NormalizeEmail(user.Email)))
	return true, nil
}
