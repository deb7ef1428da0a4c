// Package services contains server-side business logic. This file
// implements AuthService: issuing signed token pairs, guarding requests
// with them, rotating refresh tokens, and revoking sessions.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/campushub/backend/internal/common"
	"github.com/campushub/backend/internal/dbx"
	"github.com/campushub/backend/internal/server/auth"
	"github.com/campushub/backend/internal/server/models"
	"github.com/campushub/backend/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// TokenPair bundles a short-lived access token and a long-lived refresh
// token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult carries the issued pair plus the settings metadata the
// client needs to decide whether to route into the password-change flow.
type LoginResult struct {
	User                     *models.User
	Tokens                   TokenPair
	IsDefaultPasswordChanged bool
	IsEmailVerified          bool
}

// AuthService provides the token lifecycle:
//   - Login / Issue: mint and persist token pairs
//   - Authenticate / AuthenticateRefreshContext: request guards
//   - GrantAccessToken: single-use refresh token rotation
//   - Logout / RevokeAllSessions / RenewPassword
//
// All durable state lives in the repositories; the service holds no
// per-request state and is safe for concurrent use.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       *auth.Codec
}

// NewAuthService constructs an AuthService from its collaborators. The
// codec and manager are passed in explicitly; there is no ambient
// container.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, codec *auth.Codec) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		codec:       codec,
	}
}

// Issue mints an access+refresh pair for an already-verified identity and
// persists the refresh token. No pair is returned unless the refresh token
// is durably recorded, so an access token can never outlive the ability to
// validate its sibling later.
func (s *AuthService) Issue(ctx context.Context, userID, role string) (*TokenPair, error) {
	return s.issue(ctx, s.db, userID, role)
}

func (s *AuthService) issue(ctx context.Context, db dbx.DBTX, userID, role string) (*TokenPair, error) {
	accessToken, err := s.codec.Sign(userID, role, auth.TokenTypeAccess)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := s.codec.Sign(userID, role, auth.TokenTypeRefresh)
	if err != nil {
		return nil, common.ErrorInternal
	}

	repo := s.repomanager.RefreshTokens(db)
	if err := repo.Create(ctx, userID, refreshToken); err != nil {
		return nil, fmt.Errorf("error recording refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Login verifies the password against the stored hash and, on success,
// issues a token pair. Unknown account and wrong password are both
// ErrorUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.Issue(ctx, user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:                     user,
		Tokens:                   *pair,
		IsDefaultPasswordChanged: user.Settings.IsDefaultPasswordChanged,
		IsEmailVerified:          user.Settings.IsEmailVerified,
	}, nil
}

// lookupTokenUser verifies the bearer as an access token and re-loads the
// referenced user. The user may have been deleted since issuance, so
// existence is re-checked on every request instead of trusting the token.
func (s *AuthService) lookupTokenUser(ctx context.Context, bearerToken string) (*models.User, error) {
	claims, err := s.codec.Verify(bearerToken, auth.TokenTypeAccess)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}

	return user, nil
}

// Authenticate is the access guard: signature, expiry and type checks via
// the codec, user existence, then the default-password gate. A valid,
// unexpired token is still denied while the account sits on its initial
// password.
func (s *AuthService) Authenticate(ctx context.Context, bearerToken string) (*models.User, error) {
	user, err := s.lookupTokenUser(ctx, bearerToken)
	if err != nil {
		return nil, err
	}

	if !user.Settings.IsDefaultPasswordChanged {
		return nil, common.ErrorDefaultPasswordNotChanged
	}

	return user, nil
}

// AuthenticateRefreshContext is the looser guard used by the grant and
// renew-password endpoints: same signature/type/existence checks, but the
// default-password gate is skipped so a fresh account can rotate tokens
// and change its password.
func (s *AuthService) AuthenticateRefreshContext(ctx context.Context, bearerToken string) (*models.User, error) {
	return s.lookupTokenUser(ctx, bearerToken)
}

// GrantAccessToken redeems a refresh token for a new pair. The presented
// token must verify as a refresh token, belong to the calling user, and
// still be active in the store — a cryptographically valid token that was
// revoked server-side is rejected here. Revoke-old and issue-new run in
// one transaction: the conditional revoke makes redemption single-use
// under concurrency, and an issuance failure rolls the revocation back so
// the user is never stranded without a replacement.
func (s *AuthService) GrantAccessToken(ctx context.Context, user *models.User, refreshToken string) (*TokenPair, error) {
	claims, err := s.codec.Verify(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	if claims.UserID != user.ID {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.RefreshTokens(s.db)
	if _, err := repo.FindActive(ctx, user.ID, refreshToken); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		revoked, err := repoTx.Revoke(ctx, user.ID, refreshToken)
		if err != nil {
			return fmt.Errorf("error revoking refresh token: %w", err)
		}
		if !revoked {
			// A concurrent redemption of the same token got here first.
			return common.ErrorUnauthorized
		}
		var issueErr error
		pair, issueErr = s.issue(ctx, tx, user.ID, user.Role)
		return issueErr
	}); err != nil {
		return nil, err
	}

	return pair, nil
}

// Logout revokes a single refresh token. Revoking an unknown or
// already-revoked token is a no-op, which keeps client-side retries safe.
func (s *AuthService) Logout(ctx context.Context, userID, refreshToken string) error {
	_, err := s.repomanager.RefreshTokens(s.db).Revoke(ctx, userID, refreshToken)
	return err
}

// RevokeAllSessions revokes every refresh token the user holds, for
// password resets and other security events. Idempotent.
func (s *AuthService) RevokeAllSessions(ctx context.Context, userID string) error {
	return s.repomanager.RefreshTokens(s.db).RevokeAll(ctx, userID)
}

// RenewPassword replaces the user's password, clears the default-password
// flag and revokes every open session, all in one transaction. After this
// the access guard admits the account and any previously issued refresh
// tokens are dead.
func (s *AuthService) RenewPassword(ctx context.Context, userID, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.ErrorInternal
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		usersTx := s.repomanager.Users(tx)
		if err := usersTx.UpdatePassword(ctx, userID, string(hash)); err != nil {
			return err
		}
		if err := usersTx.MarkDefaultPasswordChanged(ctx, userID); err != nil {
			return err
		}
		return s.repomanager.RefreshTokens(tx).RevokeAll(ctx, userID)
	})
}
