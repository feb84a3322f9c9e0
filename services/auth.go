package services

import (
	"context"
	"fmt"
	"time"

	"care-connect/apperrors"
	"care-connect/authentication"
	"care-connect/models"
)

type UserStore interface {
	ActiveByEmail(ctx context.Context, email string) (*models.User, error)
	ActiveByID(ctx context.Context, id string) (*models.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// ResetStore tracks pending password resets so a reset token works once.
type ResetStore interface {
	MarkRequested(ctx context.Context, email string, ttl time.Duration) error
	Consume(ctx context.Context, email string) (bool, error)
}

type ResetMailer interface {
	SendResetLink(to, resetLink string) error
}

type AuthService struct {
	users         UserStore
	tokens        *authentication.TokenManager
	resets        ResetStore
	mailer        ResetMailer
	resetTTL      time.Duration
	resetPassLink string
}

func NewAuthService(users UserStore, tokens *authentication.TokenManager, resets ResetStore, mailer ResetMailer, resetTTL time.Duration, resetPassLink string) *AuthService {
	return &AuthService{
		users:         users,
		tokens:        tokens,
		resets:        resets,
		mailer:        mailer,
		resetTTL:      resetTTL,
		resetPassLink: resetPassLink,
	}
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login checks credentials for an active user and issues the token pair.
// The same unauthorized answer covers unknown email and wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.ActiveByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, apperrors.Unauthorized("email or password not matched")
		}
		return nil, err
	}

	if !authentication.VerifyPassword(password, user.Password) {
		return nil, apperrors.Unauthorized("email or password not matched")
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RefreshAccessToken verifies a refresh token and issues a fresh access
// token for the user it names, requiring the account to still be active.
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyToken(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.users.ActiveByEmail(ctx, claims.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return "", apperrors.Unauthorized("user is not active")
		}
		return "", err
	}

	return s.tokens.GenerateAccessToken(user.Email, user.Role)
}

// ChangePassword swaps the stored hash after verifying the old password.
func (s *AuthService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	user, err := s.users.ActiveByEmail(ctx, email)
	if err != nil {
		return err
	}

	if !authentication.VerifyPassword(oldPassword, user.Password) {
		return apperrors.Unauthorized("email or password not matched")
	}

	hash, err := authentication.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.Email, hash)
}

// ForgotPassword issues a short-lived reset token, marks the reset as
// pending and mails the link. The token is returned for the response body
// as well.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.ActiveByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	resetToken, err := s.tokens.GenerateResetToken(user.Email, user.Role)
	if err != nil {
		return "", err
	}

	if err := s.resets.MarkRequested(ctx, user.Email, s.resetTTL); err != nil {
		return "", err
	}

	resetLink := fmt.Sprintf("%sid=%s&token=%s", s.resetPassLink, user.ID, resetToken)
	if err := s.mailer.SendResetLink(user.Email, resetLink); err != nil {
		return "", apperrors.Wrap(apperrors.KindInternal, "failed to deliver reset email", err)
	}

	return resetToken, nil
}

// ResetPassword verifies the reset token, consumes the pending marker and
// stores the new hash. A consumed or expired marker rejects the attempt, so
// each issued token resets the password at most once.
func (s *AuthService) ResetPassword(ctx context.Context, token, userID, newPassword string) error {
	claims, err := s.tokens.VerifyToken(token)
	if err != nil {
		return err
	}

	user, err := s.users.ActiveByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Email != claims.Email {
		return apperrors.Invalid("reset token does not belong to this user")
	}

	ok, err := s.resets.Consume(ctx, user.Email)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Expired("reset link already used or expired")
	}

	hash, err := authentication.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.Email, hash)
}
