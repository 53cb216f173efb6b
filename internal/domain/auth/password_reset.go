package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/imc/imc-api/internal/domain/user"
	"github.com/imc/imc-api/internal/pkg/email"
	"github.com/imc/imc-api/internal/pkg/jwt"
	"github.com/imc/imc-api/internal/pkg/password"
)

const ResetTokenTTL = 1 * time.Hour

const keyPrefixReset = "reset:"

// PasswordResetService handles password reset tokens and email notifications.
type PasswordResetService struct {
	userRepo    user.Repository
	redis       *redis.Client
	mailer      email.Sender
	frontendURL string
}

func NewPasswordResetService(userRepo user.Repository, redis *redis.Client, mailer email.Sender, frontendURL string) *PasswordResetService {
	return &PasswordResetService{
		userRepo:    userRepo,
		redis:       redis,
		mailer:      mailer,
		frontendURL: frontendURL,
	}
}

// RequestReset issues a reset token and emails a reset link. An unknown
// email is not an error: the caller always gets a generic acknowledgement.
func (s *PasswordResetService) RequestReset(ctx context.Context, emailAddr string) error {
	u, err := s.userRepo.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil || u == nil {
		log.Info().Str("email", emailAddr).Msg("password reset requested for unknown email")
		return nil
	}

	token, err := s.generateResetToken(ctx, u.ID)
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	msg := email.PasswordReset(u.Email, u.FullName(), resetURL)
	if err := s.mailer.Send(ctx, msg); err != nil {
		log.Error().Err(err).Str("email", u.Email).Msg("failed to send password reset email")
	}
	return nil
}

// ConfirmReset validates the token and sets the new password.
func (s *PasswordResetService) ConfirmReset(ctx context.Context, token, newPassword string) error {
	userID, err := s.validateResetToken(ctx, token)
	if err != nil {
		return ErrInvalidResetToken
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.invalidateResetToken(ctx, token)
	return nil
}

func (s *PasswordResetService) generateResetToken(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := jwt.GenerateOpaqueToken()
	if err != nil {
		return "", err
	}

	if s.redis == nil {
		return "", fmt.Errorf("password reset requires redis")
	}
	key := keyPrefixReset + token
	if err := s.redis.Set(ctx, key, userID.String(), ResetTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	return token, nil
}

func (s *PasswordResetService) validateResetToken(ctx context.Context, token string) (uuid.UUID, error) {
	if s.redis == nil {
		return uuid.Nil, ErrInvalidResetToken
	}

	userIDStr, err := s.redis.Get(ctx, keyPrefixReset+token).Result()
	if err == redis.Nil {
		return uuid.Nil, ErrInvalidResetToken
	}
	if err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(userIDStr)
}

func (s *PasswordResetService) invalidateResetToken(ctx context.Context, token string) {
	if s.redis == nil {
		return
	}
	s.redis.Del(ctx, keyPrefixReset+token)
}
