package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"wallettally/internal/domain"
	"wallettally/internal/logger"
	mailer "wallettally/internal/mail"
	"wallettally/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("email not verified")
	ErrUserBanned         = errors.New("account is suspended")
	ErrInvalidOTP         = errors.New("invalid or expired code")
)

const (
	bcryptCost     = 12
	otpTTL         = 10 * time.Minute
	minPasswordLen = 8
)

// AuthService handles registration with OTP email verification and login.
type AuthService struct {
	users  *repository.UserRepository
	otps   *repository.OTPRepository
	mailer *mailer.Mailer
}

func NewAuthService(users *repository.UserRepository, otps *repository.OTPRepository, m *mailer.Mailer) *AuthService {
	return &AuthService{users: users, otps: otps, mailer: m}
}

// Register creates an unverified account and emails a one-time code.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, errors.New("invalid email address")
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.sendOTP(ctx, user); err != nil {
		// account exists; the user can request a resend
		logger.Error("failed to send verification code", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// VerifyEmail consumes the OTP and marks the account verified.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidOTP
		}
		return err
	}

	if err := s.otps.Verify(ctx, user.ID, code); err != nil {
		if errors.Is(err, repository.ErrOTPNotFound) || errors.Is(err, repository.ErrOTPMismatch) {
			return ErrInvalidOTP
		}
		return err
	}

	return s.users.MarkVerified(ctx, user.ID)
}

// ResendOTP issues a fresh code for an unverified account.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// don't leak which emails exist
			return nil
		}
		return err
	}
	if user.Verified {
		return nil
	}
	return s.sendOTP(ctx, user)
}

// Login checks credentials and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.Verified {
		return "", nil, ErrNotVerified
	}
	if user.Banned {
		return "", nil, ErrUserBanned
	}

	token, err := GenerateJWT(user.ID, user.IsAdmin)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) sendOTP(ctx context.Context, user *domain.User) error {
	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.otps.Store(ctx, user.ID, code); err != nil {
		return err
	}

	body := mailer.OTPBody(user.Name, code, int(otpTTL.Minutes()))
	return s.mailer.Send(ctx, user.ID, user.Email, "Your Wallet Tally verification code", domain.EmailKindOTP, body)
}

// generateOTP returns a 6-digit code from crypto/rand.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
