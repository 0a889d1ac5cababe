package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"salon-suite/internal/domain"
	"salon-suite/internal/domain/model"
	"salon-suite/internal/domain/ports/repository"
)

// UserUseCase covers account management: signup, login and the OTP-based
// password reset. Delivery of the OTP is out of scope; callers decide what
// to do with the returned code.
type UserUseCase struct {
	repo   repository.UserRepository
	otpTTL time.Duration
	log    *zerolog.Logger
}

func NewUserUseCase(repo repository.UserRepository, otpTTL time.Duration, logger *zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, otpTTL: otpTTL, log: logger}
}

// Register creates an account with a bcrypt-hashed password.
func (uc *UserUseCase) Register(ctx context.Context, name, email, phone, password string, role model.Role) (*model.User, error) {
	if password == "" {
		return nil, domain.ErrValidation
	}
	if existing, err := uc.repo.FindByEmail(ctx, repository.NoTX, email); err == nil && !existing.IsZero() {
		return nil, domain.ErrAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u, err := model.NewUser(uuid.NewString(), name, email, string(hash), role)
	if err != nil {
		return nil, err
	}
	u.Phone = phone
	if err := uc.repo.Save(ctx, repository.NoTX, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate verifies credentials and returns the account.
func (uc *UserUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := uc.repo.FindByEmail(ctx, repository.NoTX, email)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}

// RequestPasswordReset stores a six-digit OTP with an expiry timestamp and
// returns the code. Expiry is a plain comparison at verification time.
func (uc *UserUseCase) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	u, err := uc.repo.FindByEmail(ctx, repository.NoTX, email)
	if err != nil {
		return "", err
	}
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())
	expires := time.Now().Add(uc.otpTTL)
	u.OTP = code
	u.OTPExpires = &expires
	u.UpdatedAt = time.Now()
	if err := uc.repo.Save(ctx, repository.NoTX, u); err != nil {
		return "", err
	}
	if uc.log != nil {
		uc.log.Info().Str("email", email).Time("expires", expires).Msg("password reset requested")
	}
	return code, nil
}

// ResetPassword verifies the OTP and replaces the password hash.
func (uc *UserUseCase) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	u, err := uc.repo.FindByEmail(ctx, repository.NoTX, email)
	if err != nil {
		return err
	}
	if !u.OTPValid(code, time.Now()) {
		return domain.ErrOTPExpired
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.OTP = ""
	u.OTPExpires = nil
	u.UpdatedAt = time.Now()
	return uc.repo.Save(ctx, repository.NoTX, u)
}

func (uc *UserUseCase) Get(ctx context.Context, id string) (*model.User, error) {
	return uc.repo.FindByID(ctx, repository.NoTX, id)
}

func (uc *UserUseCase) ListCustomers(ctx context.Context) ([]*model.User, error) {
	return uc.repo.ListByRole(ctx, repository.NoTX, model.RoleCustomer)
}
