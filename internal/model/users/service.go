// Package users enforces the business rules around user records:
// email uniqueness, budget positivity and credential hashing.
package users

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"max.ks1230/expense-tracker/internal/entity/user"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/apperr"
	"max.ks1230/expense-tracker/internal/model/storage"
)

const minPasswordLen = 5

type userStorage interface {
	AllUsers(ctx context.Context) ([]user.Record, error)
	UserByID(ctx context.Context, id int64) (user.Record, error)
	UserByEmail(ctx context.Context, email string) (user.Record, error)
	InsertUser(ctx context.Context, rec user.Record) (user.Record, error)
	UpdateUser(ctx context.Context, rec user.Record) error
	DeleteUser(ctx context.Context, id int64) error
}

// Input is the external payload for create and update. Fields replace
// the stored ones wholesale.
type Input struct {
	FullName      string  `json:"fullName"`
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	MonthlyBudget float64 `json:"monthlyBudget"`
}

type Service struct {
	storage userStorage
}

func New(storage userStorage) *Service {
	return &Service{storage: storage}
}

func (s *Service) List(ctx context.Context) ([]user.Record, error) {
	users, err := s.storage.AllUsers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	if len(users) == 0 {
		return nil, apperr.NoData("No User Present")
	}
	return users, nil
}

func (s *Service) Create(ctx context.Context, input Input) (user.Record, error) {
	_, err := s.storage.UserByEmail(ctx, input.Email)
	if err == nil {
		return user.Record{}, apperr.AlreadyExists("User already exists with email %s", input.Email)
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return user.Record{}, errors.Wrap(err, "create user")
	}

	if err = validate(input); err != nil {
		return user.Record{}, err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return user.Record{}, errors.Wrap(err, "create user")
	}

	created, err := s.storage.InsertUser(ctx, user.Record{
		FullName:      input.FullName,
		Email:         input.Email,
		PasswordHash:  hash,
		MonthlyBudget: input.MonthlyBudget,
	})
	if errors.Is(err, storage.ErrEmailTaken) {
		return user.Record{}, apperr.AlreadyExists("User already exists with email %s", input.Email)
	}
	if err != nil {
		return user.Record{}, errors.Wrap(err, "create user")
	}

	logger.Info("user created", zap.Int64("id", created.ID))
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (user.Record, error) {
	u, err := s.storage.UserByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return user.Record{}, apperr.NotFound("User not found with id %d", id)
	}
	if err != nil {
		return user.Record{}, errors.Wrap(err, "get user")
	}
	return u, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (user.Record, error) {
	u, err := s.storage.UserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return user.Record{}, apperr.NotFound("User not found with email %s", email)
	}
	if err != nil {
		return user.Record{}, errors.Wrap(err, "get user by email")
	}
	return u, nil
}

func (s *Service) UpdateByID(ctx context.Context, id int64, input Input) (user.Record, error) {
	existing, err := s.storage.UserByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return user.Record{}, apperr.NotFound("User not found with id %d", id)
	}
	if err != nil {
		return user.Record{}, errors.Wrap(err, "update user")
	}

	if err = validate(input); err != nil {
		return user.Record{}, err
	}

	other, err := s.storage.UserByEmail(ctx, input.Email)
	if err == nil && other.ID != id {
		return user.Record{}, apperr.AlreadyExists("User already exists with email %s", input.Email)
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return user.Record{}, errors.Wrap(err, "update user")
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return user.Record{}, errors.Wrap(err, "update user")
	}

	existing.FullName = input.FullName
	existing.Email = input.Email
	existing.PasswordHash = hash
	existing.MonthlyBudget = input.MonthlyBudget

	err = s.storage.UpdateUser(ctx, existing)
	if errors.Is(err, storage.ErrEmailTaken) {
		return user.Record{}, apperr.AlreadyExists("User already exists with email %s", input.Email)
	}
	if err != nil {
		return user.Record{}, errors.Wrap(err, "update user")
	}
	return existing, nil
}

// DeleteByID removes the user and, through the storage cascade rule,
// every expense the user owns.
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	err := s.storage.DeleteUser(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound("User not found with id %d", id)
	}
	if err != nil {
		return errors.Wrap(err, "delete user")
	}

	logger.Info("user deleted", zap.Int64("id", id))
	return nil
}

func validate(input Input) error {
	if input.MonthlyBudget <= 0 {
		return apperr.InvalidRequest("Monthly Budget cannot be less than or equal to 0")
	}
	if strings.TrimSpace(input.FullName) == "" {
		return apperr.InvalidRequest("Full Name cannot be blank")
	}
	if len(input.Password) < minPasswordLen {
		return apperr.InvalidRequest("Password must be at least %d characters", minPasswordLen)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hash), nil
}
