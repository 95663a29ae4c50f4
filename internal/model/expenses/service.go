// Package expenses enforces the business rules around expense records:
// amount positivity, owner resolution and monthly range queries.
package expenses

import (
	"context"
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/entity/user"
	"max.ks1230/expense-tracker/internal/logger"
	"max.ks1230/expense-tracker/internal/model/apperr"
	"max.ks1230/expense-tracker/internal/model/storage"
)

type expenseStorage interface {
	AllExpenses(ctx context.Context) ([]expense.Record, error)
	ExpenseByID(ctx context.Context, id int64) (expense.Record, error)
	ExpensesByUser(ctx context.Context, userID int64) ([]expense.Record, error)
	ExpensesByCategory(ctx context.Context, category expense.Category) ([]expense.Record, error)
	ExpensesBetween(ctx context.Context, start, end time.Time) ([]expense.Record, error)
	InsertExpense(ctx context.Context, rec expense.Record) (expense.Record, error)
	UpdateExpense(ctx context.Context, rec expense.Record) error
	DeleteExpense(ctx context.Context, id int64) error

	UserByID(ctx context.Context, id int64) (user.Record, error)
}

// Input is the external payload for add and update. Fields replace the
// stored ones wholesale, including the owning user.
type Input struct {
	Description string           `json:"description"`
	Amount      float64          `json:"amount"`
	Category    expense.Category `json:"category"`
	UserID      int64            `json:"userId"`
}

type Service struct {
	storage expenseStorage
}

func New(storage expenseStorage) *Service {
	return &Service{storage: storage}
}

func (s *Service) List(ctx context.Context) ([]expense.Record, error) {
	exps, err := s.storage.AllExpenses(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list expenses")
	}
	if len(exps) == 0 {
		return nil, apperr.NoData("No Expense Present")
	}
	return exps, nil
}

func (s *Service) Add(ctx context.Context, input Input) (expense.Record, error) {
	if input.Amount < 1 {
		return expense.Record{}, apperr.InvalidRequest("Amount cannot be less than or equal to 0")
	}
	if err := s.resolveOwner(ctx, input.UserID); err != nil {
		return expense.Record{}, err
	}

	ts := time.Now().UTC()
	created, err := s.storage.InsertExpense(ctx, expense.Record{
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		UserID:      input.UserID,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	})
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "add expense")
	}

	logger.Info("expense added",
		zap.Int64("id", created.ID), zap.Int64("userID", created.UserID))
	return created, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]expense.Record, error) {
	exps, err := s.storage.ExpensesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "expenses by user")
	}
	if len(exps) == 0 {
		return nil, apperr.NoData("No Expense for user with id %d", userID)
	}
	return exps, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (expense.Record, error) {
	e, err := s.storage.ExpenseByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return expense.Record{}, apperr.NotFound("Expense not found with id %d", id)
	}
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "get expense")
	}
	return e, nil
}

func (s *Service) UpdateByID(ctx context.Context, id int64, input Input) (expense.Record, error) {
	existing, err := s.storage.ExpenseByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return expense.Record{}, apperr.NotFound("Expense not found with id %d", id)
	}
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "update expense")
	}

	if input.Amount < 1 {
		return expense.Record{}, apperr.InvalidRequest("Amount cannot be less than or equal to 0")
	}
	if err = s.resolveOwner(ctx, input.UserID); err != nil {
		return expense.Record{}, err
	}

	existing.Description = input.Description
	existing.Amount = input.Amount
	existing.Category = input.Category
	existing.UserID = input.UserID
	existing.UpdatedAt = time.Now().UTC()

	if err = s.storage.UpdateExpense(ctx, existing); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return expense.Record{}, apperr.NotFound("Expense not found with id %d", id)
		}
		return expense.Record{}, errors.Wrap(err, "update expense")
	}
	return existing, nil
}

func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	err := s.storage.DeleteExpense(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound("Expense not found with id %d", id)
	}
	if err != nil {
		return errors.Wrap(err, "delete expense")
	}
	return nil
}

func (s *Service) ListByCategory(ctx context.Context, category expense.Category) ([]expense.Record, error) {
	exps, err := s.storage.ExpensesByCategory(ctx, category)
	if err != nil {
		return nil, errors.Wrap(err, "expenses by category")
	}
	if len(exps) == 0 {
		return nil, apperr.NoData("No Expense in category %s", category)
	}
	return exps, nil
}

// ListByMonth returns expenses created during the given month, covering
// the whole month from its first to its last instant.
func (s *Service) ListByMonth(ctx context.Context, month, year int) ([]expense.Record, error) {
	if month < 1 || month > 12 {
		return nil, apperr.InvalidRequest("Month should be between 1 to 12")
	}
	if year < 0 {
		return nil, apperr.InvalidRequest("Year cannot be negative")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := now.With(start).EndOfMonth()

	exps, err := s.storage.ExpensesBetween(ctx, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "expenses by month")
	}
	if len(exps) == 0 {
		return nil, apperr.NoData("No Expense in month %d of year %d", month, year)
	}
	return exps, nil
}

func (s *Service) resolveOwner(ctx context.Context, userID int64) error {
	_, err := s.storage.UserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound("User not found with id %d", userID)
	}
	if err != nil {
		return errors.Wrap(err, "resolve owner")
	}
	return nil
}
