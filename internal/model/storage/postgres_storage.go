package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/entity/user"
	"max.ks1230/expense-tracker/internal/logger"
)

const dsnTemplate = "user=%s password=%s host=%s dbname=%s sslmode=disable"

const uniqueViolationCode = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type config interface {
	Host() string
	Username() string
	Password() string
	Database() string
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config config) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", fmt.Sprintf(dsnTemplate,
		config.Username(),
		config.Password(),
		config.Host(),
		config.Database()))
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = runMigrations(db); err != nil {
		return nil, errors.Wrap(err, "cannot migrate database")
	}
	return &PostgresStorage{db}, nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

func (s *PostgresStorage) AllUsers(ctx context.Context) ([]user.Record, error) {
	query := psql.Select("id", "full_name", "email", "password_hash", "monthly_budget").
		From("users").
		OrderBy("id")

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "all users")
	}
	defer closeRows(rows)

	users := make([]user.Record, 0)
	for rows.Next() {
		var u user.Record
		err = rows.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.MonthlyBudget)
		if err != nil {
			return nil, errors.Wrap(err, "all users")
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "all users")
	}

	return users, nil
}

func (s *PostgresStorage) UserByID(ctx context.Context, id int64) (user.Record, error) {
	query := psql.Select("id", "full_name", "email", "password_hash", "monthly_budget").
		From("users").
		Where(sq.Eq{"id": id})

	var u user.Record
	err := query.RunWith(s.db).QueryRowContext(ctx).
		Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.MonthlyBudget)
	if errors.Is(err, sql.ErrNoRows) {
		return user.Record{}, ErrNotFound
	}
	if err != nil {
		return user.Record{}, errors.Wrap(err, "get user")
	}
	return u, nil
}

func (s *PostgresStorage) UserByEmail(ctx context.Context, email string) (user.Record, error) {
	query := psql.Select("id", "full_name", "email", "password_hash", "monthly_budget").
		From("users").
		Where(sq.Eq{"email": email})

	var u user.Record
	err := query.RunWith(s.db).QueryRowContext(ctx).
		Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.MonthlyBudget)
	if errors.Is(err, sql.ErrNoRows) {
		return user.Record{}, ErrNotFound
	}
	if err != nil {
		return user.Record{}, errors.Wrap(err, "get user by email")
	}
	return u, nil
}

func (s *PostgresStorage) InsertUser(ctx context.Context, rec user.Record) (user.Record, error) {
	query := psql.Insert("users").
		Columns("full_name", "email", "password_hash", "monthly_budget").
		Values(rec.FullName, rec.Email, rec.PasswordHash, rec.MonthlyBudget).
		Suffix("RETURNING id")

	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&rec.ID)
	if isUniqueViolation(err) {
		return user.Record{}, ErrEmailTaken
	}
	if err != nil {
		return user.Record{}, errors.Wrap(err, "insert user")
	}
	return rec, nil
}

func (s *PostgresStorage) UpdateUser(ctx context.Context, rec user.Record) error {
	query := psql.Update("users").
		Set("full_name", rec.FullName).
		Set("email", rec.Email).
		Set("password_hash", rec.PasswordHash).
		Set("monthly_budget", rec.MonthlyBudget).
		Where(sq.Eq{"id": rec.ID})

	res, err := query.RunWith(s.db).ExecContext(ctx)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return errors.Wrap(err, "update user")
	}
	return noneAffectedAsNotFound(res, "update user")
}

func (s *PostgresStorage) DeleteUser(ctx context.Context, id int64) error {
	query := psql.Delete("users").
		Where(sq.Eq{"id": id})

	res, err := query.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return errors.Wrap(err, "delete user")
	}
	return noneAffectedAsNotFound(res, "delete user")
}

func (s *PostgresStorage) AllExpenses(ctx context.Context) ([]expense.Record, error) {
	return s.selectExpenses(ctx, s.expenseQuery(), "all expenses")
}

func (s *PostgresStorage) ExpenseByID(ctx context.Context, id int64) (expense.Record, error) {
	query := s.expenseQuery().Where(sq.Eq{"id": id})

	var e expense.Record
	err := query.RunWith(s.db).QueryRowContext(ctx).
		Scan(&e.ID, &e.Description, &e.Amount, &e.Category, &e.UserID, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return expense.Record{}, ErrNotFound
	}
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "get expense")
	}
	return e, nil
}

func (s *PostgresStorage) ExpensesByUser(ctx context.Context, userID int64) ([]expense.Record, error) {
	query := s.expenseQuery().Where(sq.Eq{"user_id": userID})
	return s.selectExpenses(ctx, query, "expenses by user")
}

func (s *PostgresStorage) ExpensesByCategory(ctx context.Context, category expense.Category) ([]expense.Record, error) {
	query := s.expenseQuery().Where(sq.Eq{"category": category.String()})
	return s.selectExpenses(ctx, query, "expenses by category")
}

// ExpensesBetween returns expenses created in [start, end], both inclusive.
func (s *PostgresStorage) ExpensesBetween(ctx context.Context, start, end time.Time) ([]expense.Record, error) {
	query := s.expenseQuery().
		Where(sq.GtOrEq{"created_at": start}).
		Where(sq.LtOrEq{"created_at": end})
	return s.selectExpenses(ctx, query, "expenses between")
}

func (s *PostgresStorage) InsertExpense(ctx context.Context, rec expense.Record) (expense.Record, error) {
	query := psql.Insert("expenses").
		Columns("description", "amount", "category", "user_id", "created_at", "updated_at").
		Values(rec.Description, rec.Amount, rec.Category.String(), rec.UserID, rec.CreatedAt, rec.UpdatedAt).
		Suffix("RETURNING id")

	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&rec.ID)
	if err != nil {
		return expense.Record{}, errors.Wrap(err, "insert expense")
	}
	return rec, nil
}

func (s *PostgresStorage) UpdateExpense(ctx context.Context, rec expense.Record) error {
	query := psql.Update("expenses").
		Set("description", rec.Description).
		Set("amount", rec.Amount).
		Set("category", rec.Category.String()).
		Set("user_id", rec.UserID).
		Set("updated_at", rec.UpdatedAt).
		Where(sq.Eq{"id": rec.ID})

	res, err := query.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return errors.Wrap(err, "update expense")
	}
	return noneAffectedAsNotFound(res, "update expense")
}

func (s *PostgresStorage) DeleteExpense(ctx context.Context, id int64) error {
	query := psql.Delete("expenses").
		Where(sq.Eq{"id": id})

	res, err := query.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return errors.Wrap(err, "delete expense")
	}
	return noneAffectedAsNotFound(res, "delete expense")
}

func (s *PostgresStorage) expenseQuery() sq.SelectBuilder {
	return psql.Select("id", "description", "amount", "category", "user_id", "created_at", "updated_at").
		From("expenses").
		OrderBy("id")
}

func (s *PostgresStorage) selectExpenses(ctx context.Context, query sq.SelectBuilder, op string) ([]expense.Record, error) {
	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	defer closeRows(rows)

	exps := make([]expense.Record, 0)
	for rows.Next() {
		var e expense.Record
		err = rows.Scan(&e.ID, &e.Description, &e.Amount, &e.Category, &e.UserID, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, errors.Wrap(err, op)
		}
		exps = append(exps, e)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, op)
	}

	return exps, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}

func noneAffectedAsNotFound(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, op)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logger.Warn("error closing rows", zap.Error(err))
	}
}
