package storage

import (
	"context"
	"sync"
	"time"

	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/entity/user"
)

// InMemStorage is a map-backed twin of PostgresStorage. It mirrors the
// schema rules that matter to callers: unique email, assigned ids and
// cascade of expenses on user delete.
type InMemStorage struct {
	mu            sync.Mutex
	users         map[int64]user.Record
	expenses      map[int64]expense.Record
	nextUserID    int64
	nextExpenseID int64
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{
		users:         make(map[int64]user.Record),
		expenses:      make(map[int64]expense.Record),
		nextUserID:    1,
		nextExpenseID: 1,
	}
}

func (s *InMemStorage) AllUsers(_ context.Context) ([]user.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]user.Record, 0, len(s.users))
	for id := int64(1); id < s.nextUserID; id++ {
		if u, ok := s.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *InMemStorage) UserByID(_ context.Context, id int64) (user.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return user.Record{}, ErrNotFound
	}
	return u, nil
}

func (s *InMemStorage) UserByEmail(_ context.Context, email string) (user.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := int64(1); id < s.nextUserID; id++ {
		if u, ok := s.users[id]; ok && u.Email == email {
			return u, nil
		}
	}
	return user.Record{}, ErrNotFound
}

func (s *InMemStorage) InsertUser(_ context.Context, rec user.Record) (user.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == rec.Email {
			return user.Record{}, ErrEmailTaken
		}
	}

	rec.ID = s.nextUserID
	s.nextUserID++
	s.users[rec.ID] = rec
	return rec, nil
}

func (s *InMemStorage) UpdateUser(_ context.Context, rec user.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[rec.ID]; !ok {
		return ErrNotFound
	}
	for _, u := range s.users {
		if u.Email == rec.Email && u.ID != rec.ID {
			return ErrEmailTaken
		}
	}
	s.users[rec.ID] = rec
	return nil
}

func (s *InMemStorage) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	for expID, e := range s.expenses {
		if e.UserID == id {
			delete(s.expenses, expID)
		}
	}
	return nil
}

func (s *InMemStorage) AllExpenses(_ context.Context) ([]expense.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.collect(func(expense.Record) bool { return true }), nil
}

func (s *InMemStorage) ExpenseByID(_ context.Context, id int64) (expense.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[id]
	if !ok {
		return expense.Record{}, ErrNotFound
	}
	return e, nil
}

func (s *InMemStorage) ExpensesByUser(_ context.Context, userID int64) ([]expense.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.collect(func(e expense.Record) bool { return e.UserID == userID }), nil
}

func (s *InMemStorage) ExpensesByCategory(_ context.Context, category expense.Category) ([]expense.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.collect(func(e expense.Record) bool { return e.Category == category }), nil
}

func (s *InMemStorage) ExpensesBetween(_ context.Context, start, end time.Time) ([]expense.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.collect(func(e expense.Record) bool {
		return !e.CreatedAt.Before(start) && !e.CreatedAt.After(end)
	}), nil
}

func (s *InMemStorage) InsertExpense(_ context.Context, rec expense.Record) (expense.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextExpenseID
	s.nextExpenseID++
	s.expenses[rec.ID] = rec
	return rec, nil
}

func (s *InMemStorage) UpdateExpense(_ context.Context, rec expense.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[rec.ID]; !ok {
		return ErrNotFound
	}
	s.expenses[rec.ID] = rec
	return nil
}

func (s *InMemStorage) DeleteExpense(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[id]; !ok {
		return ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}

// collect returns matching expenses in id order. Callers hold the lock.
func (s *InMemStorage) collect(match func(expense.Record) bool) []expense.Record {
	exps := make([]expense.Record, 0)
	for id := int64(1); id < s.nextExpenseID; id++ {
		if e, ok := s.expenses[id]; ok && match(e) {
			exps = append(exps, e)
		}
	}
	return exps
}
