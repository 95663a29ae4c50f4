package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/entity/user"
	"max.ks1230/expense-tracker/internal/model/expenses"
	"max.ks1230/expense-tracker/internal/model/storage"
	"max.ks1230/expense-tracker/internal/model/users"
)

func newTestMux() *http.ServeMux {
	mem := storage.NewInMemStorage()
	mux := http.NewServeMux()
	NewUserHandler(users.New(mem)).Register(mux)
	NewExpenseHandler(expenses.New(mem)).Register(mux)
	NewHealthHandler(time.Now()).Register(mux)
	return mux
}

func do(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

const annJSON = `{"fullName": "Ann Smith", "email": "ann@example.com", "password": "secret", "monthlyBudget": 1000}`

func createAnn(t *testing.T, mux *http.ServeMux) user.Record {
	t.Helper()

	rec := do(t, mux, http.MethodPost, "/api/user", annJSON)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode[user.Record](t, rec)
}

func Test_OnCreateUser_ShouldReturn201WithoutPassword(t *testing.T) {
	mux := newTestMux()

	rec := do(t, mux, http.MethodPost, "/api/user", annJSON)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "secret")

	created := decode[user.Record](t, rec)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Ann Smith", created.FullName)
}

func Test_OnCreateUserTwice_ShouldReturn409(t *testing.T) {
	mux := newTestMux()
	createAnn(t, mux)

	rec := do(t, mux, http.MethodPost, "/api/user", annJSON)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "User already exists with email ann@example.com")
}

func Test_OnCreateUserWithBadBudget_ShouldReturn400(t *testing.T) {
	mux := newTestMux()

	rec := do(t, mux, http.MethodPost, "/api/user",
		`{"fullName": "Ann", "email": "ann@example.com", "password": "secret", "monthlyBudget": -5}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_OnListUsersEmpty_ShouldReturn404(t *testing.T) {
	mux := newTestMux()

	rec := do(t, mux, http.MethodGet, "/api/user/all", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No User Present")
}

func Test_OnGetUserByIDAndEmail_ShouldReturnSameUser(t *testing.T) {
	mux := newTestMux()
	ann := createAnn(t, mux)

	byID := do(t, mux, http.MethodGet, fmt.Sprintf("/api/user/id/%d", ann.ID), "")
	assert.Equal(t, http.StatusOK, byID.Code)

	byEmail := do(t, mux, http.MethodGet, "/api/user/email/ann@example.com", "")
	assert.Equal(t, http.StatusOK, byEmail.Code)

	assert.Equal(t, decode[user.Record](t, byID), decode[user.Record](t, byEmail))
}

func Test_OnGetUserWithBadID_ShouldReturn400(t *testing.T) {
	mux := newTestMux()

	rec := do(t, mux, http.MethodGet, "/api/user/id/abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_OnUpdateUser_ShouldReturnUpdated(t *testing.T) {
	mux := newTestMux()
	ann := createAnn(t, mux)

	rec := do(t, mux, http.MethodPut, fmt.Sprintf("/api/user/id/%d", ann.ID),
		`{"fullName": "Ann Cooper", "email": "cooper@example.com", "password": "secret", "monthlyBudget": 800}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	updated := decode[user.Record](t, rec)
	assert.Equal(t, ann.ID, updated.ID)
	assert.Equal(t, "cooper@example.com", updated.Email)
}

func Test_OnDeleteUser_ShouldReturnText(t *testing.T) {
	mux := newTestMux()
	ann := createAnn(t, mux)

	rec := do(t, mux, http.MethodDelete, fmt.Sprintf("/api/user/id/%d", ann.ID), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted successfully", rec.Body.String())

	rec = do(t, mux, http.MethodDelete, fmt.Sprintf("/api/user/id/%d", ann.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_OnExpenseLifecycle_ShouldFlowThroughAllRoutes(t *testing.T) {
	mux := newTestMux()
	ann := createAnn(t, mux)

	rec := do(t, mux, http.MethodPost, "/api/expense",
		fmt.Sprintf(`{"description": "groceries", "amount": 50, "category": "FOOD", "userId": %d}`, ann.ID))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[expense.Record](t, rec)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Equal(t, ann.ID, created.UserID)

	rec = do(t, mux, http.MethodGet, fmt.Sprintf("/api/expense/expenseId/%d", created.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, mux, http.MethodGet, fmt.Sprintf("/api/expense/userId/%d", ann.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]expense.Record](t, rec), 1)

	rec = do(t, mux, http.MethodGet, "/api/expense/category/FOOD", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	monthly := fmt.Sprintf("/api/expense/month/%d/year/%d",
		created.CreatedAt.Month(), created.CreatedAt.Year())
	rec = do(t, mux, http.MethodGet, monthly, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]expense.Record](t, rec), 1)

	rec = do(t, mux, http.MethodPut, fmt.Sprintf("/api/expense/expenseId/%d", created.ID),
		fmt.Sprintf(`{"description": "market", "amount": 75, "category": "SHOPPING", "userId": %d}`, ann.ID))
	assert.Equal(t, http.StatusOK, rec.Code)
	updated := decode[expense.Record](t, rec)
	assert.Equal(t, expense.Shopping, updated.Category)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	rec = do(t, mux, http.MethodDelete, fmt.Sprintf("/api/expense/expenseId/%d", created.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Expense deleted successfully", rec.Body.String())

	rec = do(t, mux, http.MethodGet, fmt.Sprintf("/api/expense/expenseId/%d", created.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_OnCreateExpenseWithUnknownUser_ShouldReturn404(t *testing.T) {
	mux := newTestMux()

	rec := do(t, mux, http.MethodPost, "/api/expense",
		`{"amount": 50, "category": "FOOD", "userId": 42}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found with id 42")
}

func Test_OnCreateExpenseWithUnknownCategory_ShouldReturn400(t *testing.T) {
	mux := newTestMux()
	ann := createAnn(t, mux)

	rec := do(t, mux, http.MethodPost, "/api/expense",
		fmt.Sprintf(`{"amount": 50, "category": "GAMBLING", "userId": %d}`, ann.ID))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_OnCreateExpenseWithoutCategory_ShouldReturn400(t *testing.T) {
	mux := newTestMux()
	ann := createAnn(t, mux)

	rec := do(t, mux, http.MethodPost, "/api/expense",
		fmt.Sprintf(`{"amount": 50, "userId": %d}`, ann.ID))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Category is required")
}

func Test_OnListByBadCategoryPath_ShouldReturn400(t *testing.T) {
	mux := newTestMux()

	rec := do(t, mux, http.MethodGet, "/api/expense/category/GAMBLING", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_OnMonthlyWithBadMonth_ShouldReturn400(t *testing.T) {
	mux := newTestMux()

	rec := do(t, mux, http.MethodGet, "/api/expense/month/13/year/2023", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Month should be between 1 to 12")

	rec = do(t, mux, http.MethodGet, "/api/expense/month/abc/year/2023", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_OnDeleteUser_ShouldCascadeToExpenses(t *testing.T) {
	mux := newTestMux()
	ann := createAnn(t, mux)

	rec := do(t, mux, http.MethodPost, "/api/expense",
		fmt.Sprintf(`{"amount": 50, "category": "FOOD", "userId": %d}`, ann.ID))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[expense.Record](t, rec)

	rec = do(t, mux, http.MethodDelete, fmt.Sprintf("/api/user/id/%d", ann.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, mux, http.MethodGet, fmt.Sprintf("/api/expense/expenseId/%d", created.ID), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_OnHealth_ShouldReturnOK(t *testing.T) {
	mux := newTestMux()

	rec := do(t, mux, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
