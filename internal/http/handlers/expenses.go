package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"max.ks1230/expense-tracker/internal/entity/expense"
	"max.ks1230/expense-tracker/internal/http/respond"
	"max.ks1230/expense-tracker/internal/model/apperr"
	"max.ks1230/expense-tracker/internal/model/expenses"
)

// ExpenseHandler owns the /api/expense routes.
type ExpenseHandler struct {
	expenses *expenses.Service
}

func NewExpenseHandler(expenses *expenses.Service) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// Register attaches expense routes to the mux.
func (h *ExpenseHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/expense/all", h.handleList)
	mux.HandleFunc("POST /api/expense", h.handleCreate)
	mux.HandleFunc("GET /api/expense/userId/{userId}", h.handleListByUser)
	mux.HandleFunc("GET /api/expense/expenseId/{expenseId}", h.handleGetByID)
	mux.HandleFunc("PUT /api/expense/expenseId/{expenseId}", h.handleUpdate)
	mux.HandleFunc("DELETE /api/expense/expenseId/{expenseId}", h.handleDelete)
	mux.HandleFunc("GET /api/expense/category/{category}", h.handleListByCategory)
	mux.HandleFunc("GET /api/expense/month/{month}/year/{year}", h.handleListByMonth)
}

func (h *ExpenseHandler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.expenses.List(r.Context())
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

func (h *ExpenseHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	input, err := decodeExpense(r)
	if err != nil {
		respond.Err(w, err)
		return
	}

	created, err := h.expenses.Add(r.Context(), input)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

func (h *ExpenseHandler) handleListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		respond.Err(w, err)
		return
	}

	list, err := h.expenses.ListByUser(r.Context(), userID)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

func (h *ExpenseHandler) handleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "expenseId")
	if err != nil {
		respond.Err(w, err)
		return
	}

	e, err := h.expenses.GetByID(r.Context(), id)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, e)
}

func (h *ExpenseHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "expenseId")
	if err != nil {
		respond.Err(w, err)
		return
	}

	input, err := decodeExpense(r)
	if err != nil {
		respond.Err(w, err)
		return
	}

	updated, err := h.expenses.UpdateByID(r.Context(), id, input)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *ExpenseHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "expenseId")
	if err != nil {
		respond.Err(w, err)
		return
	}

	if err := h.expenses.DeleteByID(r.Context(), id); err != nil {
		respond.Err(w, err)
		return
	}
	respond.Text(w, http.StatusOK, "Expense deleted successfully")
}

func (h *ExpenseHandler) handleListByCategory(w http.ResponseWriter, r *http.Request) {
	category, err := expense.ParseCategory(r.PathValue("category"))
	if err != nil {
		respond.Err(w, apperr.InvalidRequest("%s", err.Error()))
		return
	}

	list, err := h.expenses.ListByCategory(r.Context(), category)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

func (h *ExpenseHandler) handleListByMonth(w http.ResponseWriter, r *http.Request) {
	month, err := pathInt(r, "month")
	if err != nil {
		respond.Err(w, err)
		return
	}
	year, err := pathInt(r, "year")
	if err != nil {
		respond.Err(w, err)
		return
	}

	list, err := h.expenses.ListByMonth(r.Context(), month, year)
	if err != nil {
		respond.Err(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

func decodeExpense(r *http.Request) (expenses.Input, error) {
	var input expenses.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return expenses.Input{}, apperr.InvalidRequest("Invalid request payload")
	}
	if input.Category == "" {
		return expenses.Input{}, apperr.InvalidRequest("Category is required")
	}
	return input, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, apperr.InvalidRequest("Invalid %s %q", name, r.PathValue(name))
	}
	return id, nil
}

func pathInt(r *http.Request, name string) (int, error) {
	val, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, apperr.InvalidRequest("Invalid %s %q", name, r.PathValue(name))
	}
	return val, nil
}
