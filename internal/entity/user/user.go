package user

// Record is a stored user. PasswordHash never leaves the process.
type Record struct {
	ID            int64   `json:"id"`
	FullName      string  `json:"fullName"`
	Email         string  `json:"email"`
	PasswordHash  string  `json:"-"`
	MonthlyBudget float64 `json:"monthlyBudget"`
}
