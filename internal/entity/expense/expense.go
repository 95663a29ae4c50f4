package expense

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Category is a closed set of spending categories. The zero value is
// not a member; unknown text must be rejected at the boundary.
type Category string

const (
	Food          Category = "FOOD"
	Travel        Category = "TRAVEL"
	Entertainment Category = "ENTERTAINMENT"
	Shopping      Category = "SHOPPING"
	Utilities     Category = "UTILITIES"
	Healthcare    Category = "HEALTHCARE"
	Education     Category = "EDUCATION"
	Miscellaneous Category = "MISCELLANEOUS"
)

var categories = map[Category]struct{}{
	Food:          {},
	Travel:        {},
	Entertainment: {},
	Shopping:      {},
	Utilities:     {},
	Healthcare:    {},
	Education:     {},
	Miscellaneous: {},
}

// ParseCategory matches text against the category set, ignoring case.
func ParseCategory(text string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(text)))
	if _, ok := categories[c]; !ok {
		return "", fmt.Errorf("unknown category %q", text)
	}
	return c, nil
}

func (c Category) String() string {
	return string(c)
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	parsed, err := ParseCategory(text)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Record is a stored expense. The owner is referenced by id only.
type Record struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    Category  `json:"category"`
	UserID      int64     `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
