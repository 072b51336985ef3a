package domain

// CategoryType declares which transaction types a category applies to.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
	CategoryBoth    CategoryType = "both"
)

// FallbackCategory is assigned when nothing else matches.
const FallbackCategory = "Others"

// Category is a per-user label attached to transactions, bills and budgets.
type Category struct {
	CategoryID string       `json:"categoryID"`
	UserID     string       `json:"userID"`
	Name       string       `json:"name"`
	Type       CategoryType `json:"type"`
	Icon       string       `json:"icon"`
	Color      string       `json:"color"`
	IsDefault  bool         `json:"isDefault"`
	AuditFields
}

// Accepts reports whether the category can label a transaction of type t.
func (c Category) Accepts(t TransactionType) bool {
	switch c.Type {
	case CategoryBoth:
		return true
	case CategoryIncome:
		return t == Income
	case CategoryExpense:
		return t == Expense
	}
	return false
}

// DefaultCategory is a template for the set seeded for every user.
type DefaultCategory struct {
	Name  string
	Type  CategoryType
	Icon  string
	Color string
}

// DefaultCategories is the seeded category set.
var DefaultCategories = []DefaultCategory{
	{Name: "Salary", Type: CategoryIncome, Icon: "briefcase", Color: "#22C55E"},
	{Name: "Investments", Type: CategoryBoth, Icon: "trending-up", Color: "#14B8A6"},
	{Name: "Food", Type: CategoryExpense, Icon: "utensils", Color: "#F97316"},
	{Name: "Transport", Type: CategoryExpense, Icon: "car", Color: "#3B82F6"},
	{Name: "Housing", Type: CategoryExpense, Icon: "home", Color: "#8B5CF6"},
	{Name: "Utilities", Type: CategoryExpense, Icon: "zap", Color: "#EAB308"},
	{Name: "Health", Type: CategoryExpense, Icon: "heart", Color: "#EF4444"},
	{Name: "Education", Type: CategoryExpense, Icon: "book", Color: "#6366F1"},
	{Name: "Leisure", Type: CategoryExpense, Icon: "film", Color: "#EC4899"},
	{Name: "Shopping", Type: CategoryExpense, Icon: "shopping-bag", Color: "#F59E0B"},
	{Name: "Transfers", Type: CategoryBoth, Icon: "repeat", Color: "#64748B"},
	{Name: FallbackCategory, Type: CategoryBoth, Icon: "tag", Color: "#94A3B8"},
}
