package models

// Category is the categories table row.
type Category struct {
	CategoryID string `db:"category_id"`
	UserID     string `db:"user_id"`
	Name       string `db:"name"`
	Type       string `db:"type"`
	Icon       string `db:"icon"`
	Color      string `db:"color"`
	IsDefault  bool   `db:"is_default"`
	AuditFields
}
