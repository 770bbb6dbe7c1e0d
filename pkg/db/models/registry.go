package models

// All returns every model in migration-safe order (referenced tables
// first).
func All() []any {
	return []any{
		&User{},
		&Address{},
		&Category{},
		&Banner{},
		&Product{},
		&Order{},
		&OrderLineItem{},
	}
}
