package domain

import "github.com/shopspring/decimal"

type Presentation struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type Product struct {
	ID             int64           `db:"id"`
	Name           string          `db:"name"`
	Description    string          `db:"description"`
	Stock          int64           `db:"stock"`
	Price          decimal.Decimal `db:"price"`
	PresentationID int64           `db:"presentation_id"`
	File           *string         `db:"file"`
	Presentation   Presentation    `db:"presentation"`
}

// FileName returns the stored filename referenced by the product, or "".
func (p Product) FileName() string {
	if p.File == nil {
		return ""
	}
	return *p.File
}
