package models

// Sequence backs display-code allocation (A001, SC010, ...). The row is
// locked FOR UPDATE inside the transaction that inserts the new entity, so
// two concurrent inserts can never read the same value.
type Sequence struct {
	Name  string `gorm:"primaryKey;size:30"`
	Value int64
}
