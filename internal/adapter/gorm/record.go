package gorm

// Record is the persisted form of a collection record. The record itself is
// kept as a JSON document.
type Record struct {
	Collection string `gorm:"primaryKey"`
	ID         int64  `gorm:"primaryKey;autoIncrement:false"`
	// Position keeps the insertion order of the collection.
	Position int64  `gorm:"index"`
	Data     []byte `gorm:"not null"`
}

// Sequence tracks the highest identifier and position ever assigned in a
// collection.
type Sequence struct {
	Collection   string `gorm:"primaryKey"`
	LastID       int64
	LastPosition int64
}
