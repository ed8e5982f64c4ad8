package storage

import "gorm.io/datatypes"

// DrinkRecord is the stored shape of a drink. Recipe holds the serialized
// ingredient list; it is written in one piece or not at all.
type DrinkRecord struct {
	ID     uint           `gorm:"primaryKey"`
	Title  string         `gorm:"uniqueIndex;not null"`
	Recipe datatypes.JSON `gorm:"not null"`
}

func (DrinkRecord) TableName() string {
	return "drinks"
}
