package models

import "strings"

type Store struct {
	StoreID     int     `gorm:"column:storeid;primaryKey"`
	Address     string  `gorm:"column:address;not null"`
	ReviewScore float64 `gorm:"column:reviewscore"`
	IsOpen      string  `gorm:"column:isopen;size:1"`
}

func (Store) TableName() string { return "store" }

// OpenLabel renders the textual boolean stored in isopen.
func OpenLabel(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "t", "true", "1", "y", "yes":
		return "Open"
	}
	return "Closed"
}
