package models

// ItemType is the menu category of an item.
type ItemType string

const (
	TypeEntree ItemType = "entree"
	TypeDrinks ItemType = "drinks"
	TypeSides  ItemType = "sides"
)

var ItemTypes = []ItemType{TypeEntree, TypeDrinks, TypeSides}

type Item struct {
	ItemName    string   `gorm:"column:itemname;primaryKey;size:50"`
	Ingredients string   `gorm:"column:ingredients"`
	TypeOfItem  ItemType `gorm:"column:typeofitem;not null"`
	Price       float64  `gorm:"column:price;not null"`
	Description string   `gorm:"column:description"`
}

func (Item) TableName() string { return "items" }
