package models

import "time"

// OrderStatus represents all possible states of a food order
type OrderStatus string

const (
	StatusProcessing     OrderStatus = "Processing"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

// Statuses lists the order statuses in lifecycle order.
var Statuses = []OrderStatus{StatusProcessing, StatusOutForDelivery, StatusDelivered, StatusCancelled}

// FoodOrder is an order header. login references users and storeid
// references store.
type FoodOrder struct {
	OrderID        int         `gorm:"column:orderid;primaryKey;autoIncrement"`
	Login          string      `gorm:"column:login;not null;size:50"`
	StoreID        int         `gorm:"column:storeid;not null"`
	TotalPrice     float64     `gorm:"column:totalprice;not null"`
	OrderStatus    OrderStatus `gorm:"column:orderstatus;not null"`
	OrderTimestamp time.Time   `gorm:"column:ordertimestamp;not null"`
}

func (FoodOrder) TableName() string { return "foodorder" }

// ItemsInOrder is one line of an order, keyed by (orderid, itemname).
type ItemsInOrder struct {
	OrderID  int    `gorm:"column:orderid;primaryKey;autoIncrement:false"`
	ItemName string `gorm:"column:itemname;primaryKey;size:50"`
	Quantity int    `gorm:"column:quantity;not null"`
}

func (ItemsInOrder) TableName() string { return "itemsinorder" }
