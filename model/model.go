package model

import (
	"strings"
	"time"
)

// Role of a user account. Values are stored lower case but compared loosely, since rows
// written by hand often carry padding or capitals.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RoleManager  Role = "manager"
)

// OrderStatusIncomplete is given to every freshly placed order.
const OrderStatusIncomplete = "incomplete"

func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// IsStaff reports whether the role may see every order and change order status.
func (r Role) IsStaff() bool {
	return r == RoleDriver || r == RoleManager
}

type User struct {
	Login         string `yaml:"login"`
	Password      string `yaml:"password"`
	Role          Role   `yaml:"role"`
	FavoriteItems string `yaml:"favorite_items"`
	PhoneNum      string `yaml:"phone_num"`
}

type Item struct {
	Name        string  `yaml:"name"`
	Ingredients string  `yaml:"ingredients"`
	Type        string  `yaml:"type"`
	Price       float64 `yaml:"price"`
	Description string  `yaml:"description"`
}

type Store struct {
	ID          int     `yaml:"id"`
	Address     string  `yaml:"address"`
	City        string  `yaml:"city"`
	State       string  `yaml:"state"`
	IsOpen      string  `yaml:"is_open"`
	ReviewScore float64 `yaml:"review_score"`
}

type Order struct {
	ID         int
	Login      string
	StoreID    int
	TotalPrice float64
	Timestamp  time.Time
	Status     string
	Lines      []OrderLine
}

// OrderLine is one item of an order being placed.
type OrderLine struct {
	ItemName string
	Quantity int
	Price    float64
}

// Total sums price times quantity over the lines.
func (o Order) Total() float64 {
	total := 0.0

	for _, l := range o.Lines {
		total += l.Price * float64(l.Quantity)
	}

	return total
}
