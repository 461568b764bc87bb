package models

import (
	"encoding/json"
	"time"
)

// User is an app account as the backend returns it. Status and role are
// free-form strings owned by the backend ("active", "delete", "USER", ...).
type User struct {
	ID               string    `json:"_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	Status           string    `json:"status"`
	CanAccessFeature string    `json:"canAccessFeature,omitempty"`
	ProfileMode      string    `json:"profile_mode,omitempty"`
	Image            string    `json:"image,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type Preference struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Plan covers both gym-and-fitness and business-and-mindset plans; the two
// collections share a shape. Description is user-authored HTML.
type Plan struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	Looked      bool      `json:"looked"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type MealCategory struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Meal struct {
	ID          string      `json:"_id"`
	Category    CategoryRef `json:"mealCategory"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Image       string      `json:"image,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// CategoryRef is a meal's category relation. The backend sends either a bare
// id string or an embedded {_id, title} object depending on population; both
// decode into the same normalized value.
type CategoryRef struct {
	ID       string
	Title    string
	Embedded bool
}

func CategoryID(id string) CategoryRef { return CategoryRef{ID: id} }

func EmbeddedCategory(id, title string) CategoryRef {
	return CategoryRef{ID: id, Title: title, Embedded: true}
}

func (r *CategoryRef) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		*r = CategoryRef{ID: id}
		return nil
	}
	var obj struct {
		ID    string `json:"_id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*r = CategoryRef{ID: obj.ID, Title: obj.Title, Embedded: true}
	return nil
}

func (r CategoryRef) MarshalJSON() ([]byte, error) {
	if !r.Embedded {
		return json.Marshal(r.ID)
	}
	return json.Marshal(struct {
		ID    string `json:"_id"`
		Title string `json:"title"`
	}{r.ID, r.Title})
}

// Order is a read-only record synced from the e-commerce platform.
type Order struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Price      string    `json:"price"`
	Currency   string    `json:"currency"`
	TotalItems int       `json:"totalItems"`
	PONumber   string    `json:"poNumber,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type OrderLineItem struct {
	ProductID     string `json:"productId"`
	ProductHandle string `json:"productHandle,omitempty"`
	ProductImage  string `json:"productImage,omitempty"`
	Title         string `json:"title"`
	Quantity      int    `json:"quantity"`
	Price         string `json:"price"`
}

type OrderDetails struct {
	ID        string          `json:"_id"`
	Name      string          `json:"name"`
	Amount    string          `json:"amount"`
	Currency  string          `json:"currency"`
	LineItems []OrderLineItem `json:"lineItems"`
}

type Notification struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Statistics is the dashboard headline payload.
type Statistics struct {
	TotalUser         int `json:"totalUser"`
	TotalOrder        int `json:"totalOrder"`
	TotalMeal         int `json:"totalMeal"`
	TotalNotification int `json:"totalNotification"`
}

type MonthlyEarning struct {
	Month   string  `json:"month"`
	Earning float64 `json:"earning"`
}

type MonthlyUsers struct {
	Month string `json:"month"`
	Value int    `json:"value"`
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// TotalPages is what a pagination control renders: ceil(total/limit).
func (p Pagination) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// FieldError is one entry of the backend's validation error list.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ErrorResponse is the backend's error envelope.
type ErrorResponse struct {
	Success       bool         `json:"success"`
	Message       string       `json:"message"`
	ErrorMessages []FieldError `json:"errorMessages,omitempty"`
}
