package console

import (
	"bytes"
	"encoding/json"
)

// Customer is a customer record as returned by the service API.
type Customer struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address,omitempty"`
	State       string `json:"state,omitempty"`
	City        string `json:"city,omitempty"`
	IsActive    bool   `json:"is_active"`
	Avatar      string `json:"avatar,omitempty"`
}

// CustomerRequest is the body used to create a customer.
type CustomerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	State       string `json:"state"`
	City        string `json:"city"`
	Address     string `json:"address"`
}

// SubscriptionType is a bookable cleaning service.
type SubscriptionType struct {
	ID          int     `json:"id"`
	ServiceCode string  `json:"service_code"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"` // minutes
	Status      string  `json:"status,omitempty"`
}

// Booking is a scheduled service visit.
type Booking struct {
	ID               int     `json:"id"`
	BookingID        string  `json:"booking_id,omitempty"`
	Customer         string  `json:"customer,omitempty"`
	Captain          string  `json:"captain,omitempty"`
	Service          string  `json:"service,omitempty"`
	SubscriptionType string  `json:"subscription_type,omitempty"`
	Date             string  `json:"date,omitempty"`
	Time             string  `json:"time,omitempty"`
	StartDate        string  `json:"start_date,omitempty"`
	Address          string  `json:"address,omitempty"`
	Amount           float64 `json:"amount"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"created_at,omitempty"`
}

// User is a backend user; captains are users with the captain role.
type User struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone_number,omitempty"`
	Role           string  `json:"role,omitempty"`
	Status         string  `json:"status,omitempty"`
	Specialization string  `json:"specialization,omitempty"`
	Rating         float64 `json:"rating,omitempty"`
	Avatar         string  `json:"avatar,omitempty"`
}

// State is an administrative region served by the business.
type State struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// City belongs to a State.
type City struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	State int    `json:"state"`
}

// Paginated is a page of results. Endpoints that return a bare JSON array
// decode into a single page holding every element.
type Paginated[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func (p *Paginated[T]) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var results []T
		if err := json.Unmarshal(trimmed, &results); err != nil {
			return err
		}
		*p = Paginated[T]{Count: len(results), Results: results}
		return nil
	}

	var out paginatedJSON[T]
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*p = Paginated[T](out)
	return nil
}

// paginatedJSON has the fields of Paginated without its UnmarshalJSON method.
type paginatedJSON[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}
