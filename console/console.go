// Package console holds the typed backend actions behind the console pages.
// Every action except Login runs as the session bound to its context.
package console

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jrsteele09/go-console-gateway/gateway"
	"github.com/jrsteele09/go-console-gateway/sessions"
)

const (
	pathLogin            = "/api/auth/login/"
	pathCustomers        = "/api/service/customer"
	pathSubscriptionType = "/api/service/subscription-type"
	pathBookings         = "/api/service/bookings"
	pathBooking          = "/api/service/booking"
	pathCaptains         = "/api/service/user/captain"
	pathStates           = "/api/service/states"
	pathCities           = "/api/service/cities"
)

// Console groups the actions the console pages call.
type Console struct {
	gateway *gateway.Gateway
	store   *sessions.Store
}

// New creates a Console.
func New(gw *gateway.Gateway, store *sessions.Store) *Console {
	return &Console{gateway: gw, store: store}
}

// GetCustomers lists customers.
func (c *Console) GetCustomers(ctx context.Context) gateway.ActionResponse[Paginated[Customer]] {
	return gateway.Get[Paginated[Customer]](ctx, c.gateway, pathCustomers)
}

// GetCustomerByID fetches one customer.
func (c *Console) GetCustomerByID(ctx context.Context, id string) gateway.ActionResponse[Customer] {
	return gateway.Get[Customer](ctx, c.gateway, itemPath(pathCustomers, id))
}

// CreateCustomer creates a customer and returns the stored record.
func (c *Console) CreateCustomer(ctx context.Context, req CustomerRequest) gateway.ActionResponse[Customer] {
	return gateway.Post[CustomerRequest, Customer](ctx, c.gateway, pathCustomers, req)
}

// GetSubscriptions lists the bookable services.
func (c *Console) GetSubscriptions(ctx context.Context) gateway.ActionResponse[Paginated[SubscriptionType]] {
	return gateway.Get[Paginated[SubscriptionType]](ctx, c.gateway, pathSubscriptionType)
}

// GetServiceByID fetches one service.
func (c *Console) GetServiceByID(ctx context.Context, id string) gateway.ActionResponse[SubscriptionType] {
	return gateway.Get[SubscriptionType](ctx, c.gateway, itemPath(pathSubscriptionType, id))
}

func (c *Console) GetBookings(ctx context.Context) gateway.ActionResponse[Paginated[Booking]] {
	return gateway.Get[Paginated[Booking]](ctx, c.gateway, pathBookings)
}

func (c *Console) GetBookingByID(ctx context.Context, id string) gateway.ActionResponse[Booking] {
	return gateway.Get[Booking](ctx, c.gateway, itemPath(pathBooking, id))
}

func (c *Console) GetCaptains(ctx context.Context) gateway.ActionResponse[Paginated[User]] {
	return gateway.Get[Paginated[User]](ctx, c.gateway, pathCaptains)
}

func (c *Console) GetStates(ctx context.Context) gateway.ActionResponse[Paginated[State]] {
	return gateway.Get[Paginated[State]](ctx, c.gateway, pathStates)
}

// GetCities lists the cities of a state.
func (c *Console) GetCities(ctx context.Context, stateID int) gateway.ActionResponse[Paginated[City]] {
	return gateway.Get[Paginated[City]](ctx, c.gateway, fmt.Sprintf("%s/%d", pathCities, stateID))
}

func itemPath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}
