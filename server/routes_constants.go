package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - Login & Logout
	RouteLogin        = "/login"
	RouteAuthLogin    = "/auth/login"
	RouteAuthLogout   = "/auth/logout"
	RouteUnauthorized = "/unauthorized"

	// Dashboard
	RouteHome = "/"

	// Console pages
	RouteCustomers = "/customers"
	RouteCustomer  = "/customers/{id}"
	RouteServices  = "/services"
	RouteService   = "/services/{code}"
	RouteBookings  = "/bookings"
	RouteBooking   = "/bookings/{id}"
	RouteCaptains  = "/captains"

	// Settings (admin only)
	RouteStates = "/settings/states"
	RouteCities = "/settings/states/{id}/cities"

	// Operational
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
