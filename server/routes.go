package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) initRoutes() {
	r := s.router
	r.Use(s.StdMiddleware()...)

	// Operational endpoints sit outside the gate.
	r.Get(RouteHealth, s.HealthHandler())
	if s.metrics != nil {
		r.Method(http.MethodGet, RouteMetrics, s.metrics.Handler())
	}

	// Login and logout only touch the cookie and must work in any session state.
	r.Post(RouteAuthLogin, s.LoginSubmissionHandler())
	r.Get(RouteAuthLogout, s.LogoutHandler())
	r.Post(RouteAuthLogout, s.LogoutHandler())

	r.Group(func(r chi.Router) {
		r.Use(s.gate.Middleware)

		r.Get(RouteLogin, s.LoginPageHandler())
		r.Get(RouteUnauthorized, s.UnauthorizedHandler())
		r.Get(RouteHome, s.DashboardHandler())

		r.Get(RouteCustomers, s.CustomersHandler())
		r.Post(RouteCustomers, s.CreateCustomerHandler())
		r.Get(RouteCustomer, s.CustomerHandler())

		r.Get(RouteServices, s.ServicesHandler())
		r.Get(RouteService, s.ServiceHandler())

		r.Get(RouteBookings, s.BookingsHandler())
		r.Get(RouteBooking, s.BookingHandler())

		r.Get(RouteCaptains, s.CaptainsHandler())

		r.Get(RouteStates, s.StatesHandler())
		r.Get(RouteCities, s.CitiesHandler())
	})

	r.NotFound(s.gate.Middleware(s.NotFoundHandler()).ServeHTTP)
	r.MethodNotAllowed(s.gate.Middleware(s.MethodNotAllowedHandler()).ServeHTTP)
}
