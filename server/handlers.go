package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jrsteele09/go-console-gateway/console"
	"github.com/jrsteele09/go-console-gateway/gate"
	"github.com/jrsteele09/go-console-gateway/gateway"
	"github.com/jrsteele09/go-console-gateway/sessions"
)

// DashboardData describes the signed in user.
type DashboardData struct {
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Role   string          `json:"role"`
	Device gate.DeviceType `json:"device"`
}

// writeAction writes an action response using its code as the HTTP status.
func writeAction[D any](w http.ResponseWriter, resp gateway.ActionResponse[D]) {
	writeJSON(w, resp.Code, resp)
}

func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessions.FromContext(r.Context())
		if !ok {
			writeAction(w, gateway.Failure[DashboardData](http.StatusUnauthorized, "User not logged in"))
			return
		}
		role, _ := gate.RoleFromContext(r.Context())
		writeAction(w, gateway.Success(&DashboardData{
			Name:   session.Principal.Name,
			Email:  session.Principal.Email,
			Role:   role,
			Device: gate.DeviceFromContext(r.Context()),
		}))
	}
}

func (s *Server) UnauthorizedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, errorBody{Message: "You are not authorized to view this page"})
	}
}

func (s *Server) CustomersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeAction(w, s.console.GetCustomers(r.Context()))
	}
}

func (s *Server) CustomerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeAction(w, s.console.GetCustomerByID(r.Context(), chi.URLParam(r, "id")))
	}
}

// CreateCustomerHandler accepts either a JSON body or a form post.
func (s *Server) CreateCustomerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req console.CustomerRequest
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType == contentTypeJSON {
			if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
				writeAction(w, gateway.Failure[console.Customer](http.StatusBadRequest, "Invalid customer"))
				return
			}
		} else {
			if err := r.ParseForm(); err != nil {
				writeAction(w, gateway.Failure[console.Customer](http.StatusBadRequest, "Invalid form data"))
				return
			}
			req = console.CustomerRequest{
				Name:        r.FormValue("name"),
				Email:       r.FormValue("email"),
				PhoneNumber: r.FormValue("phone_number"),
				State:       r.FormValue("state"),
				City:        r.FormValue("city"),
				Address:     r.FormValue("address"),
			}
		}
		writeAction(w, s.console.CreateCustomer(r.Context(), req))
	}
}

func (s *Server) ServicesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeAction(w, s.console.GetSubscriptions(r.Context()))
	}
}

func (s *Server) ServiceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeAction(w, s.console.GetServiceByID(r.Context(), chi.URLParam(r, "code")))
	}
}

func (s *Server) BookingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeAction(w, s.console.GetBookings(r.Context()))
	}
}

func (s *Server) BookingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeAction(w, s.console.GetBookingByID(r.Context(), chi.URLParam(r, "id")))
	}
}

func (s *Server) CaptainsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeAction(w, s.console.GetCaptains(r.Context()))
	}
}

func (s *Server) StatesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeAction(w, s.console.GetStates(r.Context()))
	}
}

func (s *Server) CitiesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stateID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil || stateID <= 0 {
			writeAction(w, gateway.Failure[console.Paginated[console.City]](http.StatusBadRequest, "Invalid state id"))
			return
		}
		writeAction(w, s.console.GetCities(r.Context(), stateID))
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Message: "404 - Page Not Found"})
	}
}

func (s *Server) MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Message: http.StatusText(http.StatusMethodNotAllowed)})
	}
}
