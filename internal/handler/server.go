// Package handler implements the HTTP handlers for the travel planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (auth.go, itinerary.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/internal/destinations"
	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/events"
	"github.com/pkordes/travel-planner/internal/export"
	"github.com/pkordes/travel-planner/internal/itinerary"
	"github.com/pkordes/travel-planner/internal/service"
)

// AuthServicer defines the registry and session operations the auth handlers
// depend on. Defining the interface here (in the consumer package) lets
// handler tests inject a mock without touching storage.
type AuthServicer interface {
	Register(ctx context.Context, r service.Registration) (domain.User, domain.Session, error)
	Login(ctx context.Context, c service.Credentials) (domain.Session, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (domain.Session, bool, error)
}

// ChecklistServicer defines the checklist operations.
type ChecklistServicer interface {
	Load(ctx context.Context) (domain.Checklist, error)
	Toggle(ctx context.Context, category, text string) (domain.Checklist, error)
	AddItem(ctx context.Context, category, text string) (domain.Checklist, error)
	DeleteItem(ctx context.Context, category, text string) (domain.Checklist, error)
	AddCategory(ctx context.Context, name string) (domain.Checklist, error)
	Reset(ctx context.Context) (domain.Checklist, error)
}

// ItineraryServicer defines the trip, day and activity operations.
type ItineraryServicer interface {
	Get(ctx context.Context) (domain.Trip, bool, error)
	Create(ctx context.Context, name string, numDays int, start time.Time) (domain.Trip, error)
	Reschedule(ctx context.Context, name string, start time.Time) (domain.Trip, error)
	AddDay(ctx context.Context) (domain.Trip, error)
	RemoveDay(ctx context.Context, dayID uuid.UUID, confirm bool) (domain.Trip, error)
	Draft(ctx context.Context, dayID uuid.UUID, activityID *uuid.UUID) (itinerary.ActivityInput, error)
	SaveActivity(ctx context.Context, dayID uuid.UUID, activityID *uuid.UUID, in itinerary.ActivityInput) (domain.Trip, error)
	RemoveActivity(ctx context.Context, dayID, activityID uuid.UUID) (domain.Trip, error)
	ToggleActivity(ctx context.Context, dayID, activityID uuid.UUID) (domain.Trip, error)
	ClearAll(ctx context.Context, confirm bool) (domain.Trip, int, error)
	Reset(ctx context.Context, confirm bool) error
	Import(ctx context.Context, data []byte) (domain.Trip, error)
	Export(ctx context.Context, format string) (export.Document, error)
}

// CountdownServicer defines the next-trip countdown operations.
type CountdownServicer interface {
	Next(ctx context.Context, now time.Time) (domain.Countdown, error)
	Set(ctx context.Context, date time.Time, name string) (domain.NextTrip, error)
	Clear(ctx context.Context) error
}

// WishlistServicer defines the wishlist operations.
type WishlistServicer interface {
	List(ctx context.Context) ([]domain.Destination, error)
	Add(ctx context.Context, id int) ([]domain.Destination, error)
}

// Catalog is the read-only destination catalog.
type Catalog interface {
	Get(id int) (domain.Destination, error)
	Query(query string, f destinations.Filter, p domain.PaginationParams) destinations.Page
}

// Subscriber is the read side of the storage-change bus.
type Subscriber interface {
	Subscribe(keys ...string) (<-chan events.Change, func())
}

// Deps carries every dependency of Server. Nil fields leave their routes
// unregistered.
type Deps struct {
	Auth         AuthServicer
	Checklist    ChecklistServicer
	Itinerary    ItineraryServicer
	Countdown    CountdownServicer
	Wishlist     WishlistServicer
	Destinations Catalog
	Events       Subscriber
	OpenAPI      []byte
	Log          *slog.Logger
	Now          func() time.Time
}

// Server holds the dependencies of all API handlers.
type Server struct {
	auth         AuthServicer
	checklist    ChecklistServicer
	itinerary    ItineraryServicer
	countdown    CountdownServicer
	wishlist     WishlistServicer
	destinations Catalog
	events       Subscriber
	openAPI      []byte
	log          *slog.Logger
	now          func() time.Time
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		auth:         d.Auth,
		checklist:    d.Checklist,
		itinerary:    d.Itinerary,
		countdown:    d.Countdown,
		wishlist:     d.Wishlist,
		destinations: d.Destinations,
		events:       d.Events,
		openAPI:      d.OpenAPI,
		log:          log,
		now:          now,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Deps{})
}

// Routes returns a chi router serving every configured endpoint.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	if s.openAPI != nil {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}
	if s.events != nil {
		r.Get("/events", s.StreamEvents)
	}

	if s.auth != nil {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.Register)
			r.Post("/login", s.Login)
			r.Post("/logout", s.Logout)
			r.Get("/session", s.GetSession)
			r.Post("/password-strength", s.PasswordStrength)
		})
	}

	if s.checklist != nil {
		r.Route("/checklist", func(r chi.Router) {
			r.Get("/", s.GetChecklist)
			r.Post("/categories", s.AddChecklistCategory)
			r.Post("/items", s.AddChecklistItem)
			r.Post("/items/toggle", s.ToggleChecklistItem)
			r.Post("/items/remove", s.RemoveChecklistItem)
			r.Post("/reset", s.ResetChecklist)
		})
	}

	if s.itinerary != nil {
		r.Route("/itinerary", func(r chi.Router) {
			r.Get("/", s.GetItinerary)
			r.Post("/", s.CreateItinerary)
			r.Put("/", s.RescheduleItinerary)
			r.Delete("/", s.ResetItinerary)
			r.Post("/import", s.ImportItinerary)
			r.Post("/clear", s.ClearItinerary)
			r.Get("/export", s.ExportItinerary)
			r.Post("/days", s.AddDay)
			r.Route("/days/{dayID}", func(r chi.Router) {
				r.Delete("/", s.RemoveDay)
				r.Get("/draft", s.GetActivityDraft)
				r.Post("/activities", s.AddActivity)
				r.Put("/activities/{activityID}", s.UpdateActivity)
				r.Delete("/activities/{activityID}", s.RemoveActivity)
				r.Post("/activities/{activityID}/toggle", s.ToggleActivity)
			})
		})
	}

	if s.countdown != nil {
		r.Get("/countdown", s.GetCountdown)
		r.Put("/countdown", s.SetCountdown)
		r.Delete("/countdown", s.ClearCountdown)
	}

	r.Post("/calculator", s.Calculate)
	r.Get("/calculator/defaults", s.GetCalculatorDefaults)

	if s.destinations != nil {
		r.Get("/destinations", s.ListDestinations)
		r.Get("/destinations/{id}", s.GetDestination)
	}
	if s.wishlist != nil {
		r.Get("/wishlist", s.GetWishlist)
		r.Post("/wishlist", s.AddToWishlist)
	}
	return r
}
