// Package api exposes the backend as a REST JSON surface and enforces
// per-route authorization via the auth middleware.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"culturepass/internal/analytics"
	"culturepass/internal/auth"
	"culturepass/internal/booking"
	"culturepass/internal/cpid"
	"culturepass/internal/logger"
	"culturepass/internal/store"
)

const serviceName = "culturepass-api"

type API struct {
	Store     *store.DB
	Booking   *booking.Service
	Auth      *auth.Service
	Registry  *cpid.Registry
	Analytics *analytics.Service
	Kafka     booking.Publisher
	Logger    *logger.Logger
	Version   string

	CookieSecure bool
}

func (a *API) Routes() chi.Router {
	sessionMw := &auth.Middleware{Auth: a.Auth, CookieSecure: a.CookieSecure}

	authHandler := &AuthHandler{Auth: a.Auth, Middleware: sessionMw, Logger: a.Logger}
	eventHandler := &EventHandler{Store: a.Store, Logger: a.Logger}
	communityHandler := &CommunityHandler{Store: a.Store, Kafka: a.Kafka, Logger: a.Logger}
	bookingHandler := &BookingHandler{Booking: a.Booking, Store: a.Store, Logger: a.Logger}
	cpidHandler := &CPIDHandler{Registry: a.Registry, Logger: a.Logger}
	adminHandler := &AdminHandler{Store: a.Store, Analytics: a.Analytics, Kafka: a.Kafka, Logger: a.Logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// --- Public Routes ---
		r.Get("/health", a.health)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/google", authHandler.LoginGoogle)

		r.Get("/events", eventHandler.List)
		r.Get("/events/{eventId}", eventHandler.Get)
		r.Get("/organisations", communityHandler.ListOrganisations)
		r.Get("/organisations/{orgId}", communityHandler.GetOrganisation)
		r.Get("/businesses", communityHandler.ListBusinesses)
		r.Get("/businesses/{businessId}", communityHandler.GetBusiness)
		r.Get("/artists", communityHandler.ListArtists)
		r.Get("/artists/{artistId}", communityHandler.GetArtist)
		r.Get("/perks", communityHandler.ListPerks)
		r.Get("/cpid/{cpid}", cpidHandler.Lookup)
		r.Get("/cpid/{cpid}/qr", cpidHandler.QR)

		// --- Session Routes ---
		r.Group(func(r chi.Router) {
			r.Use(sessionMw.RequireSession)

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.Me)

			r.Post("/events", eventHandler.Create)
			r.Put("/events/{eventId}", eventHandler.Update)
			r.Delete("/events/{eventId}", eventHandler.Delete)

			r.Post("/submit/{kind}", communityHandler.Submit)
			r.Post("/perks", communityHandler.CreatePerk)

			r.Post("/orders", bookingHandler.CreateOrder)
			r.Post("/memberships", bookingHandler.CreateMembership)
			r.Post("/users/save-event", bookingHandler.SaveEvent)
		})

		// --- Admin Routes ---
		r.Group(func(r chi.Router) {
			r.Use(sessionMw.RequireAdmin)

			r.Post("/admin/approve/{kind}/{id}", adminHandler.Approve)
			r.Post("/admin/reject/{kind}/{id}", adminHandler.Reject)
			r.Get("/admin/pending", adminHandler.ListPending)
			r.Get("/admin/stats", adminHandler.Stats)
			r.Post("/admin/promote/{userId}", adminHandler.Promote)
		})
	})

	return r
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": a.Version,
		"name":    serviceName,
	})
}
