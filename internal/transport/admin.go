package transport

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rpggio/stratdesk/internal/domain/agent"
	"github.com/rpggio/stratdesk/internal/domain/billing"
	"github.com/rpggio/stratdesk/internal/domain/pricing"
	"github.com/rpggio/stratdesk/internal/domain/settings"
)

func (s *Server) adminRoutes(r chi.Router) {
	r.Route("/packages", func(r chi.Router) {
		r.Get("/", s.handleListPackages)
		r.Post("/", s.handleCreatePackage)
		r.Get("/{id}", s.handleGetPackage)
		r.Patch("/{id}", s.handleUpdatePackage)
		r.Delete("/{id}", s.handleDeletePackage)
	})
	r.Route("/billing", func(r chi.Router) {
		r.Get("/", s.handleListBilling)
		r.Post("/", s.handleCreateBilling)
		r.Get("/{id}", s.handleGetBilling)
		r.Patch("/{id}", s.handleUpdateBilling)
		r.Delete("/{id}", s.handleDeleteBilling)
	})
	r.Route("/agents", func(r chi.Router) {
		r.Get("/", s.handleListAgents)
		r.Post("/", s.handleCreateAgent)
		r.Get("/{id}", s.handleGetAgent)
		r.Patch("/{id}", s.handleUpdateAgent)
		r.Delete("/{id}", s.handleDeleteAgent)
		r.Post("/{id}/usage", s.handleIncrementUsage)
	})
	r.Get("/settings", s.handleGetSettings)
	r.Patch("/settings", s.handleUpdateSettings)
}

func activeOnly(r *http.Request) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get("active"))
	return v
}

// Packages

func (s *Server) handleListPackages(w http.ResponseWriter, r *http.Request) {
	if activeOnly(r) {
		v, err := s.svc.Packages.ListActive(r.Context())
		s.reply(w, http.StatusOK, v, err)
		return
	}
	v, err := s.svc.Packages.List(r.Context())
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleGetPackage(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Packages.Get(r.Context(), chi.URLParam(r, "id"))
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleCreatePackage(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[pricing.CreateRequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	v, err := s.svc.Packages.Create(r.Context(), req)
	s.reply(w, http.StatusCreated, v, err)
}

func (s *Server) handleUpdatePackage(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[pricing.UpdateRequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	v, err := s.svc.Packages.Update(r.Context(), chi.URLParam(r, "id"), req)
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleDeletePackage(w http.ResponseWriter, r *http.Request) {
	s.replyDeleted(w, s.svc.Packages.Delete(r.Context(), chi.URLParam(r, "id")))
}

// Billing

func (s *Server) handleListBilling(w http.ResponseWriter, r *http.Request) {
	if clientID := r.URL.Query().Get("clientId"); clientID != "" {
		v, err := s.svc.Billing.ListByClient(r.Context(), clientID)
		s.reply(w, http.StatusOK, v, err)
		return
	}
	v, err := s.svc.Billing.List(r.Context())
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleGetBilling(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Billing.Get(r.Context(), chi.URLParam(r, "id"))
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleCreateBilling(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[billing.CreateRequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	v, err := s.svc.Billing.Create(r.Context(), req)
	s.reply(w, http.StatusCreated, v, err)
}

func (s *Server) handleUpdateBilling(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[billing.UpdateRequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	v, err := s.svc.Billing.Update(r.Context(), chi.URLParam(r, "id"), req)
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleDeleteBilling(w http.ResponseWriter, r *http.Request) {
	s.replyDeleted(w, s.svc.Billing.Delete(r.Context(), chi.URLParam(r, "id")))
}

// Agents

func (s *Server) handleListAgents(w http.ResponseWriter, r *http.Request) {
	if activeOnly(r) {
		v, err := s.svc.Agents.ListActive(r.Context())
		s.reply(w, http.StatusOK, v, err)
		return
	}
	v, err := s.svc.Agents.List(r.Context())
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleGetAgent(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Agents.Get(r.Context(), chi.URLParam(r, "id"))
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleCreateAgent(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[agent.CreateRequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	v, err := s.svc.Agents.Create(r.Context(), req)
	s.reply(w, http.StatusCreated, v, err)
}

func (s *Server) handleUpdateAgent(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[agent.UpdateRequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	v, err := s.svc.Agents.Update(r.Context(), chi.URLParam(r, "id"), req)
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleDeleteAgent(w http.ResponseWriter, r *http.Request) {
	s.replyDeleted(w, s.svc.Agents.Delete(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) handleIncrementUsage(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Agents.IncrementUsage(r.Context(), chi.URLParam(r, "id"))
	s.reply(w, http.StatusOK, v, err)
}

// Settings

// settingsBody uses the stored JSON names, which differ from the Go field names.
type settingsBody struct {
	SiteName             *string  `json:"siteName"`
	SupportEmail         *string  `json:"supportEmail"`
	MaxUploadSize        *int     `json:"maxUploadSize"`
	AllowedFileTypes     []string `json:"allowedFileTypes"`
	MaintenanceMode      *bool    `json:"maintenanceMode"`
	StripePublishableKey *string  `json:"stripePublishableKey"`
	StripeSecretKey      *string  `json:"stripeSecretKey"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Settings.Get(r.Context())
	s.reply(w, http.StatusOK, v.Redacted(), err)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody[settingsBody](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	v, err := s.svc.Settings.Update(r.Context(), settings.UpdateRequest{
		SiteName:             body.SiteName,
		SupportEmail:         body.SupportEmail,
		MaxUploadSizeMB:      body.MaxUploadSize,
		AllowedFileTypes:     body.AllowedFileTypes,
		MaintenanceMode:      body.MaintenanceMode,
		StripePublishableKey: body.StripePublishableKey,
		StripeSecretKey:      body.StripeSecretKey,
	})
	s.reply(w, http.StatusOK, v.Redacted(), err)
}
