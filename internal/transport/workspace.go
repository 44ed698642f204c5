package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rpggio/stratdesk/internal/domain/client"
	"github.com/rpggio/stratdesk/internal/domain/conversation"
	"github.com/rpggio/stratdesk/internal/domain/project"
)

// Request bodies decode into the domain request types; field names match the
// camelCase JSON of the models case-insensitively.

func (s *Server) workspaceRoutes(r chi.Router) {
	r.Route("/clients", func(r chi.Router) {
		r.Get("/", s.handleListClients)
		r.Post("/", s.handleCreateClient)
		r.Get("/{id}", s.handleGetClient)
		r.Patch("/{id}", s.handleUpdateClient)
		r.Delete("/{id}", s.handleDeleteClient)
		r.Get("/{id}/projects", s.handleListClientProjects)
	})
	r.Route("/projects", func(r chi.Router) {
		r.Get("/", s.handleListProjects)
		r.Post("/", s.handleCreateProject)
		r.Get("/{id}", s.handleGetProject)
		r.Patch("/{id}", s.handleUpdateProject)
		r.Delete("/{id}", s.handleDeleteProject)
		r.Get("/{id}/conversations", s.handleListProjectConversations)
	})
	r.Route("/conversations", func(r chi.Router) {
		r.Get("/", s.handleListConversations)
		r.Post("/", s.handleCreateConversation)
		r.Get("/{id}", s.handleGetConversation)
		r.Patch("/{id}", s.handleUpdateConversation)
		r.Delete("/{id}", s.handleDeleteConversation)
		r.Get("/{id}/messages", s.handleHistory)
		r.Post("/{id}/messages", s.handleAddMessage)
		r.Post("/{id}/exchanges", s.handleAddExchange)
	})
}

// Clients

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Clients.List(r.Context())
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Clients.Get(r.Context(), chi.URLParam(r, "id"))
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[client.CreateRequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	v, err := s.svc.Clients.Create(r.Context(), req)
	s.reply(w, http.StatusCreated, v, err)
}

func (s *Server) handleUpdateClient(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[client.UpdateRequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	v, err := s.svc.Clients.Update(r.Context(), chi.URLParam(r, "id"), req)
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
	s.replyDeleted(w, s.svc.Clients.Delete(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) handleListClientProjects(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Projects.ListByClient(r.Context(), chi.URLParam(r, "id"))
	s.reply(w, http.StatusOK, v, err)
}

// Projects

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	if clientID := r.URL.Query().Get("clientId"); clientID != "" {
		v, err := s.svc.Projects.ListByClient(r.Context(), clientID)
		s.reply(w, http.StatusOK, v, err)
		return
	}
	v, err := s.svc.Projects.List(r.Context())
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Projects.Get(r.Context(), chi.URLParam(r, "id"))
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[project.CreateRequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	v, err := s.svc.Projects.Create(r.Context(), req)
	s.reply(w, http.StatusCreated, v, err)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[project.UpdateRequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	v, err := s.svc.Projects.Update(r.Context(), chi.URLParam(r, "id"), req)
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	s.replyDeleted(w, s.svc.Projects.Delete(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) handleListProjectConversations(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Conversations.ListByProject(r.Context(), chi.URLParam(r, "id"))
	s.reply(w, http.StatusOK, v, err)
}

// Conversations

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	if projectID := r.URL.Query().Get("projectId"); projectID != "" {
		v, err := s.svc.Conversations.ListByProject(r.Context(), projectID)
		s.reply(w, http.StatusOK, v, err)
		return
	}
	v, err := s.svc.Conversations.List(r.Context())
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Conversations.Get(r.Context(), chi.URLParam(r, "id"))
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[conversation.CreateRequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	v, err := s.svc.StartConversation(r.Context(), req, s.logger)
	s.reply(w, http.StatusCreated, v, err)
}

func (s *Server) handleUpdateConversation(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[conversation.UpdateRequest](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	v, err := s.svc.Conversations.Update(r.Context(), chi.URLParam(r, "id"), req)
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	s.replyDeleted(w, s.svc.Conversations.Delete(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Conversations.History(r.Context(), chi.URLParam(r, "id"))
	s.reply(w, http.StatusOK, v, err)
}

func (s *Server) handleAddMessage(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[conversation.NewMessage](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	v, err := s.svc.Conversations.AddMessage(r.Context(), chi.URLParam(r, "id"), req)
	s.reply(w, http.StatusCreated, v, err)
}

type exchangeBody struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

func (s *Server) handleAddExchange(w http.ResponseWriter, r *http.Request) {
	req, err := decodeBody[exchangeBody](r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	v, err := s.svc.Conversations.AddExchange(r.Context(), chi.URLParam(r, "id"), req.User, req.Assistant)
	s.reply(w, http.StatusCreated, v, err)
}
