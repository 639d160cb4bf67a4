package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/usecase"
	"github.com/mohamed-gudle/funder-portal-sub000/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	authUC AuthUseCase
}

type Options func(*Server)

func WithAuth(authUC AuthUseCase) Options {
	return func(s *Server) {
		s.authUC = authUC
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.authUC == nil {
		s.authUC = uc.Auth
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK")) //nolint:errcheck
	})

	// Auth endpoints sit outside the auth gate
	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/login", authLoginHandler(s.authUC))
		r.Get("/callback", authCallbackHandler(s.authUC))
		r.Post("/logout", authLogoutHandler(s.authUC))
		r.With(authMiddleware(s.authUC)).Get("/me", authMeHandler())
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware(s.authUC))

		r.Route("/calls", func(r chi.Router) {
			r.Get("/", listCallsHandler(uc.Call))
			r.Post("/", createCallHandler(uc.Call))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", getCallHandler(uc.Call))
				r.Put("/", updateCallHandler(uc.Call))
				r.Patch("/", updateCallHandler(uc.Call))
				r.Delete("/", deleteCallHandler(uc.Call))
				r.Post("/notes", addCallNoteHandler(uc.Call))
				r.Post("/documents", attachCallDocumentHandler(uc.Call, uc.Activity))
			})
		})

		r.Route("/engagements", func(r chi.Router) {
			r.Get("/", listEngagementsHandler(uc.Engagement))
			r.Post("/", createEngagementHandler(uc.Engagement))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", getEngagementHandler(uc.Engagement))
				r.Put("/", updateEngagementHandler(uc.Engagement))
				r.Patch("/", updateEngagementHandler(uc.Engagement))
				r.Delete("/", deleteEngagementHandler(uc.Engagement))
				r.Post("/notes", addEngagementNoteHandler(uc.Engagement))
				r.Post("/documents", attachEngagementDocumentHandler(uc.Engagement, uc.Activity))
			})
		})

		r.Route("/members", func(r chi.Router) {
			r.Get("/", listMembersHandler(uc.Member))
			r.Post("/", createMemberHandler(uc.Member))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", getMemberHandler(uc.Member))
				r.Put("/", updateMemberHandler(uc.Member))
				r.Patch("/", updateMemberHandler(uc.Member))
				r.Delete("/", deleteMemberHandler(uc.Member))
			})
		})

		r.Route("/activities", func(r chi.Router) {
			r.Get("/", listActivitiesHandler(uc.Activity))
			r.Post("/", createActivityHandler(uc.Activity))
			r.Get("/{id}", getActivityHandler(uc.Activity))
		})

		r.Route("/knowledge", func(r chi.Router) {
			r.Get("/", listKnowledgeHandler(uc.Knowledge))
			r.Post("/", uploadKnowledgeHandler(uc.Knowledge))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", getKnowledgeHandler(uc.Knowledge))
				r.Get("/download", downloadKnowledgeHandler(uc.Knowledge))
				r.Delete("/", deleteKnowledgeHandler(uc.Knowledge))
			})
		})

		r.Route("/assist/sessions", func(r chi.Router) {
			r.Get("/", listAssistSessionsHandler(uc.Assist))
			r.Post("/", createAssistSessionHandler(uc.Assist))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", getAssistSessionHandler(uc.Assist))
				r.Get("/messages", listAssistMessagesHandler(uc.Assist))
				r.Post("/messages", assistChatHandler(uc.Assist))
			})
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
