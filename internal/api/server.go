package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/mofasa/internal/factors"
	"github.com/MikeSquared-Agency/mofasa/internal/processor"
	"github.com/MikeSquared-Agency/mofasa/internal/questions"
	"github.com/MikeSquared-Agency/mofasa/internal/store"
)

type Server struct {
	router  *chi.Mux
	port    int
	store   *store.Store
	catalog *questions.Catalog
	tagger  *factors.Tagger
	proc    *processor.Processor
	logger  *slog.Logger
}

func NewServer(port int, apiToken string, st *store.Store, catalog *questions.Catalog, proc *processor.Processor, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:  router,
		port:    port,
		store:   st,
		catalog: catalog,
		tagger:  factors.DefaultTagger(),
		proc:    proc,
		logger:  logger,
	}

	router.Get("/health", s.health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(apiToken))

		r.Get("/factors", s.listFactors)
		r.Post("/factors/parse", s.parseFactors)
		r.Get("/questions", s.listQuestions)

		r.Get("/projects", s.listProjects)
		r.Post("/projects", s.createProject)
		r.Route("/projects/{projectID}", func(r chi.Router) {
			r.Get("/", s.getProject)
			r.Delete("/", s.deleteProject)
			r.Post("/participants", s.addParticipant)
			r.Delete("/participants/{participantID}", s.removeParticipant)
			r.Post("/scopes", s.addScope)
			r.Put("/questions/{questionID}", s.overrideQuestion)
			r.Put("/questions/{questionID}/enabled", s.setQuestionEnabled)

			r.Route("/scopes/{scope}", func(r chi.Router) {
				r.Post("/rules", s.addRule)
				r.Delete("/rules/{rule}", s.deleteRule)
				r.Put("/rules/{rule}/undesirable", s.markUndesirable)
				r.Put("/rules/{rule}/redesign", s.setRedesign)
				r.Put("/design", s.setSituationDesign)
				r.Get("/tally", s.tally)

				r.Route("/participants/{participantID}", func(r chi.Router) {
					r.Put("/interview", s.setInterview)
					r.Put("/answers", s.setAnswer)
					r.Put("/rules", s.selectRules)
					r.Put("/decisions/{rule}", s.setDecision)
					r.Post("/extract", s.extract)
					r.Post("/summary", s.summarize)
				})
			})
		})
	})

	return s
}

// Handler exposes the router for embedding and tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
