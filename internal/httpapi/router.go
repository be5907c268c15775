package httpapi

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds the studio HTTP surface.
func NewRouter(cfg Config) http.Handler {
	api := NewAPI(cfg)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	allowedOrigin := cfg.AllowedOrigin
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:4200"
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/wizard", func(r chi.Router) {
		r.Get("/state", api.HandleState)
		r.Put("/info", api.HandleCourseInfo)
		r.Post("/steps/next", api.HandleStepNext)
		r.Post("/steps/back", api.HandleStepBack)
		r.Post("/steps/{step}", api.HandleStepJump)
		r.Post("/lessons", api.HandleAddLesson)
		r.Post("/publish", api.HandlePublish)

		r.Post("/modal/content", api.HandleOpenContentModal)
		r.Post("/modal/question", api.HandleOpenQuestionModal)
		r.Post("/modal/event", api.HandleModalEvent)
		r.Delete("/modal", api.HandleCloseModal)

		r.Post("/contents", api.HandleSaveContent)
		r.Post("/quizzes", api.HandleSaveQuiz)

		r.Patch("/question", api.HandleQuestionDraft)
		r.Post("/question/options", api.HandleAddOption)
		r.Patch("/question/options/{optionID}", api.HandleUpdateOption)
		r.Delete("/question/options/{optionID}", api.HandleRemoveOption)
		r.Post("/question/save", api.HandleSaveQuestion)
	})

	r.Post("/handoff/target", api.HandleDeepLink)
	r.Get("/handoff/storymap", api.HandleStoryMap)

	r.Get("/courses", api.HandleCourses)
	r.Get("/courses/summary", api.HandleCourseSummary)

	r.Get("/events", api.HandleEvents)

	return r
}
