package server

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bensuskins/habit-hub/internal/clock"
	"github.com/bensuskins/habit-hub/internal/config"
	"github.com/bensuskins/habit-hub/internal/handlers"
	"github.com/bensuskins/habit-hub/internal/middleware"
	"github.com/bensuskins/habit-hub/internal/repository"
	"github.com/bensuskins/habit-hub/internal/services"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	router *chi.Mux
	config config.Config
}

func New(
	database *sql.DB,
	cfg config.Config,
	clock clock.Clock,
	authService *services.AuthService,
	accountService *services.AccountService,
	avatarStore services.AvatarStore,
) *Server {
	userRepo := repository.NewUserRepository(database)
	taskRepo := repository.NewTaskRepository(database)
	goalRepo := repository.NewGoalRepository(database)
	routineRepo := repository.NewRoutineRepository(database)
	tokenRepo := repository.NewAPITokenRepository(database)

	taskService := services.NewTaskService(taskRepo, clock)
	goalService := services.NewGoalService(goalRepo)
	routineService := services.NewRoutineService(database, clock)
	achievementService := services.NewAchievementService(taskRepo, goalRepo, routineRepo)
	searchService := services.NewSearchService(taskRepo, goalRepo, routineRepo)
	avatarService := services.NewAvatarService(avatarStore, userRepo, clock)
	calendarService := services.NewCalendarService(taskRepo, routineRepo, clock)

	authHandler := handlers.NewAuthHandler(authService, accountService)
	userHandler := handlers.NewUserHandler(accountService, avatarService, authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	goalHandler := handlers.NewGoalHandler(goalService)
	routineHandler := handlers.NewRoutineHandler(routineService)
	achievementHandler := handlers.NewAchievementHandler(achievementService)
	searchHandler := handlers.NewSearchHandler(searchService)
	dashboardHandler := handlers.NewDashboardHandler(taskRepo, goalRepo, routineService, achievementService)
	tokenHandler := handlers.NewTokenHandler(tokenRepo, cfg.BaseURL)
	icalHandler := handlers.NewICalHandler(authService, calendarService)

	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Compress(5))

	if local, ok := avatarStore.(*services.LocalAvatarStore); ok {
		router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(local.Directory()))))
	}

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Get("/login", authHandler.LoginPage)
	router.Get("/auth/callback", authHandler.Callback)
	router.Post("/logout", authHandler.Logout)
	router.Post("/api/register", authHandler.Register)
	router.Post("/api/login", authHandler.Login)

	router.Get("/ical", icalHandler.Feed)

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAuth(authService))

		r.Get("/dashboard", dashboardHandler.Dashboard)

		r.Get("/tasks", taskHandler.List)
		r.Post("/tasks", taskHandler.Create)
		r.Get("/tasks/{id}", taskHandler.Get)
		r.Patch("/tasks/{id}", taskHandler.Update)
		r.Delete("/tasks/{id}", taskHandler.Delete)

		r.Get("/goals", goalHandler.List)
		r.Post("/goals", goalHandler.Create)
		r.Get("/goals/{id}", goalHandler.Get)
		r.Patch("/goals/{id}", goalHandler.Update)
		r.Delete("/goals/{id}", goalHandler.Delete)

		r.Get("/routines", routineHandler.List)
		r.Post("/routines", routineHandler.Create)
		r.Get("/routines/{id}", routineHandler.Get)
		r.Patch("/routines/{id}", routineHandler.Update)
		r.Delete("/routines/{id}", routineHandler.Delete)
		r.Post("/routines/{id}/log", routineHandler.Log)

		r.Get("/achievements", achievementHandler.List)
		r.Get("/search", searchHandler.Search)

		r.Get("/user", userHandler.Me)
		r.Delete("/user", userHandler.Delete)
		r.Get("/user/settings", userHandler.Settings)
		r.Patch("/user/settings", userHandler.UpdateSettings)
		r.Post("/user/avatar", userHandler.UploadAvatar)

		r.Get("/tokens", tokenHandler.List)
		r.Post("/tokens", tokenHandler.Create)
		r.Delete("/tokens/{id}", tokenHandler.Delete)
	})

	server := &Server{
		router: router,
		config: cfg,
	}

	return server
}

func (server *Server) Handler() http.Handler {
	return server.router
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (server *Server) Start(ctx context.Context) error {
	address := ":" + server.config.Port
	httpServer := &http.Server{Addr: address, Handler: server.router}

	errs := make(chan error, 1)
	go func() {
		slog.Info("starting server", "address", address)
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
