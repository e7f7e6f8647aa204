package server

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/eskrenkovic/trivia-lobby-go/internal/config"
	"github.com/eskrenkovic/trivia-lobby-go/internal/modules/core"
	gamesession "github.com/eskrenkovic/trivia-lobby-go/internal/modules/game-session"
	gamesessioncommands "github.com/eskrenkovic/trivia-lobby-go/internal/modules/game-session/commands"
	gamesessionqueries "github.com/eskrenkovic/trivia-lobby-go/internal/modules/game-session/queries"
	"github.com/eskrenkovic/trivia-lobby-go/internal/modules/realtime"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/migrate-go"
	"github.com/go-chi/chi"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

type Server interface {
	Start() error
	Stop() error
}

var _ Server = &HTTPServer{}

// HTTPServer acts as the composition root for the application.
type HTTPServer struct {
	server *http.Server
}

func NewHTTPServer(config config.Config) (Server, error) {
	baseCtx := context.Background()

	core.SetLogger(config.Logger)

	mux := chi.NewRouter()

	server := http.Server{
		Addr:    net.JoinHostPort("", fmt.Sprintf("%d", config.Port)),
		Handler: mux,
	}

	var repository gamesession.Repository
	if config.DatabaseURL != "" {
		db, err := sql.Open("postgres", config.DatabaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open database")
		}

		if err := migrate.Run(baseCtx, db, config.MigrationsPath); err != nil {
			return nil, errors.Wrap(err, "failed to run migrations")
		}

		repository = gamesession.NewPostgresRepository(db)
	} else {
		config.Logger.Info("no DATABASE_URL configured - using in-memory session store")
		repository = gamesession.NewInMemoryRepository()
	}

	requestLoggingBehavior := core.RequestLoggingBehavior{Logger: config.Logger}
	handlerErrorLoggingBehavior := core.HandlerErrorLoggingBehavior{Logger: config.Logger}
	requestValidationBehavior := core.RequestValidationBehavior{}

	mediator.RegisterPipelineBehavior(&requestLoggingBehavior)
	mediator.RegisterPipelineBehavior(&handlerErrorLoggingBehavior)
	mediator.RegisterPipelineBehavior(&requestValidationBehavior)

	service := realtime.NewService(config.Logger)
	locks := core.NewKeyedMutex()

	// handler registration

	createSessionHandler := gamesessioncommands.NewCreateSessionCommandHandler(repository, service)
	err := mediator.RegisterRequestHandler[gamesessioncommands.CreateSessionCommand, gamesession.GameSessionDTO](
		createSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	joinSessionHandler := gamesessioncommands.NewJoinSessionCommandHandler(repository, service, locks)
	err = mediator.RegisterRequestHandler[gamesessioncommands.JoinSessionCommand, gamesession.GameSessionDTO](
		joinSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	leaveSessionHandler := gamesessioncommands.NewLeaveSessionCommandHandler(repository, service, locks)
	err = mediator.RegisterRequestHandler[gamesessioncommands.LeaveSessionCommand, core.Unit](
		leaveSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	removePlayerHandler := gamesessioncommands.NewRemovePlayerCommandHandler(repository, service, locks)
	err = mediator.RegisterRequestHandler[gamesessioncommands.RemovePlayerCommand, core.Unit](
		removePlayerHandler,
	)
	if err != nil {
		return nil, err
	}

	renameSessionHandler := gamesessioncommands.NewRenameSessionCommandHandler(repository, service, locks)
	err = mediator.RegisterRequestHandler[gamesessioncommands.RenameSessionCommand, gamesession.GameSessionDTO](
		renameSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	addTopicHandler := gamesessioncommands.NewAddTopicCommandHandler(repository, service, locks)
	err = mediator.RegisterRequestHandler[gamesessioncommands.AddTopicCommand, gamesession.GameSessionDTO](
		addTopicHandler,
	)
	if err != nil {
		return nil, err
	}

	removeTopicHandler := gamesessioncommands.NewRemoveTopicCommandHandler(repository, service, locks)
	err = mediator.RegisterRequestHandler[gamesessioncommands.RemoveTopicCommand, gamesession.GameSessionDTO](
		removeTopicHandler,
	)
	if err != nil {
		return nil, err
	}

	renameTopicHandler := gamesessioncommands.NewRenameTopicCommandHandler(repository, service, locks)
	err = mediator.RegisterRequestHandler[gamesessioncommands.RenameTopicCommand, gamesession.GameSessionDTO](
		renameTopicHandler,
	)
	if err != nil {
		return nil, err
	}

	getSessionHandler := gamesessionqueries.NewGetSessionQueryHandler(repository)
	err = mediator.RegisterRequestHandler[gamesessionqueries.GetSessionQuery, gamesession.GameSessionDTO](
		getSessionHandler,
	)
	if err != nil {
		return nil, err
	}

	wsHandler := realtime.NewWebSocketHandler(service, config.Logger)

	r := router{mux: mux, middleware: []httpMiddleware{
		baseContextMiddleware(baseCtx),
		core.CorrelationIDHTTPMiddleware,
	}}

	// http

	r.register("POST", "/game-sessions", gamesessioncommands.HandleCreateSession)
	r.register("GET", "/game-sessions/{id}", gamesessionqueries.HandleGetSession)
	r.register("PUT", "/game-sessions/{id}", gamesessioncommands.HandleRenameSession)

	r.register("PUT", "/game-sessions/{id}/actions/join", gamesessioncommands.HandleJoinSession)
	r.register("PUT", "/game-sessions/{id}/actions/leave", gamesessioncommands.HandleLeaveSession)
	r.register("DELETE", "/game-sessions/{id}/players/{userId}", gamesessioncommands.HandleRemovePlayer)

	r.register("POST", "/game-sessions/{id}/topics", gamesessioncommands.HandleAddTopic)
	r.register("DELETE", "/game-sessions/{id}/topics/{topicId}", gamesessioncommands.HandleRemoveTopic)
	r.register("PUT", "/game-sessions/{id}/topics/{topicId}", gamesessioncommands.HandleRenameTopic)

	r.register("GET", "/game-sessions/{id}/ws", wsHandler.Handle)

	return &HTTPServer{server: &server}, nil
}

func (s *HTTPServer) Start() error {
	if err := s.server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}

	return nil
}

func (s *HTTPServer) Stop() error {
	return s.server.Close()
}

type httpMiddleware func(http.HandlerFunc) http.HandlerFunc

type router struct {
	mux        chi.Router
	middleware []httpMiddleware
}

func (r *router) register(method, pattern string, handler http.HandlerFunc, middleware ...httpMiddleware) {
	h := handler

	allMiddleware := append(r.middleware, middleware...)

	for i := len(allMiddleware) - 1; i >= 0; i-- {
		h = allMiddleware[i](h)
	}

	r.mux.MethodFunc(method, pattern, h)
}

func baseContextMiddleware(baseCtx context.Context) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			baseCtx := baseCtx

			if v, ok := ctx.Value(http.ServerContextKey).(*http.Server); ok {
				baseCtx = context.WithValue(baseCtx, http.ServerContextKey, v)
			}

			if v, ok := ctx.Value(http.LocalAddrContextKey).(net.Addr); ok {
				baseCtx = context.WithValue(baseCtx, http.LocalAddrContextKey, v)
			}

			if v, ok := ctx.Value(chi.RouteCtxKey).(*chi.Context); ok {
				baseCtx = context.WithValue(baseCtx, chi.RouteCtxKey, v)
			}

			next.ServeHTTP(w, r.WithContext(baseCtx))
		}
	}
}
