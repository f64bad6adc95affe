package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"magpie/constants"
	"magpie/routes/bots"
	"magpie/routes/list"
	"magpie/routes/packs"
	"magpie/routes/servers"
	"magpie/state"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/infinitybotlist/eureka/zapchi"
	"go.uber.org/zap"
)

type APIRouter interface {
	Routes(s *state.State, r *chi.Mux)
	Tag() (string, string)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// limit body to 10mb
		r.Body = http.MaxBytesReader(w, r.Body, 10*1024*1024)

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE")

		if r.Method == "OPTIONS" {
			w.Write([]byte{})
			return
		}

		w.Header().Set("Content-Type", "application/json")

		next.ServeHTTP(w, r)
	})
}

func main() {
	s := state.New(context.Background())

	if s.Config.Meta.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn: s.Config.Meta.SentryDSN,
		})

		if err != nil {
			s.Logger.Fatal("Failed to init sentry", zap.Error(err))
		}
	}

	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer,
		middleware.RealIP,
		middleware.CleanPath,
		corsMiddleware,
		zapchi.Logger(s.Logger, "api"),
		middleware.Timeout(30*time.Second),
	)

	routers := []APIRouter{
		// Use same order as routes folder
		bots.Router{},
		list.Router{},
		packs.Router{},
		servers.Router{},
	}

	for _, router := range routers {
		name, _ := router.Tag()

		if name == "" {
			panic("Router tag name cannot be empty")
		}

		router.Routes(s, r)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(constants.NotFoundPage))
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(constants.MethodNotAllowed))
	})

	port := s.Config.Meta.Port

	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	s.Logger.Info("Starting server", zap.String("port", port))

	err := http.ListenAndServe(port, r)

	if err != nil {
		s.Logger.Fatal("Failed to start server", zap.Error(err))
	}
}
