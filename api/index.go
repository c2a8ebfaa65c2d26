package handler

import (
	"net/http"
	"shareit/config"
	"shareit/di"
	"shareit/shared/logger"
	transport "shareit/transport/http"
	"sync"
)

var (
	server *transport.HTTP
	once   sync.Once
)

// Handler is the serverless entry point; the dependency graph is built on the first request.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
