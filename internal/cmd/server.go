package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/cors"

	"github.com/joelcondh/burien-soccer/internal/gateway"
	"github.com/joelcondh/burien-soccer/internal/httpapi"
)

func setupServer(services *Services, cm *gateway.ConnectionManager, jwtSecret string) *http.Server {
	router := httpapi.New(services.Profiles, services.Roster, cm, jwtSecret)

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins:   strings.Split(getEnv("CORS_ORIGINS", "*"), ","),
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return &http.Server{
		Addr:    fmt.Sprintf(":%s", getEnv("PORT", "8080")),
		Handler: c.Handler(router),
	}
}
