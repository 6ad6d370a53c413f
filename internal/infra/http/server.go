package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"daily-chronicle-bot/internal/infra/logging"
)

// webhookErrorBody is the fixed diagnostic returned for any malformed or
// failing webhook request.
const webhookErrorBody = "This endpoint is meant for bot and telegram communication"

// Dispatcher feeds a decoded update into the bot's update pipeline.
type Dispatcher interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update) error
}

// Server is the transport shim in front of the dispatcher: it parses
// serialized chat updates from the webhook body and translates failures
// into the HTTP contract.
type Server struct {
	dispatcher  Dispatcher
	webhookPath string
	log         *zerolog.Logger
	server      *http.Server
}

func NewServer(dispatcher Dispatcher, webhookPath string, logger *zerolog.Logger) *Server {
	if webhookPath == "" {
		webhookPath = "/webhook"
	}
	return &Server{
		dispatcher:  dispatcher,
		webhookPath: webhookPath,
		log:         logger,
	}
}

// Router builds the chi router with the webhook, health and metrics routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(TraceID(), RequestLog(s.log), Recover(s.log))

	r.Post(s.webhookPath, s.handleWebhook)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

func (s *Server) Start(port int) error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Router(),
	}
	s.log.Info().Str("addr", s.server.Addr).Str("webhook_path", s.webhookPath).Msg("http server listening")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logging.With(ctx, s.log).Error().Err(err).Msg("webhook body parse failed")
		s.clientError(w)
		return
	}
	if err := s.dispatcher.HandleUpdate(ctx, update); err != nil {
		logging.With(ctx, s.log).Error().Err(err).Msg("webhook dispatch failed")
		s.clientError(w)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) clientError(w http.ResponseWriter) {
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write([]byte(webhookErrorBody))
}
