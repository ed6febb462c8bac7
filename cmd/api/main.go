// Package main implements the Bunfree guide API server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bunfree-ai/bunfree-engine/engine/classify"
	"github.com/bunfree-ai/bunfree-engine/engine/domain"
	"github.com/bunfree-ai/bunfree-engine/engine/events"
	"github.com/bunfree-ai/bunfree-engine/engine/metrics"
	"github.com/bunfree-ai/bunfree-engine/engine/pipeline"
	"github.com/bunfree-ai/bunfree-engine/engine/respond"
	"github.com/bunfree-ai/bunfree-engine/engine/search"
	"github.com/bunfree-ai/bunfree-engine/engine/semantic"
	"github.com/bunfree-ai/bunfree-engine/pkg/llm"
	"github.com/bunfree-ai/bunfree-engine/pkg/mid"
)

// Config holds all environment-based configuration.
type Config struct {
	Port            string
	QdrantURL       string
	QdrantAPIKey    string
	LLMAPIKey       string
	LLMBaseURL      string
	LLMModel        string
	LLMRPS          float64
	EmbedAPIKey     string
	EmbedBaseURL    string
	EmbedModel      string
	EmbedDimensions int
	NATSURL         string
	CORSOrigin      string
}

func loadConfig() (Config, error) {
	cfg := Config{
		Port:            envOr("PORT", "8080"),
		QdrantURL:       envOr("QDRANT_URL", "localhost:6334"),
		QdrantAPIKey:    os.Getenv("QDRANT_API_KEY"),
		LLMAPIKey:       os.Getenv("LLM_API_KEY"),
		LLMBaseURL:      os.Getenv("LLM_BASE_URL"),
		LLMModel:        envOr("LLM_MODEL", "gpt-4o-mini"),
		LLMRPS:          5,
		EmbedAPIKey:     os.Getenv("EMBEDDING_API_KEY"),
		EmbedBaseURL:    os.Getenv("EMBEDDING_BASE_URL"),
		EmbedModel:      envOr("EMBEDDING_MODEL", "text-embedding-3-large"),
		EmbedDimensions: 2048,
		NATSURL:         os.Getenv("NATS_URL"),
		CORSOrigin:      envOr("CORS_ORIGIN", "*"),
	}
	if cfg.LLMAPIKey == "" {
		return cfg, fmt.Errorf("LLM_API_KEY is required")
	}
	if cfg.EmbedAPIKey == "" {
		return cfg, fmt.Errorf("EMBEDDING_API_KEY is required")
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Connect to Qdrant ---
	store, err := semantic.New(cfg.QdrantURL, cfg.QdrantAPIKey)
	if err != nil {
		return fmt.Errorf("qdrant connect: %w", err)
	}
	defer store.Close()

	// --- Model clients ---
	chatClient := llm.NewChatClient(llm.ChatConfig{
		APIKey:  cfg.LLMAPIKey,
		BaseURL: cfg.LLMBaseURL,
		Model:   cfg.LLMModel,
		RPS:     cfg.LLMRPS,
	}, logger)
	embedClient := llm.NewEmbedClient(llm.EmbedConfig{
		APIKey:     cfg.EmbedAPIKey,
		BaseURL:    cfg.EmbedBaseURL,
		Model:      cfg.EmbedModel,
		Dimensions: cfg.EmbedDimensions,
	})

	// --- Optional NATS turn events ---
	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL, nats.Name("bunfree-api"))
		if err != nil {
			return fmt.Errorf("nats connect: %w", err)
		}
		defer nc.Close()
		publisher = events.New(nc, logger)
	}

	// --- Build the query pipeline ---
	pipe := pipeline.New(
		classify.New(chatClient, logger),
		search.New(store, embedClient, logger),
		respond.New(chatClient, logger),
		publisher,
		logger,
	)

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	metrics.Register(registry)

	// --- Build HTTP server ---
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("POST /{$}", handleChatPost(pipe))
	mux.HandleFunc("GET /{$}", handleChatGet(pipe))

	handler := mid.Chain(mux,
		mid.Recover(logger),
		mid.RequestID(),
		mid.Logger(logger),
		mid.CORS(cfg.CORSOrigin),
		mid.OTel("bunfree-api"),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful shutdown ---
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

// --- Handlers ---

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ChatRequest is the JSON body for POST /.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse wraps one chat turn for the client.
type ChatResponse struct {
	Response domain.Response `json:"response"`
}

func handleChatPost(pipe *pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Message == "" {
			http.Error(w, `{"error":"message is required"}`, http.StatusBadRequest)
			return
		}
		writeResponse(w, pipe.Respond(r.Context(), req.Message))
	}
}

func handleChatGet(pipe *pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		message := r.URL.Query().Get("message")
		if message == "" {
			http.Error(w, `{"error":"message is required"}`, http.StatusBadRequest)
			return
		}
		writeResponse(w, pipe.Respond(r.Context(), message))
	}
}

func writeResponse(w http.ResponseWriter, resp domain.Response) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ChatResponse{Response: resp})
}
