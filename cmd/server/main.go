package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"rolodex/internal/assistant"
	anthropicprovider "rolodex/internal/assistant/providers/anthropic"
	loremprovider "rolodex/internal/assistant/providers/lorem"
	"rolodex/internal/assistant/tools"
	"rolodex/internal/auth"
	"rolodex/internal/capabilities"
	"rolodex/internal/config"
	"rolodex/internal/content"
	"rolodex/internal/handler"
	"rolodex/internal/middleware"
	"rolodex/internal/repository/postgres"
)

func registerProviders() {
	assistant.RegisterProvider("anthropic", func(cfg *config.Config) (assistant.ModelProvider, error) {
		return anthropicprovider.NewProvider(cfg.AnthropicAPIKey, cfg.DefaultModel, cfg.MaxTokens)
	})
	assistant.RegisterProvider("lorem", func(cfg *config.Config) (assistant.ModelProvider, error) {
		return loremprovider.NewProvider(), nil
	})
}

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.Debug {
		logFile, err := config.SetupLogFile("logs", 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verification is optional: without a JWKS URL the API runs open,
	// which is only sensible for local development.
	var jwtVerifier auth.JWTVerifier
	if cfg.JWKSURL != "" {
		verifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer verifier.Close()
		jwtVerifier = verifier
	} else {
		logger.Warn("JWKS_URL not set, authentication disabled")
	}

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	contactRepo := postgres.NewContactRepository(repoConfig)
	meetingRepo := postgres.NewMeetingRepository(repoConfig)
	noteRepo := postgres.NewNoteRepository(repoConfig)

	// Initialize capability registry
	capabilityRegistry, err := capabilities.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize capability registry: %v", err)
	}
	logger.Info("capability registry initialized")

	// Setup model provider
	registerProviders()
	provider, err := assistant.SelectProvider(cfg, capabilityRegistry)
	if err != nil {
		log.Fatalf("Failed to setup model provider: %v", err)
	}
	logger.Info("model provider ready", "provider", provider.Name(), "model", cfg.DefaultModel)

	// Assemble the assistant
	sanitizer := content.NewSanitizer()
	markdown := content.NewMarkdownConverter()
	noteEditor := tools.NewNoteEditor(noteRepo, sanitizer, logger)
	promptBuilder := assistant.NewPromptBuilder(cfg.HistoryTurns, markdown)
	loop := assistant.NewLoop(provider, noteEditor, promptBuilder, cfg.MaxIterations, logger)

	// Create handlers
	chatHandler := handler.NewChatHandler(loop, logger)
	noteHandler := handler.NewNoteHandler(noteRepo, sanitizer, logger)
	contactHandler := handler.NewContactHandler(contactRepo)
	meetingHandler := handler.NewMeetingHandler(meetingRepo)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Assistant routes
	mux.HandleFunc("POST /api/assistant/chat", chatHandler.Chat)

	// Note routes
	mux.HandleFunc("GET /api/notes", noteHandler.ListNotes)
	mux.HandleFunc("POST /api/notes", noteHandler.CreateNote)
	mux.HandleFunc("GET /api/notes/{id}", noteHandler.GetNote)
	mux.HandleFunc("PATCH /api/notes/{id}", noteHandler.UpdateNote)

	// Contact routes
	mux.HandleFunc("GET /api/contacts", contactHandler.ListContacts)
	mux.HandleFunc("GET /api/contacts/{id}", contactHandler.GetContact)

	// Meeting routes
	mux.HandleFunc("GET /api/meetings", meetingHandler.ListMeetings)
	mux.HandleFunc("GET /api/meetings/{id}", meetingHandler.GetMeeting)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	httpHandler = middleware.Auth(jwtVerifier, logger)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // assistant runs can span several model calls
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
