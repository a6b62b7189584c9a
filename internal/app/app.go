package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/electronix/assistant/internal/config"
	"github.com/electronix/assistant/internal/core"
	"github.com/electronix/assistant/internal/core/chatbot"
	db "github.com/electronix/assistant/internal/core/database"
	"github.com/electronix/assistant/internal/core/llm"
	objectclient "github.com/electronix/assistant/internal/core/object-client"
)

type App struct {
	DBClient     core.DbClient
	ObjectClient core.ObjectClient
	LLM          *llm.GeminiLLM
	Engine       *chatbot.Engine
	Server       *Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	dbClient, err := db.NewDatabaseClient(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info().Msg("database initialized and ready")

	objClient, err := objectclient.NewS3Client(appCtx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info().Msg("object client initialized and ready")

	llmProvider, err := llm.NewGeminiLLM(appCtx, cfg.AIAPIKey, cfg.GenModel)
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the llm provider: %w", err)
	}

	engine, err := chatbot.NewEngine(
		dbClient, dbClient, dbClient, dbClient, dbClient, llmProvider,
		chatbot.Config{
			StoreBaseURL: cfg.StoreBaseURL,
			LLMTimeout:   time.Duration(cfg.LLMTimeout) * time.Second,
			Logger:       logger.With().Str("component", "chatbot").Logger(),
		})
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the chat engine: %w", err)
	}

	server := NewServer(cfg, dbClient, objClient, engine, logger)

	return &App{
		DBClient:     dbClient,
		ObjectClient: objClient,
		LLM:          llmProvider,
		Engine:       engine,
		Server:       server,
	}, nil
}

func (a *App) Close() {
	if a.LLM != nil {
		_ = a.LLM.Close()
	}
	if a.DBClient != nil {
		_ = a.DBClient.Close()
	}
}
