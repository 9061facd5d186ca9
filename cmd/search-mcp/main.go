package main

import (
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchmcp/internal/app"
	"github.com/kailas-cloud/searchmcp/internal/config"
	"github.com/kailas-cloud/searchmcp/internal/domain"
	"github.com/kailas-cloud/searchmcp/internal/transport/azsearch"
	"github.com/kailas-cloud/searchmcp/internal/transport/mcpserver"
	openaiEmb "github.com/kailas-cloud/searchmcp/internal/transport/openai"
	healthuc "github.com/kailas-cloud/searchmcp/internal/usecase/health"
	searchuc "github.com/kailas-cloud/searchmcp/internal/usecase/search"
)

func main() {
	a, err := app.New("search-mcp")
	if err != nil {
		panic(err.Error())
	}
	defer a.Sync()
	logger := a.Logger
	cfg := a.Config

	// Interfaces stay untyped nil when the client cannot be built, so tools
	// answer with the not-initialized message instead of calling out.
	var (
		searcher       mcpserver.Searcher
		remote         healthuc.RemoteChecker
		embeddingCheck healthuc.EmbeddingChecker
	)

	client, err := newSearchClient(cfg, logger)
	if err != nil {
		logger.Error("Error initializing search client", zap.Error(err))
	} else {
		var embedder searchuc.Embedder
		if cfg.Embedding.Enabled() {
			e := openaiEmb.NewEmbedder(&openaiEmb.Config{
				Provider:   cfg.Embedding.Provider,
				APIKey:     cfg.Embedding.APIKey,
				BaseURL:    cfg.Embedding.BaseURL,
				Model:      cfg.Embedding.Model,
				Dimensions: cfg.Embedding.Dimensions,
				APIVersion: cfg.Embedding.APIVersion,
				Logger:     logger,
			})
			embedder = domain.NewInstructionEmbedder(e, cfg.Embedding.QueryInstruction)
			embeddingCheck = e
			logger.Info("Query embedder enabled",
				zap.String("provider", cfg.Embedding.Provider),
				zap.String("model", cfg.Embedding.Model),
			)
		}
		searcher = searchuc.New(client, embedder)
		remote = client
		logger.Info("Search client initialized successfully", zap.String("index", client.IndexName()))
	}

	server := mcpserver.NewSearchServer(mcpserver.SearchDeps{
		Search:      searcher,
		VectorField: cfg.Search.VectorField,
		Logger:      logger,
	})

	if err := a.Run(server, healthuc.New("search", remote, embeddingCheck)); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}

func newSearchClient(cfg config.Config, logger *zap.Logger) (*azsearch.Client, error) {
	if err := config.Require(cfg.Search.Requirements()...); err != nil {
		return nil, err
	}
	return azsearch.NewClient(&azsearch.Config{
		Endpoint:     cfg.Search.Endpoint,
		APIKey:       cfg.Search.APIKey,
		IndexName:    cfg.Search.IndexName,
		APIVersion:   cfg.Search.APIVersion,
		TitleField:   cfg.Search.TitleField,
		ContentField: cfg.Search.ContentField,
		Logger:       logger,
	})
}
