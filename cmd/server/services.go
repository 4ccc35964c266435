package main

import (
	"codeberg.org/handleart/server/internal/analyzer"
	"codeberg.org/handleart/server/internal/config"
	"codeberg.org/handleart/server/internal/ledger"
	"codeberg.org/handleart/server/internal/llm"
	"codeberg.org/handleart/server/internal/pipeline"
	"codeberg.org/handleart/server/internal/synthesizer"
)

// creates and wires the generation service graph on top of the chosen stores
func InitializeServices(cfg *config.Config, ledgerStore ledger.Store, cacheStore analyzer.CacheStore) *Services {
	promptGenerator := llm.NewXAIClient(llm.XAIConfig{
		APIKey: cfg.XAIKey,
		Model:  cfg.AnalyzerModel,
	})

	reportGenerator := llm.NewXAIClient(llm.XAIConfig{
		APIKey: cfg.XAIKey,
		Model:  cfg.ReportModel,
	})

	premiumImages := llm.NewOpenRouterClient(llm.OpenRouterConfig{
		APIKey:    cfg.OpenRouterKey,
		Model:     cfg.PremiumImageModel,
		SiteURL:   cfg.SiteURL,
		SiteTitle: cfg.SiteTitle,
	})

	standardImages := llm.NewOpenRouterClient(llm.OpenRouterConfig{
		APIKey:    cfg.OpenRouterKey,
		Model:     cfg.StandardImageModel,
		SiteURL:   cfg.SiteURL,
		SiteTitle: cfg.SiteTitle,
	})

	usageLedger := ledger.New(ledgerStore, cfg.PremiumDailyLimit, cfg.UsageWindow)

	accountAnalyzer := analyzer.New(promptGenerator, reportGenerator, cacheStore, analyzer.Config{
		CacheEnabled: cfg.SearchCacheEnabled,
		CacheTTL:     cfg.SearchCacheTTL,
	})

	imageSynthesizer := synthesizer.New(premiumImages, standardImages, usageLedger, accountAnalyzer, synthesizer.Config{
		VerboseModelFamilies: cfg.VerboseModelFamilies,
	})

	generationPipeline := pipeline.New(accountAnalyzer, imageSynthesizer, cfg.GenerationBudget)

	return &Services{
		Analyzer:    accountAnalyzer,
		Synthesizer: imageSynthesizer,
		Pipeline:    generationPipeline,
		Ledger:      usageLedger,
	}
}
