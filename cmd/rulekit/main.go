// Command rulekit serves form validation over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/rulekit/internal/api"
	"github.com/dmitrymomot/rulekit/internal/translations"
	"github.com/dmitrymomot/rulekit/pkg/clientip"
	"github.com/dmitrymomot/rulekit/pkg/config"
	"github.com/dmitrymomot/rulekit/pkg/httpserver"
	"github.com/dmitrymomot/rulekit/pkg/i18n"
	"github.com/dmitrymomot/rulekit/pkg/logger"
	"github.com/dmitrymomot/rulekit/pkg/message"
	"github.com/dmitrymomot/rulekit/pkg/ratelimiter"
	"github.com/dmitrymomot/rulekit/pkg/requestid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	if err := config.Load(&cfg, config.WithPrefix("RULEKIT_")); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(append(cfg.loggerOptions(),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor(), i18n.LoggerExtractor()),
	)...)
	logger.SetAsDefault(log)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("rulekit stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	var opts []api.Option
	if cfg.RateLimit > 0 {
		store := ratelimiter.NewMemoryStore()
		defer store.Close()
		limiter, err := ratelimiter.New(store, ratelimiter.PerMinute(cfg.RateLimit, cfg.RateBurst))
		if err != nil {
			return err
		}
		opts = append(opts, api.WithRateLimiter(limiter))
	}

	svc, err := newService(ctx, cfg, log, opts...)
	if err != nil {
		return err
	}
	srv := httpserver.NewFromConfig(cfg.Config, httpserver.WithLogger(log))
	return srv.Run(ctx, svc.Routes())
}

func newService(ctx context.Context, cfg Config, log *slog.Logger, opts ...api.Option) (*api.Service, error) {
	catalog := message.DefaultCatalog()
	if cfg.CatalogPath != "" {
		var err error
		if catalog, err = message.LoadCatalog(ctx, cfg.CatalogPath); err != nil {
			return nil, fmt.Errorf("loading message catalog: %w", err)
		}
	}

	adapter, err := translationAdapter(cfg.TranslationsPath)
	if err != nil {
		return nil, err
	}
	tr, err := i18n.NewTranslator(ctx, adapter,
		i18n.WithDefaultLanguage(cfg.DefaultLanguage),
		i18n.WithLogger(log),
		i18n.WithMissingTranslationsLogging(cfg.LogMissingTranslations),
	)
	if err != nil {
		return nil, fmt.Errorf("loading translations: %w", err)
	}

	return api.New(append([]api.Option{
		api.WithCatalog(catalog),
		api.WithTranslator(tr),
		api.WithLogger(log),
		api.WithMaxUploadSize(cfg.MaxUploadSize),
		api.WithMaxBodySize(cfg.MaxBodySize),
		api.WithValueEcho(cfg.EchoValues),
		api.WithTrustProxy(cfg.TrustProxy),
	}, opts...)...)
}

func translationAdapter(path string) (i18n.TranslationAdapter, error) {
	if path == "" {
		return translations.Adapter(), nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("translations path: %w", err)
	}
	if info.IsDir() {
		return i18n.NewDirectoryAdapter(nil, path), nil
	}
	if a := i18n.NewFileAdapter(nil, path); a != nil {
		return a, nil
	}
	return nil, errors.New("translations path: unsupported file type " + path)
}
