// Package main реализует точку входа сервиса учетных записей.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	profilecache "goaccounts/internal/accounts/adapters/cache"
	httpadapter "goaccounts/internal/accounts/adapters/http"
	"goaccounts/internal/accounts/adapters/services"
	"goaccounts/internal/accounts/app"
	"goaccounts/internal/accounts/config"
	"goaccounts/internal/accounts/metrics"
	"goaccounts/internal/accounts/ports/cache"
	"goaccounts/pkg/db/redis"
	"goaccounts/pkg/logger"
	"goaccounts/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "ACCOUNTS_LOGGER_MODE"
	EnvLoggerLevel = "ACCOUNTS_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitStorage          = "failed to initialize storage"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "accounts service started"
	LogServiceShutdownDone = "accounts service shutdown complete"
	LogInitStorage         = "initializing storage"
	LogInitCache           = "initializing profile cache"
	LogCacheDisabled       = "profile cache disabled"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingRedis        = "closing Redis connection"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitServices)
		serviceFactory := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.BCryptCost)
		passwordService := serviceFactory.PasswordService()
		tokenService := serviceFactory.TokenService()

		log.Info(ctx, LogInitStorage, zap.String("driver", cfg.Storage.Driver))
		store, err := openStorage(ctx, cfg, passwordService)
		if err != nil {
			log.Error(ctx, ErrInitStorage, zap.Error(err))
			exitCode = 1
			return
		}
		hooks := []shutdown.Hook{store.close}

		var profiles cache.ProfileCache
		if cfg.Redis.Enabled {
			log.Info(ctx, LogInitCache)
			redisClient, err := redis.NewClient(ctx, cfg.Redis.GetClientConfig())
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				_ = store.close(ctx)
				exitCode = 1
				return
			}
			profiles = profilecache.NewRedisProfileCache(redisClient.RawClient(), cfg.Redis.TTL)
			hooks = append(hooks, func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return redisClient.Close()
			})
		} else {
			log.Info(ctx, LogCacheDisabled)
		}

		log.Info(ctx, LogInitUseCases)
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		workflowMetrics := metrics.New(registry)

		registration := metrics.InstrumentRegistration(
			app.NewRegistrationUseCase(store.accounts, tokenService, cfg.Avatar.BaseURL), workflowMetrics)
		authentication := metrics.InstrumentAuthentication(
			app.NewAuthenticationUseCase(store.accounts, passwordService, tokenService), workflowMetrics)
		accountLookup := metrics.InstrumentAccount(
			app.NewAccountUseCase(store.accounts, profiles), workflowMetrics)

		log.Info(ctx, LogInitHTTPServer)
		server := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpadapter.SetupRouter(server, httpadapter.Dependencies{
			Registration:   registration,
			Authentication: authentication,
			Accounts:       accountLookup,
			Gatherer:       registry,
			Health:         store.ping,
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress(), fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		// HTTP сервер останавливается первым, затем закрываются хранилища.
		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			if err := server.ShutdownWithContext(ctx); err != nil {
				return fmt.Errorf("stopping HTTP server: %w", err)
			}
			shutdown.Run(ctx, cfg.Shutdown.GetTimeout(), hooks...)
			return nil
		})

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
