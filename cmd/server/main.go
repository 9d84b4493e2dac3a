// @title           Cadastro de Usuários API
// @version         1.0
// @description     User directory backend: list, create and delete users.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @schemes http https
//
// Package main содержит точку входа сервера справочника пользователей.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера из файла ./configs/server.yaml;
//   - инициализацию подключения к базе данных и миграции;
//   - создание репозиториев, сервисов и HTTP-обработчиков;
//   - запуск HTTP или HTTPS (tls.enabled) сервера с заданными таймаутами;
//   - обработку системных сигналов завершения (SIGINT, SIGTERM, SIGQUIT);
//   - корректное (graceful) завершение работы сервера с таймаутом.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
// HTTP API сервера реализовано в пакете internal/server/api и документируется с помощью OpenAPI (Swagger).
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/server/api"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/server/config"
	h "github.com/IvanChernomyrdin/cadastro-usuarios/internal/server/net/http"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/server/repository"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/server/service"
	"github.com/IvanChernomyrdin/cadastro-usuarios/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/cadastro-usuarios/swagger/docs"
)

func main() {
	configPath := flag.String("config", "./configs/server.yaml", "path to server.yaml")
	flag.Parse()

	bootLog := logger.NewHTTPLogger().Sugar()

	if err := godotenv.Load(); err != nil {
		bootLog.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog.Fatal(err)
	}

	httpLogger := logger.NewHTTPLogger(
		logger.WithDir(cfg.Log.Dir),
		logger.WithFilename(cfg.Log.File),
		logger.WithLevel(cfg.Log.Level),
	)
	defer httpLogger.Sync()
	sugar := httpLogger.Sugar()

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// подключаем базу данных и накатываем миграции
	if err := config.Init(ctx, cfg, httpLogger); err != nil {
		sugar.Fatal(err)
	}

	db := config.GetDB()
	defer func() {
		if db != nil {
			db.Close()
		}
	}()

	// создаём репы
	repos := service.Repositories{
		Users: repository.NewUsersRepository(db),
	}
	// создаём сервис
	svc := service.NewServices(repos, cfg)
	// создаём хандлер
	handler := api.NewHandler(svc, httpLogger)
	handler.MaxBodyBytes = cfg.Server.MaxBodyBytes
	// создаём роутер
	router := h.NewRouter(handler)

	addr := cfg.Addr()
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: tlsVersion(cfg.TLS.MinVersion)}
	}

	g, gctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infow("server started", "addr", addr, "tls", cfg.TLS.Enabled)

		var serveErr error
		if cfg.TLS.Enabled {
			serveErr = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			serveErr = server.ListenAndServe()
		}
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-gctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единая обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}

func tlsVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}
