package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/light-bringer/invcat-service/internal/config"
	"github.com/light-bringer/invcat-service/internal/pkg/logx"
	"github.com/light-bringer/invcat-service/internal/services"
	"github.com/light-bringer/invcat-service/internal/transport/grpc/catalog"
)

func main() {
	if err := run(); err != nil {
		logx.Fatal().Err(err).Msg("failed to run server")
	}
}

func run() error {
	// 1. Load configuration from .env and environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logx.Init(logx.Options{Environment: cfg.Environment, Output: os.Stdout})

	logx.Info().
		Str("backend", cfg.Remote.Backend).
		Str("grpc_port", cfg.GRPCPort).
		Str("http_port", cfg.HTTPPort).
		Int("page_size", cfg.PageSize).
		Dur("view_idle_ttl", cfg.ViewIdleTTL).
		Bool("auth", cfg.AuthEnabled).
		Msg("starting inventory catalog service")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. Create gRPC server with interceptors
	interceptors := []grpc.UnaryServerInterceptor{catalog.LoggingInterceptor()}
	if serviceOpts.SessionGate != nil {
		interceptors = append(interceptors, catalog.AuthInterceptor(serviceOpts.SessionGate))
	}
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	catalog.RegisterCatalogServiceServer(grpcServer, serviceOpts.CatalogHandler)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	// 4. Create HTTP server
	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: serviceOpts.HTTPHandler,
	}

	// 5. Serve until a signal arrives or a server fails
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logx.Info().Str("addr", lis.Addr().String()).Msg("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("gRPC server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logx.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	})

	// 6. Expire idle views
	if cfg.ViewIdleTTL > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(max(cfg.ViewIdleTTL/2, time.Second))
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					serviceOpts.Registry.Sweep()
				}
			}
		})
	}

	// 7. Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		logx.Info().Msg("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logx.Warn().Err(err).Msg("HTTP server shutdown error")
		}

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-shutdownCtx.Done():
			grpcServer.Stop()
		}
		return nil
	})

	return g.Wait()
}
