// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/luxfi/database/badgerdb"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/luxfi/fracvm"
	"github.com/luxfi/fracvm/api/health"
	"github.com/luxfi/fracvm/api/metrics"
	"github.com/luxfi/fracvm/api/server"
)

const readHeaderTimeout = 10 * time.Second

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "fracvm",
		Short: "Runs a fractional vault chain and serves its API",
		RunE:  runFunc,
	}
	AddFlags(c.Flags())
	return c
}

func runFunc(c *cobra.Command, args []string) error {
	config, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}

	genesisBytes, err := readOptionalFile(config.GenesisFile)
	if err != nil {
		return err
	}
	configBytes, err := readOptionalFile(config.ConfigFile)
	if err != nil {
		return err
	}

	logger := log.NewLogger(fracvm.Name)
	gatherer := metrics.NewPrefixGatherer()
	vmRegistry, err := metrics.MakeAndRegister(gatherer, fracvm.Name)
	if err != nil {
		return err
	}
	apiRegistry, err := metrics.MakeAndRegister(gatherer, "api")
	if err != nil {
		return err
	}
	processRegistry := prometheus.NewRegistry()
	if err := processRegistry.Register(collectors.NewGoCollector()); err != nil {
		return err
	}
	metricsHandler := promhttp.HandlerFor(
		prometheus.Gatherers{gatherer, processRegistry},
		promhttp.HandlerOpts{},
	)

	db, err := badgerdb.New(config.DataDir, nil, fracvm.Name, nil)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	ctx := c.Context()
	vm, err := (&fracvm.Factory{}).New(logger)
	if err != nil {
		return err
	}
	if err := vm.Initialize(ctx, db, genesisBytes, configBytes, vmRegistry); err != nil {
		_ = db.Close()
		return err
	}
	if err := vm.SetState(ctx, fracvm.NormalOp); err != nil {
		_ = vm.Shutdown(ctx)
		return err
	}

	srv, err := newServer(logger, config, apiRegistry, metricsHandler, vm)
	if err != nil {
		_ = vm.Shutdown(ctx)
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Dispatch)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		err := srv.Shutdown()
		if vmErr := vm.Shutdown(context.Background()); err == nil {
			err = vmErr
		}
		return err
	})
	return g.Wait()
}

func newServer(
	logger log.Logger,
	config *Config,
	registerer prometheus.Registerer,
	metricsHandler http.Handler,
	vm *fracvm.VM,
) (server.Server, error) {
	address := net.JoinHostPort(config.HTTPHost, strconv.Itoa(int(config.HTTPPort)))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	srv, err := server.New(
		logger,
		listener,
		config.AllowedOrigins,
		config.ShutdownTimeout,
		registerer,
		server.HTTPConfig{ReadHeaderTimeout: readHeaderTimeout},
	)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	handlers, err := vm.CreateHandlers(context.Background())
	if err != nil {
		_ = listener.Close()
		return nil, err
	}
	for endpoint, handler := range handlers {
		if err := srv.AddRoute(handler, fracvm.Name, endpoint); err != nil {
			_ = listener.Close()
			return nil, err
		}
	}
	if err := srv.AddRoute(metricsHandler, "metrics", ""); err != nil {
		_ = listener.Close()
		return nil, err
	}
	healthHandler, err := health.NewHandler(vm, registerer)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}
	if err := srv.AddRoute(healthHandler, "health", ""); err != nil {
		_ = listener.Close()
		return nil, err
	}

	logger.Info("serving API",
		log.String("address", listener.Addr().String()),
	)
	return srv, nil
}

func readOptionalFile(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return b, nil
}
