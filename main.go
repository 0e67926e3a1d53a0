package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/apex/log"
	clihandler "github.com/apex/log/handlers/cli"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"launcher/config"
	"launcher/database"
	"launcher/handlers"
	"launcher/service"
	"launcher/version"
)

func main() {
	log.SetHandler(clihandler.Default)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the bare command starts the
// server.
func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "launcher",
		Short:         "App launcher catalog server and client",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), cfg)
		},
	}
	cfg.BindLogFlags(rootCmd.PersistentFlags())
	cfg.BindServerFlags(rootCmd.Flags())

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), cfg)
		},
	}
	cfg.BindServerFlags(serveCmd.Flags())

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "List the supported environment variables",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			config.PrintEnvHelp(cmd.OutOrStdout())
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetBuildInfo())
		},
	}

	rootCmd.AddCommand(serveCmd, envCmd, versionCmd)
	rootCmd.AddCommand(newClientCommands(cfg)...)
	return rootCmd
}

// runServer serves the API until SIGINT/SIGTERM or ctx is done, then shuts
// down within cfg.ShutdownTimeoutSeconds.
func runServer(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logOut, logFile, err := setupLogging(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	log.WithField("version", version.GetFullVersion()).Info("launcher starting up")

	store, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Warn("error closing database")
		}
	}()

	svc := service.New(store, cfg)

	if strings.ToUpper(cfg.LogLevel) != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = logOut
	gin.DefaultErrorWriter = logOut
	gin.DisableConsoleColor()

	listener, err := listenTCP(cfg.Host, cfg.Port)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           handlers.NewRouter(svc, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", listener.Addr().String()).Info("server listening")
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("received shutdown signal")
	}

	timeout := time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("server forced to shutdown")
	}

	log.Info("server exited")
	return nil
}

// listenTCP opens the server socket, turning "address in use" into a hint
// about the port settings.
func listenTCP(host string, port int) (net.Listener, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	listener, err := net.Listen("tcp", addr)
	if err == nil {
		return listener, nil
	}
	if isAddrInUse(err) {
		return nil, fmt.Errorf("port %d is already in use; choose another with PORT or --port: %w", port, err)
	}
	return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
}
