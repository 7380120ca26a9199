package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/formaniuktaras/Price20/internal/logging"
	"github.com/formaniuktaras/Price20/pkg/adapters/httpserver"
	"github.com/formaniuktaras/Price20/pkg/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the host API server",
	Long:  `Starts the session host: the JSON API an embedded editor fetches its state from and pushes saves back to.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		store, err := buildStore(cfg)
		if err != nil {
			fmt.Printf("Error initializing store: %v\n", err)
			os.Exit(1)
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		session := cfg.Session
		if session == "" {
			session = uuid.New().String()
		}

		// Seed the session so the editor's first fetch succeeds.
		ctx := context.Background()
		if _, err := store.Load(ctx, session); err != nil {
			if !errors.Is(err, domain.ErrStateNotFound) {
				fmt.Printf("Error reading session %q: %v\n", session, err)
				os.Exit(1)
			}
			initial := domain.NewEditorState()
			if err := store.Save(ctx, session, &initial); err != nil {
				fmt.Printf("Error seeding session %q: %v\n", session, err)
				os.Exit(1)
			}
		}

		handler := httpserver.NewHandler(store,
			httpserver.WithLogger(logger),
			httpserver.WithStaticDir(cfg.StaticDir),
		)

		srv := &http.Server{
			Addr:    cfg.Listen,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting host server on %s\n", srv.Addr)
			fmt.Printf("Session: %s\n", session)
			fmt.Printf("State endpoint: http://%s/api/session/%s/state\n", srv.Addr, session)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Host server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
