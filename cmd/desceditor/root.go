package main

import (
	"fmt"
	"os"

	"github.com/formaniuktaras/Price20/internal/config"
	"github.com/formaniuktaras/Price20/pkg/adapters/file"
	"github.com/formaniuktaras/Price20/pkg/adapters/memory"
	"github.com/formaniuktaras/Price20/pkg/adapters/redis"
	"github.com/formaniuktaras/Price20/pkg/ports"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "desceditor",
	Short: "Desceditor is a multi-language product description editor core",
	Long:  `Desceditor manages per-language rich-content documents with bounded edit history, autosave and a host API for embedding editor frontends.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML config file")
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

func buildStore(cfg config.Config) (ports.StateStore, error) {
	switch cfg.Store.Backend {
	case "memory":
		return memory.NewStore(), nil
	case "file":
		return file.New(cfg.Store.Path), nil
	case "redis":
		return redis.New(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
