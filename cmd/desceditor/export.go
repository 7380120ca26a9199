package main

import (
	"context"
	"fmt"
	"os"

	desceditor "github.com/formaniuktaras/Price20"
	"github.com/formaniuktaras/Price20/pkg/domain"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the saved editor state as JSON",
	Long:  `Loads the persisted editor state from the configured store and prints the portable JSON payload to stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		key, _ := cmd.Flags().GetString("key")

		ed, err := openSaved(cmd, key)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer ed.Close()

		data, err := ed.ExportJSON()
		if err != nil {
			fmt.Printf("Error exporting state: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the saved document as a sanitized HTML bundle",
	Long:  `Loads the persisted editor state and prints one language's document as a standalone HTML fragment with its stylesheet inlined.`,
	Run: func(cmd *cobra.Command, args []string) {
		key, _ := cmd.Flags().GetString("key")
		lang, _ := cmd.Flags().GetString("lang")

		ed, err := openSaved(cmd, key)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		defer ed.Close()

		bundle, err := ed.ToHTMLBundleFor(domain.Language(lang))
		if err != nil {
			fmt.Printf("Error rendering %q: %v\n", lang, err)
			os.Exit(1)
		}
		fmt.Println(bundle)
	},
}

// openSaved builds a read-only editor over the configured store and
// hydrates it from the saved payload.
func openSaved(cmd *cobra.Command, key string) (*desceditor.Editor, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	store, err := buildStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing store: %w", err)
	}

	ed, err := desceditor.New(
		desceditor.WithStore(store),
		desceditor.WithStorageKey(key),
		desceditor.WithAutosaveInterval(0),
	)
	if err != nil {
		return nil, err
	}
	if err := ed.Boot(context.Background()); err != nil {
		ed.Close()
		return nil, fmt.Errorf("loading saved state: %w", err)
	}
	return ed, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(renderCmd)

	for _, c := range []*cobra.Command{exportCmd, renderCmd} {
		c.Flags().String("key", desceditor.DefaultStorageKey, "Storage key of the saved state")
	}
	renderCmd.Flags().String("lang", string(domain.DefaultLanguage), "Language to render (uk, ru, en)")
}
