package depccg

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// NewCommand creates a Cobra command tree for model management.
// The returned command can be used as a root command or added to a parent
// CLI.
//
// Commands provided:
//   - list
//   - download <model-id>
//   - path <model-id>
//   - info <model-id>
//
// Global flags: --json, --quiet, --verbose
func NewCommand(cfg Config, catalog *Catalog, opts ...FetcherOption) *cobra.Command {
	var (
		jsonOutput bool
		quiet      bool
		verbose    bool
	)

	// Fetcher and loader are created in PersistentPreRunE.
	var (
		fetcher *Fetcher
		loader  *Loader
	)

	cmd := &cobra.Command{
		Use:   "depccg",
		Short: "Manage CCG supertagging models",
		Long:  "Download and inspect CCG supertagging models from the remote artifact store.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip setup for help commands
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			if quiet {
				level = slog.LevelError
			}
			logger := slog.New(tint.NewHandler(cmd.ErrOrStderr(), &tint.Options{Level: level}))

			var err error
			all := append([]FetcherOption{WithLogger(logger)}, opts...)
			fetcher, err = NewFetcher(catalog, cfg, all...)
			if err != nil {
				return fmt.Errorf("failed to initialize fetcher: %w", err)
			}

			// The CLI only resolves and downloads; no framework loader
			// functions are registered here.
			loader, err = NewLoader(catalog, cfg, nil)
			if err != nil {
				return fmt.Errorf("failed to initialize loader: %w", err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	cmd.AddCommand(listCmd(catalog, &fetcher, &jsonOutput))
	cmd.AddCommand(downloadCmd(catalog, &fetcher, &quiet))
	cmd.AddCommand(pathCmd(&loader))
	cmd.AddCommand(infoCmd(catalog, &fetcher, &jsonOutput))

	return cmd
}

// modelStatus is the presentation record for a catalog entry.
type modelStatus struct {
	ID         string    `json:"id"`
	Framework  Framework `json:"framework"`
	Name       string    `json:"name"`
	Downloaded bool      `json:"downloaded"`
	Path       string    `json:"path"`
}

// catalogStatus lists every catalog entry with its on-disk availability,
// in seed-table order.
func catalogStatus(catalog *Catalog, dir string) []modelStatus {
	var statuses []modelStatus
	for _, lang := range catalog.Languages() {
		for _, variant := range catalog.Variants(lang) {
			key := ModelKey{Language: lang, Variant: variant}
			// Raw map access: entries with unknown frameworks are still
			// listed so the operator can see them.
			spec := catalog.specs[key]
			path := artifactPath(dir, spec)
			_, statErr := os.Stat(path)
			statuses = append(statuses, modelStatus{
				ID:         key.String(),
				Framework:  spec.Framework,
				Name:       spec.Name,
				Downloaded: statErr == nil,
				Path:       path,
			})
		}
	}
	return statuses
}

func listCmd(catalog *Catalog, fetcher **Fetcher, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available models",
		Long:  "List every model in the catalog along with its download status.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses := catalogStatus(catalog, (*fetcher).ModelDir())
			return outputModelStatuses(cmd.OutOrStdout(), statuses, *jsonOutput)
		},
	}
}

func downloadCmd(catalog *Catalog, fetcher **Fetcher, quiet *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "download <model-id>",
		Short: "Download a model artifact",
		Long:  "Download a model artifact from the remote store, overwriting any existing copy.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !catalog.IsAvailable(args[0]) {
				return fmt.Errorf("%w: %s (see 'depccg list')", ErrModelNotFound, args[0])
			}

			key, err := ParseModelID(args[0])
			if err != nil {
				return err
			}

			if err := (*fetcher).Download(cmd.Context(), key); err != nil {
				return err
			}

			if !*quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Successfully downloaded %s\n", key)
			}
			return nil
		},
	}
}

func pathCmd(loader **Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "path <model-id>",
		Short: "Print path to a downloaded model",
		Long:  "Print the filesystem path to a downloaded model's artifact.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := ParseModelID(args[0])
			if err != nil {
				return err
			}

			path, _, err := (*loader).ResolvePath(key)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func infoCmd(catalog *Catalog, fetcher **Fetcher, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "info <model-id>",
		Short: "Show model information",
		Long:  "Show the catalog descriptor and download status for a model.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := ParseModelID(args[0])
			if err != nil {
				return err
			}

			spec, err := catalog.Lookup(key)
			if err != nil {
				return err
			}

			path := artifactPath((*fetcher).ModelDir(), spec)
			_, statErr := os.Stat(path)
			return outputModelInfo(cmd.OutOrStdout(), key, spec, path, statErr == nil, *jsonOutput)
		},
	}
}

// Output helpers

func outputModelStatuses(w io.Writer, statuses []modelStatus, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tFRAMEWORK\tARTIFACT\tDOWNLOADED")
	for _, s := range statuses {
		downloaded := "no"
		if s.Downloaded {
			downloaded = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Framework, s.Name, downloaded)
	}
	return tw.Flush()
}

func outputModelInfo(w io.Writer, key ModelKey, spec ModelSpec, path string, downloaded bool, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			ID               string    `json:"id"`
			Framework        Framework `json:"framework"`
			Name             string    `json:"name"`
			RemoteID         string    `json:"remote_id"`
			GrammarConfig    string    `json:"grammar_config"`
			SemanticTemplate string    `json:"semantic_template"`
			Path             string    `json:"path"`
			Downloaded       bool      `json:"downloaded"`
		}{
			ID:               key.String(),
			Framework:        spec.Framework,
			Name:             spec.Name,
			RemoteID:         spec.RemoteID,
			GrammarConfig:    spec.GrammarConfig,
			SemanticTemplate: spec.SemanticTemplate,
			Path:             path,
			Downloaded:       downloaded,
		})
	}

	downloadedStr := "no"
	if downloaded {
		downloadedStr = "yes"
	}
	fmt.Fprintf(w, "Model:              %s\n", key)
	fmt.Fprintf(w, "Framework:          %s\n", spec.Framework)
	fmt.Fprintf(w, "Artifact:           %s\n", spec.Name)
	fmt.Fprintf(w, "Remote ID:          %s\n", spec.RemoteID)
	fmt.Fprintf(w, "Grammar config:     %s\n", spec.GrammarConfig)
	fmt.Fprintf(w, "Semantic template:  %s\n", spec.SemanticTemplate)
	fmt.Fprintf(w, "Path:               %s\n", path)
	fmt.Fprintf(w, "Downloaded:         %s\n", downloadedStr)
	return nil
}
