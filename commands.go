package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"launcher/cli"
	"launcher/config"
	"launcher/models"
)

// newClientCommands returns the commands that talk to a running server.
func newClientCommands(cfg *config.Config) []*cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import apps from a JSON or YAML file (\"-\" reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readImportFile(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			summary, err := cli.NewClient(cfg.ServerURL).ImportApps(cmd.Context(), body)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d, updated %d, total %d\n",
				summary.Imported, summary.Updated, summary.Total)
			return nil
		},
	}
	cfg.BindClientFlags(importCmd.Flags())

	var exportOutput, exportFormat string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export all apps and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			export, err := cli.NewClient(cfg.ServerURL).Export(cmd.Context())
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			data, err := encodeExport(export, exportFormat)
			if err != nil {
				return err
			}
			if exportOutput == "" || exportOutput == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(exportOutput, data, 0644)
		},
	}
	cfg.BindClientFlags(exportCmd.Flags())
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json or yaml")

	var appsCategory string
	appsCmd := &cobra.Command{
		Use:   "apps",
		Short: "List apps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apps, err := cli.NewClient(cfg.ServerURL).ListApps(cmd.Context(), appsCategory)
			if err != nil {
				return fmt.Errorf("failed to list apps: %w", err)
			}
			return printApps(cmd.OutOrStdout(), apps)
		},
	}
	cfg.BindClientFlags(appsCmd.Flags())
	appsCmd.Flags().StringVarP(&appsCategory, "category", "c", "", "Only list apps in this category")

	return []*cobra.Command{importCmd, exportCmd, appsCmd}
}

// readImportFile returns an import body accepted by POST /api/apps/import.
// YAML files (by extension) are converted to JSON; anything else is sent
// unchanged and validated by the server.
func readImportFile(path string, stdin io.Reader) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlToImportBody(data)
	default:
		return data, nil
	}
}

// yamlToImportBody accepts either a list of apps or a document with an
// "apps" list, like the JSON import body.
func yamlToImportBody(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("empty YAML document")
	}

	var apps []models.AppPayload
	switch root := node.Content[0]; root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&apps); err != nil {
			return nil, fmt.Errorf("invalid YAML apps list: %w", err)
		}
	case yaml.MappingNode:
		var doc struct {
			Apps []models.AppPayload `yaml:"apps"`
		}
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("invalid YAML document: %w", err)
		}
		if doc.Apps == nil {
			return nil, fmt.Errorf("YAML document has no apps list")
		}
		apps = doc.Apps
	default:
		return nil, fmt.Errorf("YAML must be a list of apps or a document with an apps list")
	}

	return json.Marshal(map[string]any{"apps": apps})
}

func encodeExport(export models.Export, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json", "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(export); err != nil {
			return nil, fmt.Errorf("failed to encode export: %w", err)
		}
		return buf.Bytes(), nil
	case "yaml", "yml":
		data, err := yaml.Marshal(export)
		if err != nil {
			return nil, fmt.Errorf("failed to encode export: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

func printApps(w io.Writer, apps []models.AppEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tLAUNCHES\tLAST LAUNCHED")
	for _, app := range apps {
		last := "-"
		if app.LastLaunched != nil {
			last = *app.LastLaunched
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", app.ID, app.Name, app.Category, app.LaunchCount, last)
	}
	return tw.Flush()
}
