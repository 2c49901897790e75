package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	baseURL      string
	endpointFile string
	fetchTimeout time.Duration
	cacheTTL     time.Duration
	debug        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "mdocs-mcp",
		Short:   "MCP documentation lookup server for component library docs",
		Version: version,
		Long: `mdocs-mcp serves structured API documentation extracted from a
component library documentation site built with Material for MkDocs.
It exposes two MCP tools over stdio (get_element_api, search_api) and
the same operations as plain subcommands for use without an MCP client.`,
		Example: `  # Serve MCP over stdio for an MCP client
  mdocs-mcp serve --url https://docs.example.dev/components

  # Fetch one element's documentation record
  mdocs-mcp get slider --url https://docs.example.dev/components

  # Search every element's documentation
  mdocs-mcp search "aria" --url https://docs.example.dev/components

  # List the known elements grouped by section
  mdocs-mcp elements --url https://docs.example.dev/components`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "", "Base URL of the documentation site (required)")
	rootCmd.PersistentFlags().StringVar(&endpointFile, "endpoints", "", "YAML file overriding the built-in element -> path table")
	rootCmd.PersistentFlags().DurationVar(&fetchTimeout, "timeout", DefaultFetchTimeout, "Timeout for each documentation page fetch")
	rootCmd.PersistentFlags().DurationVar(&cacheTTL, "cache-ttl", DefaultCacheTTL, "How long fetched records are reused (0 disables caching)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging on stderr")

	if err := rootCmd.MarkPersistentFlagRequired("url"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(serveCmd(), getCmd(), searchCmd(), elementsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the stderr diagnostic logger. Stdout stays clean:
// it carries the MCP channel in serve mode and command output
// otherwise.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

// newClient assembles a DocsClient from the persistent flags.
func newClient(logger zerolog.Logger) (*DocsClient, error) {
	table := DefaultEndpoints()
	if endpointFile != "" {
		loaded, err := LoadEndpointTable(endpointFile)
		if err != nil {
			return nil, err
		}
		table = loaded
		logger.Info().Str("file", endpointFile).Int("elements", table.Len()).Msg("loaded endpoint table")
	}

	return NewDocsClient(baseURL, table,
		WithTimeout(fetchTimeout),
		WithCacheTTL(cacheTTL),
		WithLogger(logger),
	), nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP protocol over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			client, err := newClient(logger)
			if err != nil {
				return err
			}
			return NewDocsMCPServer(client, logger).Start()
		},
	}
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <element>",
		Short: "Fetch the documentation record for one element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			client, err := newClient(logger)
			if err != nil {
				return err
			}
			doc, err := client.Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(renderDoc(doc))
			return nil
		},
	}
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search every element's documentation for a substring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			client, err := newClient(logger)
			if err != nil {
				return err
			}
			fmt.Println(renderDocs(client.Search(cmd.Context(), args[0])))
			return nil
		},
	}
}

func elementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "elements",
		Short: "List the known elements grouped by section",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			client, err := newClient(logger)
			if err != nil {
				return err
			}
			for _, section := range client.Endpoints().Sections() {
				fmt.Printf("%s:\n", section.Name)
				fmt.Printf("  %s\n", strings.Join(section.Elements, ", "))
			}
			return nil
		},
	}
}
