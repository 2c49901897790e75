package main

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

const (
	serverName    = "mdocs-mcp"
	serverVersion = "1.0.0"

	toolGetElementAPI = "get_element_api"
	toolSearchAPI     = "search_api"
)

// DocsMCPServer wraps the MCP server with documentation lookup tools.
// Unknown tool names are rejected by the MCP harness itself with a
// method-not-found error; only registered tools reach the handlers.
type DocsMCPServer struct {
	docsClient *DocsClient
	mcpServer  *server.MCPServer
	logger     zerolog.Logger
}

// NewDocsMCPServer creates an MCP server backed by client.
func NewDocsMCPServer(client *DocsClient, logger zerolog.Logger) *DocsMCPServer {
	s := &DocsMCPServer{
		docsClient: client,
		mcpServer: server.NewMCPServer(
			serverName,
			serverVersion,
			server.WithToolCapabilities(false),
		),
		logger: logger,
	}
	s.registerTools()
	return s
}

func (s *DocsMCPServer) registerTools() {
	getTool := mcp.NewTool(toolGetElementAPI,
		mcp.WithDescription("Fetch the structured API documentation (title, description, parameters, code examples) for a single element of the component library."),
		mcp.WithString("element",
			mcp.Required(),
			mcp.Description("Exact element name, e.g. \"slider\". Case-sensitive."),
		),
	)
	s.mcpServer.AddTool(getTool, s.handleGetElementAPI)

	searchTool := mcp.NewTool(toolSearchAPI,
		mcp.WithDescription("Search the documentation of every known element for a case-insensitive substring and return the matching records."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text query matched against the serialized documentation records."),
		),
	)
	s.mcpServer.AddTool(searchTool, s.handleSearchAPI)
}

// handleGetElementAPI serves the get_element_api tool.
func (s *DocsMCPServer) handleGetElementAPI(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	element, errResult := requireStringArg(request, "element")
	if errResult != nil {
		return errResult, nil
	}

	s.logger.Info().Str("tool", toolGetElementAPI).Str("element", element).Msg("tool call")

	doc, err := s.docsClient.Fetch(ctx, element)
	if err != nil {
		s.logger.Warn().Str("element", element).Err(err).Msg("fetch failed")
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(renderDoc(doc)), nil
}

// handleSearchAPI serves the search_api tool.
func (s *DocsMCPServer) handleSearchAPI(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, errResult := requireStringArg(request, "query")
	if errResult != nil {
		return errResult, nil
	}

	s.logger.Info().Str("tool", toolSearchAPI).Str("query", query).Msg("tool call")

	docs := s.docsClient.Search(ctx, query)

	return mcp.NewToolResultText(renderDocs(docs)), nil
}

// requireStringArg extracts a required string argument from a tool
// call. A missing arguments object or a missing, non-string or blank
// field yields an EINVALID error result before any I/O happens.
func requireStringArg(request mcp.CallToolRequest, field string) (string, *mcp.CallToolResult) {
	args := request.GetArguments()
	if args == nil {
		return "", mcp.NewToolResultError(Errorf(EINVALID, "missing arguments").Error())
	}
	value, ok := args[field].(string)
	if !ok || value == "" {
		return "", mcp.NewToolResultError(Errorf(EINVALID, "missing required argument: %s", field).Error())
	}
	return value, nil
}

// Start serves the MCP protocol over stdin/stdout. Requests are
// handled one at a time; a search blocks the dispatcher for the
// duration of its sequential fetches.
func (s *DocsMCPServer) Start() error {
	s.logger.Info().
		Str("base_url", s.docsClient.BaseURL()).
		Int("elements", s.docsClient.Endpoints().Len()).
		Msg("starting MCP server on stdio")
	return server.ServeStdio(s.mcpServer)
}
