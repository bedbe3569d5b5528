package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/fxforge"
	"github.com/aretw0/fxforge/internal/logging"
	"github.com/aretw0/fxforge/internal/presentation/graph"
	"github.com/aretw0/fxforge/pkg/manifest"
	"github.com/aretw0/fxforge/pkg/workspace"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ApplyResponse is the structured result of every build tool.
type ApplyResponse struct {
	Project string          `json:"project" jsonschema_description:"The project the job ran against"`
	Report  *fxforge.Report `json:"report,omitempty" jsonschema_description:"What the job changed"`
}

// Server exposes a workspace as an MCP server.
type Server struct {
	workspace *workspace.Manager
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(ws *workspace.Manager, opts ...Option) *Server {
	s := &Server{
		workspace: ws,
		mcpServer: server.NewMCPServer("fxforge-mcp", strings.TrimSpace(fxforge.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when
// ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

var itemSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":  map[string]any{"type": "string"},
		"clip":  map[string]any{"type": "string", "description": "Clip path; the item name is used as clip name"},
		"empty": map[string]any{"type": "boolean", "description": "Placeholder without a clip; still consumes an index"},
	},
	"required": []string{"name"},
}

var groupedItemSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":  map[string]any{"type": "string"},
		"clip":  map[string]any{"type": "string"},
		"group": map[string]any{"type": "integer", "description": "Selector value that picks this clip"},
	},
	"required": []string{"name", "group"},
}

func (s *Server) registerTools() {
	// TOOL: build_bool_layer
	s.mcpServer.AddTool(mcp.NewTool("build_bool_layer",
		mcp.WithDescription("Build a boolean toggle layer: one state per clip, entered while its bool parameter is true."),
		mcp.WithString("project", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithString("layer", mcp.Description("Layer name (ignored when per_clip is set)")),
		mcp.WithBoolean("per_clip", mcp.Description("Build one layer per clip instead")),
		mcp.WithArray("items", mcp.Required(), mcp.Items(itemSchema)),
		mcp.WithString("menu", mcp.Description("Menu folder for the toggles; omit to skip the menu")),
		mcp.WithOutputSchema[ApplyResponse](),
	), mcp.NewStructuredToolHandler(s.jobHandler(fxforge.JobBool)))

	// TOOL: build_int_layer
	s.mcpServer.AddTool(mcp.NewTool("build_int_layer",
		mcp.WithDescription("Build an integer-indexed layer: state i is selected when the int parameter equals i, 0 is the default."),
		mcp.WithString("project", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithString("layer", mcp.Required(), mcp.Description("Layer name")),
		mcp.WithString("parameter", mcp.Description("Int parameter name; defaults to the layer name")),
		mcp.WithArray("items", mcp.Required(), mcp.Items(itemSchema)),
		mcp.WithString("menu", mcp.Description("Menu folder for the toggles; omit to skip the menu")),
		mcp.WithOutputSchema[ApplyResponse](),
	), mcp.NewStructuredToolHandler(s.jobHandler(fxforge.JobInt)))

	// TOOL: build_overlay_layer
	s.mcpServer.AddTool(mcp.NewTool("build_overlay_layer",
		mcp.WithDescription("Build an overlay layer selected by an existing int parameter and gated by a bool enable flag."),
		mcp.WithString("project", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithString("layer", mcp.Required(), mcp.Description("Layer name")),
		mcp.WithString("selector", mcp.Required(), mcp.Description("Existing int parameter choosing the clip")),
		mcp.WithString("enable", mcp.Description("Bool parameter gating the overlay; defaults to the layer name")),
		mcp.WithArray("items", mcp.Required(), mcp.Items(groupedItemSchema)),
		mcp.WithString("menu", mcp.Description("Menu folder for the enable toggle; omit to skip the menu")),
		mcp.WithOutputSchema[ApplyResponse](),
	), mcp.NewStructuredToolHandler(s.jobHandler(fxforge.JobOverlay)))

	// TOOL: add_menu_control
	s.mcpServer.AddTool(mcp.NewTool("add_menu_control",
		mcp.WithDescription("Add one toggle to the menu, creating folders and pages as needed."),
		mcp.WithString("project", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithString("path", mcp.Description("Folder path, '/' separated; empty targets the root")),
		mcp.WithString("control", mcp.Required(), mcp.Description("Control name")),
		mcp.WithString("parameter", mcp.Required(), mcp.Description("Parameter the toggle sets")),
		mcp.WithString("type", mcp.Description("bool, int or float (default bool)")),
		mcp.WithNumber("value", mcp.Description("Value the toggle writes")),
		mcp.WithOutputSchema[ApplyResponse](),
	), mcp.NewStructuredToolHandler(s.jobHandler(fxforge.JobControl)))

	// TOOL: get_project
	s.mcpServer.AddTool(mcp.NewTool("get_project",
		mcp.WithDescription("Get a project: its controller, menu and menu parameters as JSON, or the menu as a text tree."),
		mcp.WithString("project", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithString("format", mcp.Description("json (default) or tree")),
	), s.handleGetProject)
}

// jobHandler decodes the tool arguments with the manifest job syntax and
// applies the job through the workspace.
func (s *Server) jobHandler(kind fxforge.JobKind) func(context.Context, mcp.CallToolRequest, map[string]interface{}) (ApplyResponse, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ApplyResponse, error) {
		projectID, _ := args["project"].(string)
		if projectID == "" {
			return ApplyResponse{}, errors.New("project is required")
		}

		raw := make(map[string]any, len(args))
		for k, v := range args {
			if k != "project" {
				raw[k] = v
			}
		}
		raw["kind"] = string(kind)

		job, err := manifest.DecodeJob(raw)
		if err != nil {
			s.logger.Warn("MCP: invalid job arguments", "tool", request.Params.Name, "err", err)
			return ApplyResponse{}, err
		}

		reports, err := s.workspace.Apply(ctx, projectID, job)
		if err != nil {
			return ApplyResponse{}, err
		}
		return ApplyResponse{Project: projectID, Report: reports[0]}, nil
	}
}

func (s *Server) handleGetProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := request.GetString("project", "")
	project, err := s.workspace.Load(ctx, projectID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("load failed: %v", err)), nil
	}
	if request.GetString("format", "json") == "tree" {
		return mcp.NewToolResultText(graph.MenuTree(project.Menu)), nil
	}
	jsonBytes, err := json.Marshal(project)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: fxforge://projects
	s.mcpServer.AddResource(mcp.NewResource("fxforge://projects", "Stored Projects",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.workspace.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list projects: %w", err)
		}
		if ids == nil {
			ids = []string{}
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "fxforge://projects",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
