package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/flexile/fieldlayout"
	"github.com/flexile/fieldlayout/pkg/domain"
	"github.com/flexile/fieldlayout/pkg/grouping"
	"github.com/flexile/fieldlayout/pkg/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Engine defines the operations exposed as MCP tools.
type Engine interface {
	Forms(ctx context.Context) ([]string, error)
	Layout(ctx context.Context, id string) (domain.Layout, error)
	Group(fields []domain.Field, pairs []grouping.Pair) domain.Layout
	Validate(ctx context.Context, id string, values map[string]any) error
}

// ValidateResponse reports the outcome of validate_form.
type ValidateResponse struct {
	Valid  bool                      `json:"valid" jsonschema_description:"True when every value satisfies its field rules"`
	Errors []*schema.ValidationError `json:"errors,omitempty" jsonschema_description:"One entry per failed field rule"`
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("fieldlayout-mcp", strings.TrimSpace(fieldlayout.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: list_forms
	s.mcpServer.AddTool(mcp.NewTool("list_forms",
		mcp.WithDescription("List the IDs of the available forms."),
	), s.handleListForms)

	// TOOL: form_layout
	layoutTool := mcp.NewTool("form_layout",
		mcp.WithDescription("Get the grouped field layout of a form."),
		mcp.WithString("form_id", mcp.Required(), mcp.Description("ID of the form")),
		mcp.WithOutputSchema[domain.Layout](),
	)
	s.mcpServer.AddTool(layoutTool, mcp.NewStructuredToolHandler(s.handleFormLayout))

	// TOOL: group_fields
	groupTool := mcp.NewTool("group_fields",
		mcp.WithDescription("Group an ordered list of fields. Fields whose keys form a pair are placed in one group; every other field is its own group."),
		mcp.WithString("fields", mcp.Required(), mcp.Description(`JSON array of fields, e.g. [{"key":"abartn"},{"key":"accountNumber"}]`)),
		mcp.WithString("pairs", mcp.Description(`JSON array of key pairs, e.g. [["abartn","accountNumber"]]. Defaults to the built-in pairs.`)),
		mcp.WithOutputSchema[domain.Layout](),
	)
	s.mcpServer.AddTool(groupTool, mcp.NewStructuredToolHandler(s.handleGroupFields))

	// TOOL: validate_form
	validateTool := mcp.NewTool("validate_form",
		mcp.WithDescription("Validate submitted values against the rules of a form."),
		mcp.WithString("form_id", mcp.Required(), mcp.Description("ID of the form")),
		mcp.WithString("values", mcp.Required(), mcp.Description("JSON object of values keyed by field key")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidateForm))
}

func (s *Server) handleListForms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids, err := s.engine.Forms(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(ids)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleFormLayout(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Layout, error) {
	formID, _ := args["form_id"].(string)
	if formID == "" {
		return domain.Layout{}, fmt.Errorf("form_id is required")
	}
	layout, err := s.engine.Layout(ctx, formID)
	if err != nil {
		return domain.Layout{}, fmt.Errorf("layout failed: %w", err)
	}
	return layout, nil
}

func (s *Server) handleGroupFields(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.Layout, error) {
	fieldsStr, _ := args["fields"].(string)
	var fields []domain.Field
	if err := json.Unmarshal([]byte(fieldsStr), &fields); err != nil {
		return domain.Layout{}, fmt.Errorf("invalid fields: %w", err)
	}

	var pairs []grouping.Pair
	if pairsStr, ok := args["pairs"].(string); ok && pairsStr != "" {
		var raw [][]string
		if err := json.Unmarshal([]byte(pairsStr), &raw); err != nil {
			return domain.Layout{}, fmt.Errorf("invalid pairs: %w", err)
		}
		pairs = make([]grouping.Pair, 0, len(raw))
		for i, p := range raw {
			if len(p) != 2 {
				return domain.Layout{}, fmt.Errorf("invalid pairs: pair %d has %d keys, expected 2", i, len(p))
			}
			pairs = append(pairs, grouping.Pair{p[0], p[1]})
		}
	}

	return s.engine.Group(fields, pairs), nil
}

func (s *Server) handleValidateForm(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	formID, _ := args["form_id"].(string)
	values := map[string]any{}
	if valuesStr, ok := args["values"].(string); ok && valuesStr != "" {
		if err := json.Unmarshal([]byte(valuesStr), &values); err != nil {
			return ValidateResponse{}, fmt.Errorf("invalid values: %w", err)
		}
	}

	err := s.engine.Validate(ctx, formID, values)
	if fieldErrs := schema.FieldErrors(err); len(fieldErrs) > 0 {
		return ValidateResponse{Valid: false, Errors: fieldErrs}, nil
	}
	if err != nil {
		return ValidateResponse{}, fmt.Errorf("validate failed: %w", err)
	}
	return ValidateResponse{Valid: true}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: fieldlayout://forms
	s.mcpServer.AddResource(mcp.NewResource("fieldlayout://forms", "Available Forms",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.engine.Forms(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list forms: %w", err)
		}
		jsonBytes, _ := json.Marshal(ids)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "fieldlayout://forms",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
