// Package mcp exposes the screening pipeline and the tool classifier as MCP
// tools over stdio.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/screening-recommender/internal/domain"
)

const (
	// ServerName is advertised in the MCP initialize handshake.
	ServerName    = "screening-recommender"
	ServerVersion = "v1.0.0"

	ToolAnalyzeClient  = "analyze_client"
	ToolRecommendTools = "recommend_tools"
)

// AnalyzeClientParams names the client to analyze.
type AnalyzeClientParams struct {
	FirstName  string `json:"first_name" jsonschema:"client first name"`
	LastName   string `json:"last_name" jsonschema:"client last name"`
	MiddleName string `json:"middle_name,omitempty" jsonschema:"client middle name, if recorded"`
	Suffix     string `json:"suffix,omitempty" jsonschema:"name suffix such as Jr., if recorded"`
}

// Identity converts the tool parameters to a client identity.
func (p AnalyzeClientParams) Identity() domain.ClientIdentity {
	return domain.ClientIdentity{
		FirstName:  p.FirstName,
		MiddleName: p.MiddleName,
		LastName:   p.LastName,
		Suffix:     p.Suffix,
	}
}

// RecommendToolsResult is the structured output of recommend_tools.
type RecommendToolsResult struct {
	Features         domain.FeatureInput `json:"features" jsonschema:"the features the classifier was run on"`
	RecommendedTools []string            `json:"recommended_tools" jsonschema:"recommended intervention tools, possibly empty"`
}

// Server wraps the SDK server with the screening tools registered.
type Server struct {
	mcpServer   *mcp.Server
	analyzer    domain.Analyzer
	recommender domain.ToolRecommender
	logger      *logrus.Logger
}

// NewServer creates an MCP server backed by the given analyzer and recommender.
func NewServer(logger *logrus.Logger, analyzer domain.Analyzer, recommender domain.ToolRecommender) *Server {
	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		}, nil),
		analyzer:    analyzer,
		recommender: recommender,
		logger:      logger,
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name: ToolAnalyzeClient,
		Description: "Score the client's PHQ-9 and BAI questionnaires, classify the ASQ suicide-risk screen, " +
			"and recommend intervention tools with narrative phrasing.",
	}, s.analyzeClient)
	s.logger.WithField("tool_name", ToolAnalyzeClient).Debug("Registered MCP tool")

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        ToolRecommendTools,
		Description: "Run the tool classifier on an explicit five-feature screening vector.",
	}, s.recommendTools)
	s.logger.WithField("tool_name", ToolRecommendTools).Debug("Registered MCP tool")

	s.logger.WithField("tool_count", 2).Info("Successfully registered all tools")
}

func (s *Server) analyzeClient(ctx context.Context, _ *mcp.CallToolRequest, params AnalyzeClientParams) (*mcp.CallToolResult, *domain.AnalysisResult, error) {
	client := params.Identity()
	if err := client.Validate(); err != nil {
		return nil, nil, toolError(err)
	}

	result, err := s.analyzer.Analyze(ctx, client)
	if err != nil {
		s.logger.WithError(err).WithField("tool_name", ToolAnalyzeClient).Warn("Tool call failed")
		return nil, nil, toolError(err)
	}
	return nil, result, nil
}

func (s *Server) recommendTools(_ context.Context, _ *mcp.CallToolRequest, input domain.FeatureInput) (*mcp.CallToolResult, RecommendToolsResult, error) {
	if err := input.Validate(); err != nil {
		return nil, RecommendToolsResult{}, toolError(err)
	}

	tools, err := s.recommender.Recommend(input.Vector())
	if err != nil {
		s.logger.WithError(err).WithField("tool_name", ToolRecommendTools).Warn("Tool call failed")
		return nil, RecommendToolsResult{}, toolError(err)
	}
	if tools == nil {
		tools = []string{}
	}
	return nil, RecommendToolsResult{Features: input, RecommendedTools: tools}, nil
}

// toolError prefixes err with the same code the HTTP surface reports, so
// MCP clients can branch on it.
func toolError(err error) error {
	_, code := domain.HTTPStatus(err)
	return fmt.Errorf("%s: %s", code, domain.ErrorDetail(err))
}

// Run serves MCP over stdin/stdout until ctx is cancelled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.WithField("server", ServerName).Info("Starting MCP server on stdio")
	if err := s.mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// Connect attaches the server to an arbitrary transport, as used by tests.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcpServer.Connect(ctx, t, nil)
}
