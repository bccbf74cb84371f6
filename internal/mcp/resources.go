// ABOUTME: MCP resource implementations for BMI measurements.
// ABOUTME: Provides bmi://history and bmi://latest resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/bmi/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	historyURI = "bmi://history"
	latestURI  = "bmi://latest"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         historyURI,
		Name:        "BMI History",
		Description: "Every recorded BMI measurement, most recent first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         latestURI,
		Name:        "Latest BMI",
		Description: "The most recent BMI measurement and how many are recorded",
		MIMEType:    "application/json",
	}, s.handleLatestResource)
}

// Resource handlers

func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	measurements, err := s.store.ListAll(ctx).Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}

	data, err := storage.ExportJSON(measurements, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return jsonResource(historyURI, data), nil
}

func (s *Server) handleLatestResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	measurements, err := s.store.ListAll(ctx).Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"count":        len(measurements),
		"latest":       nil,
	}
	if len(measurements) > 0 {
		result["latest"] = measurements[0]
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return jsonResource(latestURI, data), nil
}

func jsonResource(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}
