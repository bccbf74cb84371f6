// ABOUTME: MCP tool implementations for BMI measurements.
// ABOUTME: Provides compute_bmi and list_history over the session workflow.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/bmi/internal/history"
	"github.com/harperreed/bmi/internal/models"
	"github.com/harperreed/bmi/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// defaultListLimit applies when list_history is called without a limit.
const defaultListLimit = 20

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "compute_bmi",
		Description: "Compute Body Mass Index from weight in pounds and height in inches, classify it, and record it in history",
	}, s.handleComputeBMI)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_history",
		Description: "List recorded BMI measurements, most recent first",
	}, s.handleListHistory)
}

// Tool input/output types

type computeInput struct {
	Weight string `json:"weight" jsonschema:"Weight in pounds, as a decimal number"`
	Height string `json:"height" jsonschema:"Height in inches, as a decimal number"`
}

type computeOutput struct {
	ID       int64   `json:"id"`
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
	Message  string  `json:"message"`
}

type listHistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type listHistoryOutput struct {
	Count        int                  `json:"count"`
	Measurements []models.Measurement `json:"measurements"`
	Lines        []string             `json:"lines"`
}

// Tool handlers

func (s *Server) handleComputeBMI(ctx context.Context, req *mcp.CallToolRequest, input computeInput) (*mcp.CallToolResult, computeOutput, error) {
	var alert *session.Alert
	c := session.New(s.store,
		session.WithLogger(s.logger),
		session.WithAlerter(session.AlertFunc(func(a session.Alert) {
			alert = &a
		})),
	)

	c.SetWeight(input.Weight)
	c.SetHeight(input.Height)

	result, err := c.Compute(ctx)
	if err != nil {
		if alert != nil {
			return nil, computeOutput{}, errors.New(alert.Message)
		}
		return nil, computeOutput{}, err
	}

	last := c.Last()
	return nil, computeOutput{
		ID:       c.LastRecordID(),
		BMI:      last.Value(),
		Category: string(last.Category()),
		Message:  result,
	}, nil
}

func (s *Server) handleListHistory(ctx context.Context, req *mcp.CallToolRequest, input listHistoryInput) (*mcp.CallToolResult, listHistoryOutput, error) {
	if input.Limit <= 0 {
		input.Limit = defaultListLimit
	}

	view := history.New(s.store, history.Limit(input.Limit))
	if err := view.Load(ctx); err != nil {
		return nil, listHistoryOutput{}, fmt.Errorf("failed to list history: %w", err)
	}

	items := view.Items()
	return nil, listHistoryOutput{
		Count:        len(items),
		Measurements: items,
		Lines:        view.Lines(),
	}, nil
}
