package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/azizzya/zozh-bot/internal/errors"
	"github.com/azizzya/zozh-bot/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	loc *time.Location
	now func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, loc *time.Location) *Handlers {
	if loc == nil {
		loc = time.Local
	}
	return &Handlers{db: db, loc: loc, now: time.Now}
}

// LogRequest represents the arguments for meal_log.
type LogRequest struct {
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}

// TodayRequest represents the arguments for meal_today.
type TodayRequest struct {
	UserID       int64  `json:"user_id"`
	Date         string `json:"date,omitempty"`
	IncludeMeals bool   `json:"include_meals,omitempty"`
}

// SummaryRequest represents the arguments for meal_summary.
type SummaryRequest struct {
	Date string `json:"date,omitempty"`
}

// HandleLog handles the meal_log tool call.
func (h *Handlers) HandleLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LogRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.LogMeal(ctx, h.db, ops.LogInput{
		UserID:     input.UserID,
		Text:       input.Text,
		ReceivedAt: h.now(),
		Location:   h.loc,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleToday handles the meal_today tool call.
func (h *Handlers) HandleToday(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TodayRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	day, err := h.day(input.Date, h.now())
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.DayTotal(ctx, h.db, ops.DayTotalInput{
		UserID:       input.UserID,
		Day:          day,
		Location:     h.loc,
		IncludeMeals: input.IncludeMeals,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSummary handles the meal_summary tool call.
func (h *Handlers) HandleSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SummaryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	day, err := h.day(input.Date, ops.PreviousDayWindow(h.now(), h.loc).Start)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.DaySummaries(ctx, h.db, day, h.loc)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// day resolves an optional YYYY-MM-DD argument, falling back to def.
func (h *Handlers) day(date string, def time.Time) (time.Time, error) {
	if date == "" {
		return def, nil
	}
	t, err := ops.ParseDate(date, h.loc)
	if err != nil {
		return time.Time{}, errors.NewInvalidRequest("date must be YYYY-MM-DD")
	}
	return t, nil
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are never exposed.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if zErr, ok := err.(*errors.ZozhError); ok {
		errorObj := map[string]any{
			"code":    zErr.Code,
			"message": zErr.Message,
			"status":  zErr.Status,
		}
		if zErr.Code != errors.ErrInternal && zErr.Details != nil {
			errorObj["details"] = zErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
