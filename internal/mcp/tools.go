package mcp

import "github.com/mark3labs/mcp-go/mcp"

var logToolDef = mcp.NewTool("meal_log",
	mcp.WithDescription("Log a meal for a user. Each line of text is `<name> <kcal per 100g> <protein per 100g> <weight g>`; "+
		"invalid lines are skipped. Returns per-item values, message totals and the user's running total for today."),
	mcp.WithNumber("user_id", mcp.Required(), mcp.Description("Telegram user id")),
	mcp.WithString("text", mcp.Required(), mcp.Description("Meal description, one item per line")),
)

var todayToolDef = mcp.NewTool("meal_today",
	mcp.WithDescription("Calorie and protein totals for one user over a calendar day."),
	mcp.WithNumber("user_id", mcp.Required(), mcp.Description("Telegram user id")),
	mcp.WithString("date", mcp.Description("Day as YYYY-MM-DD (default: today)")),
	mcp.WithBoolean("include_meals", mcp.Description("List the individual meals (default: false)")),
)

var summaryToolDef = mcp.NewTool("meal_summary",
	mcp.WithDescription("Preview the end-of-day summaries for every user who logged a meal on a day. Nothing is sent."),
	mcp.WithString("date", mcp.Description("Day as YYYY-MM-DD (default: yesterday)")),
)
