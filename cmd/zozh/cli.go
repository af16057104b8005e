package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/azizzya/zozh-bot/internal/clock"
	"github.com/azizzya/zozh-bot/internal/config"
	"github.com/azizzya/zozh-bot/internal/errors"
	"github.com/azizzya/zozh-bot/internal/mcp"
	"github.com/azizzya/zozh-bot/internal/ops"
	"github.com/azizzya/zozh-bot/internal/schedule"
	"github.com/azizzya/zozh-bot/internal/telegram"
)

// maxStdinBytes caps meal text read from stdin.
const maxStdinBytes = 64 * 1024

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "zozh",
		Usage:   "Telegram calorie and protein log",
		Version: Version,
		Commands: []*cli.Command{
			runCmd(db, cfg),
			mcpCmd(db, cfg),
			logCmd(db, cfg),
			todayCmd(db, cfg),
			summaryCmd(db, cfg),
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("unknown command %q", c.Args().First())))
			}
			return runBot(c.Context, db, cfg)
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// runCmd creates the run command.
func runCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the Telegram bot and the midnight summary scheduler (default)",
		Action: func(c *cli.Context) error {
			return runBot(c.Context, db, cfg)
		},
	}
}

// mcpCmd creates the mcp command.
func mcpCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve meal tools over MCP stdio",
		Action: func(c *cli.Context) error {
			loc, err := location(cfg)
			if err != nil {
				return outputError(err)
			}
			if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
				log.Warn().Strs("tools", unknown).Msg("ignoring unknown disabled_tools entries")
			}
			return mcp.Run(db, cfg, loc, Version)
		},
	}
}

// logCmd creates the log command.
func logCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "log",
		Usage: "Log a meal for a user (reads meal text from stdin)",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "user", Aliases: []string{"u"}, Required: true, Usage: "Telegram user id"},
			&cli.BoolFlag{Name: "reply", Usage: "Print the chat reply instead of JSON"},
		},
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("meal text must be piped via stdin"))
			}
			text, err := readStdin(maxStdinBytes)
			if err != nil {
				return outputError(err)
			}
			loc, err := location(cfg)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.LogMeal(c.Context, db, ops.LogInput{
				UserID:     c.Int64("user"),
				Text:       text,
				ReceivedAt: time.Now(),
				Location:   loc,
			})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("reply") {
				_, err := fmt.Fprintln(os.Stdout, output.Reply)
				return err
			}
			return outputJSON(output)
		},
	}
}

// todayCmd creates the today command.
func todayCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "today",
		Usage: "Show a user's totals for a day",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "user", Aliases: []string{"u"}, Required: true, Usage: "Telegram user id"},
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Day as YYYY-MM-DD (default: today)"},
			&cli.BoolFlag{Name: "meals", Usage: "List the individual meals"},
		},
		Action: func(c *cli.Context) error {
			loc, err := location(cfg)
			if err != nil {
				return outputError(err)
			}
			day, err := parseDay(c.String("date"), time.Now(), loc)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.DayTotal(c.Context, db, ops.DayTotalInput{
				UserID:       c.Int64("user"),
				Day:          day,
				Location:     loc,
				IncludeMeals: c.Bool("meals"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// summaryCmd creates the summary command.
func summaryCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Preview the end-of-day summaries without sending them",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Day as YYYY-MM-DD (default: yesterday)"},
		},
		Action: func(c *cli.Context) error {
			loc, err := location(cfg)
			if err != nil {
				return outputError(err)
			}
			day, err := parseDay(c.String("date"), ops.PreviousDayWindow(time.Now(), loc).Start, loc)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.DaySummaries(c.Context, db, day, loc)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// runBot connects to Telegram and runs the bot alongside the daily
// scheduler until SIGINT or SIGTERM.
func runBot(parent context.Context, db *sql.DB, cfg *config.Config) error {
	loc, err := location(cfg)
	if err != nil {
		return outputError(err)
	}
	api, err := telegram.NewAPI(cfg.BotToken)
	if err != nil {
		return outputError(err)
	}
	log.Info().Str("bot", api.Self.UserName).Str("timezone", loc.String()).Msg("connected to telegram")

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := clock.Real()
	bot := telegram.NewBot(api, db, cfg, loc, c)
	daily := schedule.NewDaily(c, loc, rollupJob(db, bot, loc))

	return serve(ctx, bot.Run, daily.Run)
}

// serve runs each component until ctx is cancelled or one of them fails.
func serve(ctx context.Context, components ...func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, run := range components {
		g.Go(func() error { return run(ctx) })
	}
	return g.Wait()
}

// rollupJob sends the previous day's summaries through notifier.
func rollupJob(db *sql.DB, notifier ops.Notifier, loc *time.Location) schedule.Job {
	return func(ctx context.Context, firedAt time.Time) {
		if _, err := ops.Rollup(ctx, db, notifier, ops.RollupInput{FiredAt: firedAt, Location: loc}); err != nil {
			log.Error().Err(err).Time("fired_at", firedAt).Msg("daily rollup failed")
		}
	}
}

// Helper functions

// location resolves the configured time zone.
func location(cfg *config.Config) (*time.Location, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid timezone %q", cfg.Timezone))
	}
	return loc, nil
}

// parseDay resolves an optional YYYY-MM-DD value, falling back to def.
func parseDay(s string, def time.Time, loc *time.Location) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	t, err := ops.ParseDate(s, loc)
	if err != nil {
		return time.Time{}, errors.NewInvalidRequest("date must be YYYY-MM-DD")
	}
	return t, nil
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if zErr, ok := err.(*errors.ZozhError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", zErr.Code, zErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads up to limit bytes from stdin.
func readStdin(limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, limit+1))
	if err != nil {
		return "", errors.NewInternal(err)
	}
	if int64(len(data)) > limit {
		return "", errors.NewInvalidRequest(fmt.Sprintf("input exceeds %d bytes", limit))
	}
	return strings.TrimSpace(string(data)), nil
}
