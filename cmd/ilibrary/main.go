// Command ilibrary is a terminal client for the library seat booking
// service: login, seat booking with checkout, subscriptions, and the
// librarian and admin desks.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/ilibrary/ilibrary-go/config"
	"github.com/ilibrary/ilibrary-go/internal/bootstrap"
	apperrors "github.com/ilibrary/ilibrary-go/internal/errors"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	App    *bootstrap.App
}

func main() {
	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if err := printUsage(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}
	logger := bootstrap.InitLogger(cfg.IsDev)

	app, err := bootstrap.BuildApp(cfg, logger)
	if err != nil {
		logger.Error("build services", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal wiring failure to callers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Auth.Restore(ctx); err != nil {
		logger.Warn("session restore failed, continuing anonymous", "error", err)
	}

	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
		App:    app,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		reportFailure(cmdCtx, cmdName, runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

// reportFailure prints the error and, when the server rejected the token,
// drops the stale session so the next command starts anonymous.
func reportFailure(ctx *commandContext, cmdName string, err error) {
	if apperrors.IsUnauthorized(err) {
		if clearErr := ctx.App.Auth.Logout(ctx.Ctx); clearErr != nil {
			ctx.Logger.Warn("clear stale session", "error", clearErr)
		}
		fmt.Fprintln(os.Stderr, "session expired, please log in again")
		return
	}
	ctx.Logger.Error("command failed", "command", cmdName, "error", err)
	fmt.Fprintln(os.Stderr, err)
}

func commands() map[string]command {
	return map[string]command{
		"signup": {
			name:        "signup",
			description: "Register a new account",
			run:         runSignup,
		},
		"login": {
			name:        "login",
			description: "Log in and persist the session",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Clear the persisted session",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the current session and landing destination",
			run:         runWhoami,
		},
		"seats": {
			name:        "seats",
			description: "List seats available for booking",
			run:         runSeats,
		},
		"book": {
			name:        "book",
			description: "Book a seat and print the checkout URL",
			run:         runBook,
		},
		"pending": {
			name:        "pending",
			description: "List bookings awaiting payment",
			run:         runPending,
		},
		"cancel-booking": {
			name:        "cancel-booking",
			description: "Cancel a booking by id",
			run:         runCancelBooking,
		},
		"history": {
			name:        "history",
			description: "Show booking history",
			run:         runHistory,
		},
		"subscribe": {
			name:        "subscribe",
			description: "Buy a subscription plan and print the checkout URL",
			run:         runSubscribe,
		},
		"subscription": {
			name:        "subscription",
			description: "Manage the subscription: status, renew, cancel, list",
			run:         runSubscription,
		},
		"delete-account": {
			name:        "delete-account",
			description: "Delete the account and clear the session",
			run:         runDeleteAccount,
		},
		"verify-qr": {
			name:        "verify-qr",
			description: "Verify a visitor entry QR token (librarian)",
			run:         runVerifyQR,
		},
		"admin": {
			name:        "admin",
			description: "Show the fleet dashboard snapshot (admin)",
			run:         runAdmin,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: ilibrary <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := cmds[name]
		if err := writef(os.Stdout, "  %-16s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

var errMissingArgument = errors.New("missing argument")
