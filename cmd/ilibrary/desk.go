package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

func runDeleteAccount(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("delete-account", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var yes bool
	fs.BoolVar(&yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if !yes {
		if err := writef(os.Stdout, "this permanently deletes your account. type 'yes' to continue: "); err != nil {
			return err
		}
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read confirmation: %w", err)
		}
		if strings.TrimSpace(line) != "yes" {
			return writef(os.Stdout, "aborted\n")
		}
	}

	if err := ctx.App.Profile.DeleteAccount(ctx.Ctx); err != nil {
		return err
	}
	// The account is gone server-side; the local session is now useless.
	if err := ctx.App.Auth.Logout(ctx.Ctx); err != nil {
		return err
	}
	return writef(os.Stdout, "account deleted\n")
}

func runVerifyQR(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("verify-qr", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var qrToken string
	fs.StringVar(&qrToken, "token", "", "QR token presented by the visitor")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if qrToken == "" {
		return fmt.Errorf("%w: -token is required", errMissingArgument)
	}

	verdict, err := ctx.App.Librarian.VerifyQR(ctx.Ctx, qrToken)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "%s\n", verdict)
}

func runAdmin(ctx *commandContext, _ []string) error {
	snap, err := ctx.App.Admin.Snapshot(ctx.Ctx)
	if err != nil {
		return err
	}

	if err := writef(os.Stdout, "users: %d  seats: %d  bookings: %d  subscriptions: %d\n\n",
		len(snap.Users), len(snap.Seats), len(snap.Bookings), len(snap.Subscriptions)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(tw, "USER\tEMAIL\tROLES\n"); err != nil {
		return err
	}
	for _, u := range snap.Users {
		if err := writef(tw, "%s\t%s\t%s\n", u.Username, u.Email, strings.Join(u.Roles, ",")); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if err := writef(os.Stdout, "\n"); err != nil {
		return err
	}

	tw = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(tw, "BOOKING\tUSER\tSEAT\tDATE\tHOURS\tSTATUS\n"); err != nil {
		return err
	}
	for _, b := range snap.Bookings {
		if err := writef(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
			b.ID, b.User.Username, b.Seat.SeatNumber, b.BookingDate, b.Hours, b.Status); err != nil {
			return err
		}
	}
	return tw.Flush()
}
