package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	domainbooking "github.com/ilibrary/ilibrary-go/internal/domain/booking"
)

func runSubscribe(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("subscribe", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var plan string
	fs.StringVar(&plan, "plan", "", "Plan type: WEEKLY, MONTHLY or YEARLY")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if plan == "" {
		return fmt.Errorf("%w: -plan is required", errMissingArgument)
	}
	plan = strings.ToUpper(plan)

	if err := ctx.App.Subscriptions.Buy(ctx.Ctx, plan); err != nil {
		return err
	}

	url, err := ctx.App.Subscriptions.PaymentRedirect(ctx.Ctx)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "complete your payment at:\n%s\n", url)
}

func runSubscription(ctx *commandContext, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: subcommand required (status, renew, cancel, list, active)", errMissingArgument)
	}

	switch args[0] {
	case "status":
		msg, err := ctx.App.Subscriptions.Status(ctx.Ctx)
		if err != nil {
			return err
		}
		return writef(os.Stdout, "%s\n", msg)
	case "renew":
		msg, err := ctx.App.Subscriptions.Renew(ctx.Ctx)
		if err != nil {
			return err
		}
		return writef(os.Stdout, "%s\n", msg)
	case "cancel":
		msg, err := ctx.App.Subscriptions.Cancel(ctx.Ctx)
		if err != nil {
			return err
		}
		return writef(os.Stdout, "%s\n", msg)
	case "active":
		sub, err := ctx.App.Profile.ActiveSubscription(ctx.Ctx)
		if err != nil {
			return err
		}
		if sub == nil {
			return writef(os.Stdout, "no active subscription\n")
		}
		return printSubscriptions([]domainbooking.Subscription{*sub})
	case "list":
		subs, err := ctx.App.Profile.AllSubscriptions(ctx.Ctx)
		if err != nil {
			return err
		}
		if len(subs) == 0 {
			return writef(os.Stdout, "no subscriptions\n")
		}
		return printSubscriptions(subs)
	default:
		return fmt.Errorf("unknown subscription subcommand %q", args[0])
	}
}

func printSubscriptions(subs []domainbooking.Subscription) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(tw, "ID\tTYPE\tSTATUS\tSTART\tEND\tAMOUNT\n"); err != nil {
		return err
	}
	for _, s := range subs {
		if err := writef(tw, "%d\t%s\t%s\t%s\t%s\t%.2f\n",
			s.ID, s.Type, s.Status, s.StartDate, s.EndDate, s.Amount); err != nil {
			return err
		}
	}
	return tw.Flush()
}
