package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	domainbooking "github.com/ilibrary/ilibrary-go/internal/domain/booking"
)

func runSeats(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("seats", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var asPlan bool
	fs.BoolVar(&asPlan, "plan", false, "Render the floor plan grid instead of a listing")

	if err := fs.Parse(args); err != nil {
		return err
	}

	seats, err := ctx.App.Bookings.AvailableSeats(ctx.Ctx)
	if err != nil {
		return err
	}
	if asPlan {
		return printSeatPlan(seats)
	}
	if len(seats) == 0 {
		return writef(os.Stdout, "no seats available\n")
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(tw, "SEAT\tLOCATION\tSTATUS\n"); err != nil {
		return err
	}
	for _, seat := range seats {
		if err := writef(tw, "%s\t%s\t%s\n", seat.SeatNumber, seat.Location, seat.Status); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// printSeatPlan renders the reading room grid, one floor per row block,
// marking seats that are open for booking.
func printSeatPlan(available []domainbooking.Seat) error {
	open := make(map[string]bool, len(available))
	for _, seat := range available {
		open[seat.SeatNumber] = true
	}

	for i, seat := range domainbooking.SeatPlan() {
		marker := " -- "
		if open[seat] {
			marker = seat
		}
		sep := "  "
		if (i+1)%10 == 0 {
			sep = "\n"
		}
		if (i+1)%20 == 0 {
			sep = "\n\n"
		}
		if err := writef(os.Stdout, "%-5s%s", marker, sep); err != nil {
			return err
		}
	}
	return writef(os.Stdout, "(-- = unavailable)\n")
}

func runBook(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("book", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var req domainbooking.Request
	fs.StringVar(&req.SeatNumber, "seat", "", "Seat number, e.g. G-1")
	fs.IntVar(&req.Hours, "hours", 1, "Booking duration in hours")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if req.SeatNumber == "" {
		return fmt.Errorf("%w: -seat is required", errMissingArgument)
	}

	url, err := ctx.App.Bookings.BookAndPay(ctx.Ctx, req)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "complete your payment at:\n%s\n", url)
}

func runPending(ctx *commandContext, _ []string) error {
	pending, err := ctx.App.Bookings.Pending(ctx.Ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return writef(os.Stdout, "no pending bookings\n")
	}
	return printBookings(pending)
}

func runCancelBooking(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("cancel-booking", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var bookingID string
	fs.StringVar(&bookingID, "id", "", "Booking id to cancel")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if bookingID == "" {
		return fmt.Errorf("%w: -id is required", errMissingArgument)
	}

	msg, err := ctx.App.Profile.CancelBooking(ctx.Ctx, bookingID)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "%s\n", msg)
}

func runHistory(ctx *commandContext, _ []string) error {
	history, err := ctx.App.Profile.BookingHistory(ctx.Ctx)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return writef(os.Stdout, "no bookings yet\n")
	}
	return printBookings(history)
}

func printBookings(bookings []domainbooking.Booking) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(tw, "ID\tDATE\tFROM\tTO\tHOURS\tAMOUNT\tPAID\tSTATUS\n"); err != nil {
		return err
	}
	for _, b := range bookings {
		if err := writef(tw, "%d\t%s\t%s\t%s\t%d\t%.2f\t%t\t%s\n",
			b.ID, b.BookingDate, b.StartTime, b.EndTime, b.Hours, b.Amount, b.PaymentDone, b.Status); err != nil {
			return err
		}
	}
	return tw.Flush()
}
