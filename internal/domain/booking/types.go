package booking

// Package booking contains domain-level types for seats, bookings, and
// subscriptions as the remote API reports them. The server is authoritative;
// nothing here is persisted by the client beyond an in-flight request.

import "fmt"

// Request is a seat reservation attempt.
type Request struct {
	SeatNumber string `json:"seatNumber"`
	Hours      int    `json:"hours"`
}

// Seat is a reading room seat as reported by the availability endpoint.
type Seat struct {
	ID         int64  `json:"id"`
	SeatNumber string `json:"seatNumber"`
	Location   string `json:"location"`
	Status     string `json:"status"`
}

// Booking is one entry of the user's booking history.
type Booking struct {
	ID          int64   `json:"id"`
	SeatID      int64   `json:"seat_id"`
	BookingDate string  `json:"bookingDate"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Status      string  `json:"status"`
	Hours       int     `json:"hrs"`
	Amount      float64 `json:"amt"`
	PaymentDone bool    `json:"isPaymentDone"`
}

// Subscription is a subscription record as reported by the server.
type Subscription struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"`
	Status    string  `json:"status"`
	StartTime string  `json:"startTime"`
	Amount    float64 `json:"amount"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
}

// Plan types accepted by the subscription purchase endpoint.
const (
	PlanWeekly  = "WEEKLY"
	PlanMonthly = "MONTHLY"
	PlanYearly  = "YEARLY"
)

// ValidPlan reports whether t is a recognized subscription plan type.
func ValidPlan(t string) bool {
	switch t {
	case PlanWeekly, PlanMonthly, PlanYearly:
		return true
	}
	return false
}

// Floor prefixes of the seat plan.
const (
	FloorGround  = "G"
	FloorFirst   = "F"
	FloorSpecial = "S"
)

const seatsPerFloor = 20

// ValidSeatNumber reports whether s names a seat of the reading room plan.
func ValidSeatNumber(s string) bool {
	for _, seat := range SeatPlan() {
		if seat == s {
			return true
		}
	}
	return false
}

// SeatPlan returns all seat numbers of the reading room in display order:
// ground floor G-1..G-20, first floor F-21..F-40, special floor S-41..S-60.
func SeatPlan() []string {
	seats := make([]string, 0, 3*seatsPerFloor)
	for i := 1; i <= seatsPerFloor; i++ {
		seats = append(seats, fmt.Sprintf("%s-%d", FloorGround, i))
	}
	for i := seatsPerFloor + 1; i <= 2*seatsPerFloor; i++ {
		seats = append(seats, fmt.Sprintf("%s-%d", FloorFirst, i))
	}
	for i := 2*seatsPerFloor + 1; i <= 3*seatsPerFloor; i++ {
		seats = append(seats, fmt.Sprintf("%s-%d", FloorSpecial, i))
	}
	return seats
}
