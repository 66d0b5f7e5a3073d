package booking

// Read-only fleet records returned by the admin list endpoints. Shapes follow
// the server's serialized entities, which nest the owning user (and seat)
// rather than referencing them by id.

// AccountRef is the owning-user summary embedded in admin records.
type AccountRef struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SeatRef is the seat summary embedded in admin booking records.
type SeatRef struct {
	SeatNumber string `json:"seatNumber"`
}

// AdminUser is one row of the user fleet listing.
type AdminUser struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	CreatedAt string   `json:"createdAt"`
}

// AdminSeat is one row of the seat fleet listing.
type AdminSeat struct {
	ID         int64  `json:"id"`
	SeatNumber string `json:"seatNumber"`
	Location   string `json:"location"`
	Status     string `json:"status"`
}

// AdminBooking is one row of the booking fleet listing.
type AdminBooking struct {
	ID          int64      `json:"id"`
	User        AccountRef `json:"user"`
	Seat        SeatRef    `json:"seat"`
	BookingDate string     `json:"bookingDate"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	Hours       int        `json:"hrs"`
	Status      string     `json:"status"`
}

// AdminSubscription is one row of the subscription fleet listing.
type AdminSubscription struct {
	ID        int64      `json:"id"`
	User      AccountRef `json:"user"`
	Type      string     `json:"type"`
	Status    string     `json:"status"`
	Price     float64    `json:"price"`
	StartDate string     `json:"startDate"`
	EndDate   string     `json:"endDate"`
}

// AdminSnapshot aggregates the four fleet listings of the dashboard.
type AdminSnapshot struct {
	Users         []AdminUser
	Seats         []AdminSeat
	Bookings      []AdminBooking
	Subscriptions []AdminSubscription
}
