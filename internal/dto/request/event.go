package request

type EventRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	StartsAt    string  `json:"starts_at" validate:"required"` // RFC3339
	Location    string  `json:"location" validate:"required,min=1,max=200"`
	Category    string  `json:"category" validate:"required,oneof=concert theatre sport conference other"`
	Price       float64 `json:"price" validate:"gte=0"`
	TotalSeats  int     `json:"total_seats" validate:"required,min=1,max=1000"`
}

type EventUpdateRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	StartsAt    *string  `json:"starts_at,omitempty"`
	Location    *string  `json:"location,omitempty" validate:"omitempty,min=1,max=200"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,oneof=concert theatre sport conference other"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	TotalSeats  *int     `json:"total_seats,omitempty" validate:"omitempty,min=1,max=1000"`

	// Force acknowledges that changing total_seats regenerates the seat map
	// and discards every existing booking on the event.
	Force bool `json:"force,omitempty"`
}
