package entities

// ==========================================
// 1. REQUEST MODELS
// ==========================================

type ReservationRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Start       string `json:"start" validate:"required"`
	End         string `json:"end" validate:"required"`
	// RoomID may be omitted; the configured default room is used on create.
	RoomID int `json:"roomId" validate:"omitempty,gt=0"`
}

// ==========================================
// 2. RESPONSE MODELS
// ==========================================

type Reservation struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
	RoomID      int    `json:"roomId"`
	OwnerID     int    `json:"ownerId"`
	OwnerEmail  string `json:"ownerEmail,omitempty"`
	OwnerName   string `json:"ownerName,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

type ReservationResponse struct {
	Message     string      `json:"message"`
	Reservation Reservation `json:"reservation"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}
