package entities

// Request body for the rooms endpoints
type RoomRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" validate:"required,gt=0"`
	ImageURL    string `json:"imageURL" validate:"omitempty,url"`
	Position    int    `json:"position"`
}

type Room struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	ImageURL    string `json:"imageURL"`
	Position    int    `json:"position"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

type RoomResponse struct {
	Message string `json:"message"`
	Room    Room   `json:"room"`
}
