package dto

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed accepted rejected"`
	Notes  string `json:"notes" validate:"omitempty,max=2000"`
}

// ApplicationStats summarizes a seeker's applications. Every status key is
// present, zero-valued when the seeker has none in that state.
type ApplicationStats struct {
	Total    int64            `json:"total"`
	Today    int64            `json:"today"`
	ByStatus map[string]int64 `json:"by_status"`
}
