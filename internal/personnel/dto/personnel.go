package dto

type CreatePersonnelRequest struct {
	Name    string `json:"name" binding:"required"`
	Role    string `json:"role"`
	Contact string `json:"contact"`
}

// UpdatePersonnelRequest is a partial update; nil fields stay untouched.
type UpdatePersonnelRequest struct {
	Name    *string `json:"name"`
	Role    *string `json:"role"`
	Contact *string `json:"contact"`
}
