package response

import "course-reservation/internal/domain/user"

type IdentityResponse struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func FromIdentity(i user.Identity) *IdentityResponse {
	return &IdentityResponse{
		UserID:    i.UserID,
		Email:     i.Email,
		Role:      i.Role.String(),
		FirstName: i.FirstName,
		LastName:  i.LastName,
	}
}
