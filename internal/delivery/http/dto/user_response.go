package dto

import (
	"skillswap/internal/domain/user"
	"skillswap/internal/usecase/profile"
)

// ProfileResponse is the display-ready user record returned by login and
// the profile endpoints.
type ProfileResponse struct {
	ID            string              `json:"id"`
	FName         string              `json:"fname"`
	LName         string              `json:"lname"`
	Username      string              `json:"username"`
	Email         string              `json:"email"`
	Skills        []string            `json:"skills"`
	Interests     []string            `json:"interests"`
	Matches       []string            `json:"matches"`
	Bio           string              `json:"bio"`
	Notifications []user.Notification `json:"notifications"`
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	return ProfileResponse{
		ID:            p.ID,
		FName:         p.FName,
		LName:         p.LName,
		Username:      p.Username,
		Email:         p.Email,
		Skills:        p.Skills,
		Interests:     p.Interests,
		Matches:       p.Matches,
		Bio:           p.Bio,
		Notifications: p.Notifications,
	}
}

type RegisterResponse struct {
	Username string `json:"username"`
}

type EditProfileResponse struct {
	ID       string `json:"id"`
	FName    string `json:"fname"`
	LName    string `json:"lname"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
}

func NewEditProfileResponse(u user.User) EditProfileResponse {
	return EditProfileResponse{
		ID:       u.ID,
		FName:    u.FName,
		LName:    u.LName,
		Username: u.Username,
		Email:    u.Email,
		Bio:      u.Bio,
	}
}
