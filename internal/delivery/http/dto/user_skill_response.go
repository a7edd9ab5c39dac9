package dto

import (
	"skillswap/internal/usecase"
	ucuser "skillswap/internal/usecase/user"
)

type SkillUpdateResponse struct {
	Accepted []string `json:"accepted"`
	Ignored  []string `json:"ignored"`
}

func NewSkillUpdateResponse(u ucuser.SkillUpdate) SkillUpdateResponse {
	return SkillUpdateResponse{Accepted: u.Accepted, Ignored: u.Ignored}
}

type SkillResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func NewSkillResponse(it usecase.SkillItem) SkillResponse {
	return SkillResponse{ID: it.ID, Name: it.Name, Category: it.Category}
}
