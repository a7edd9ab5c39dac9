package dto

import ucuser "skillswap/internal/usecase/user"

type MatchResponse struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

func NewMatchResponses(items []ucuser.MatchSummary) []MatchResponse {
	out := make([]MatchResponse, 0, len(items))
	for _, m := range items {
		out = append(out, MatchResponse{Name: m.Name, Username: m.Username})
	}
	return out
}
