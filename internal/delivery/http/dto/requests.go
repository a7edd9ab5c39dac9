package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FName    string `json:"fname"`
	LName    string `json:"lname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type EditProfileRequest struct {
	FName    string `json:"fname"`
	LName    string `json:"lname"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
}

type SkillsRequest struct {
	Skills NameList `json:"skills"`
}

type InterestsRequest struct {
	Interests NameList `json:"interests"`
}

type ConnectRequest struct {
	Username string `json:"username"`
}

type CreateSkillRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// NameList accepts either a single JSON string or an array of strings.
type NameList []string

func (n *NameList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = nil
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NameList{s}
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return fmt.Errorf("expected a name or a list of names: %w", err)
	}
	*n = list
	return nil
}
