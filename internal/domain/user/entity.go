package user

import "time"

type User struct {
	ID            string
	FName         string
	LName         string
	Email         string
	Username      string
	PasswordHash  string
	Bio           string
	Skills        []string
	Interests     []string
	Matches       []string
	Notifications []Notification
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DisplayName is "fname lname" as shown in match lists.
func (u User) DisplayName() string {
	return u.FName + " " + u.LName
}

const NotificationTypeMatch = "match"

type Notification struct {
	Type      string    `json:"type" bson:"type"`
	Message   string    `json:"message" bson:"message"`
	From      string    `json:"from" bson:"from"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ProfileChanges holds the replacement fields of a profile edit.
type ProfileChanges struct {
	FName    string
	LName    string
	Email    string
	Username string
	Bio      string
}

// SkillField selects which skill-id collection of a user is updated.
type SkillField int

const (
	FieldSkills SkillField = iota + 1
	FieldInterests
)

func (f SkillField) String() string {
	switch f {
	case FieldSkills:
		return "skills"
	case FieldInterests:
		return "interests"
	default:
		return "unknown"
	}
}
