package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skillswap/internal/domain/skill"
	"skillswap/internal/domain/user"
	"skillswap/internal/pkg/validate"
	"skillswap/internal/usecase/profile"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrInvalidUsername   = errors.New("username must be 4-15 chars")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrEmailTaken        = errors.New("email already registered")
	ErrMissingFields     = errors.New("missing required fields")
	ErrMissingIdentifier = errors.New("missing identifier")
	ErrSelfMatch         = errors.New("cannot match with yourself")
	ErrInternal          = errors.New("internal error")
)

type EditProfileInput struct {
	FName    string `json:"fname" validate:"max=19"`
	LName    string `json:"lname" validate:"max=19"`
	Email    string `json:"email" validate:"skillswap_email"`
	Username string `json:"username" validate:"min=4,max=15"`
	Bio      string `json:"bio" validate:"max=500"`
}

// ProfileRef identifies a profile by id or by username. ID wins when both
// are set.
type ProfileRef struct {
	ID       string
	Username string
}

type SkillUpdate struct {
	Accepted []string
	Ignored  []string
}

type MatchSummary struct {
	Name     string
	Username string
}

// Notifier delivers a stored notification to the recipient's live sessions.
type Notifier interface {
	Notify(userID string, n user.Notification)
}

type Service struct {
	users     user.Repository
	skills    skill.Repository
	assembler *profile.Assembler
	notifier  Notifier
	validator *validate.Validator

	now func() time.Time
}

func NewService(users user.Repository, skills skill.Repository, notifier Notifier) *Service {
	return &Service{
		users:     users,
		skills:    skills,
		assembler: profile.NewAssembler(users, skills),
		notifier:  notifier,
		validator: validate.New(),
		now:       time.Now,
	}
}

func (s *Service) GetMe(ctx context.Context, userID string) (profile.Profile, error) {
	return s.ViewProfile(ctx, ProfileRef{ID: userID})
}

func (s *Service) ViewProfile(ctx context.Context, ref ProfileRef) (profile.Profile, error) {
	var (
		u   user.User
		err error
	)
	switch {
	case strings.TrimSpace(ref.ID) != "":
		u, err = s.users.GetByID(ctx, strings.TrimSpace(ref.ID))
	case strings.TrimSpace(ref.Username) != "":
		u, err = s.users.GetByUsername(ctx, strings.TrimSpace(ref.Username))
	default:
		return profile.Profile{}, ErrMissingIdentifier
	}
	if err != nil {
		return profile.Profile{}, storeErr(err)
	}

	p, err := s.assembler.Assemble(ctx, u)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return p, nil
}

// EditProfile replaces the editable fields of the caller's profile. Nothing
// is written when validation or a uniqueness check fails.
func (s *Service) EditProfile(ctx context.Context, userID string, in EditProfileInput) (user.User, error) {
	in.FName = strings.TrimSpace(in.FName)
	in.LName = strings.TrimSpace(in.LName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)

	if err := s.validator.Struct(in); err != nil {
		var ve *validate.Error
		if !errors.As(err, &ve) {
			return user.User{}, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		switch {
		case ve.Has("email"):
			return user.User{}, ErrInvalidEmail
		case ve.Has("username"):
			return user.User{}, ErrInvalidUsername
		default:
			return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return user.User{}, storeErr(err)
	}

	taken, err := s.users.UsernameTakenByOther(ctx, in.Username, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if taken {
		return user.User{}, ErrUsernameTaken
	}
	taken, err = s.users.EmailTakenByOther(ctx, in.Email, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if taken {
		return user.User{}, ErrEmailTaken
	}

	err = s.users.UpdateProfile(ctx, userID, user.ProfileChanges{
		FName:    in.FName,
		LName:    in.LName,
		Email:    in.Email,
		Username: in.Username,
		Bio:      in.Bio,
	})
	if err != nil {
		return user.User{}, storeErr(err)
	}

	updated, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, storeErr(err)
	}
	updated.PasswordHash = ""
	return updated, nil
}

// UpdateSkillSet resolves names against the catalog and merges the found
// ids into the selected collection. Unknown names are reported back as
// ignored; they are not an error.
func (s *Service) UpdateSkillSet(ctx context.Context, userID string, field user.SkillField, names []string) (SkillUpdate, error) {
	wanted := cleanNames(names)
	if len(wanted) == 0 {
		return SkillUpdate{}, ErrMissingFields
	}

	found, err := s.skills.GetByNames(ctx, wanted)
	if err != nil {
		return SkillUpdate{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	cat := skill.NewCatalog(found)

	res := SkillUpdate{Accepted: []string{}, Ignored: []string{}}
	ids := make([]string, 0, len(wanted))
	for _, name := range wanted {
		id, ok := cat.IDOf(name)
		if !ok {
			res.Ignored = append(res.Ignored, name)
			continue
		}
		res.Accepted = append(res.Accepted, name)
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return res, nil
	}
	if err := s.users.AddToSet(ctx, userID, field, ids); err != nil {
		return SkillUpdate{}, storeErr(err)
	}
	return res, nil
}

// Matches lists the caller's matches. Matched users that no longer exist
// are skipped.
func (s *Service) Matches(ctx context.Context, userID string) ([]MatchSummary, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	dir, err := s.assembler.Directory(ctx, u.Matches)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	out := make([]MatchSummary, 0, len(u.Matches))
	for _, id := range u.Matches {
		m, ok := dir.Lookup(id)
		if !ok {
			continue
		}
		out = append(out, MatchSummary{Name: m.DisplayName(), Username: m.Username})
	}
	return out, nil
}

func (s *Service) Notifications(ctx context.Context, userID string) ([]user.Notification, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	if u.Notifications == nil {
		return []user.Notification{}, nil
	}
	return u.Notifications, nil
}

// Connect records a match from the caller to the user named target and
// notifies the target.
func (s *Service) Connect(ctx context.Context, userID, target string) ([]MatchSummary, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, ErrMissingFields
	}

	me, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	other, err := s.users.GetByUsername(ctx, target)
	if err != nil {
		return nil, storeErr(err)
	}
	if other.ID == me.ID {
		return nil, ErrSelfMatch
	}

	if err := s.users.AddMatch(ctx, me.ID, other.ID); err != nil {
		return nil, storeErr(err)
	}

	n := user.Notification{
		Type:      user.NotificationTypeMatch,
		Message:   fmt.Sprintf("%s matched with you", me.Username),
		From:      me.Username,
		CreatedAt: s.now().UTC(),
	}
	if err := s.users.PushNotification(ctx, other.ID, n); err != nil {
		return nil, storeErr(err)
	}
	if s.notifier != nil {
		s.notifier.Notify(other.ID, n)
	}

	return s.Matches(ctx, me.ID)
}

func cleanNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// storeErr keeps the domain errors handlers map to client statuses and
// folds everything else into ErrInternal.
func storeErr(err error) error {
	switch {
	case errors.Is(err, user.ErrNotFound):
		return user.ErrNotFound
	case errors.Is(err, user.ErrDuplicateUsername):
		return ErrUsernameTaken
	case errors.Is(err, user.ErrDuplicateEmail):
		return ErrEmailTaken
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
