// Package memory is a process-local store for development and tests. It
// honours the same uniqueness and set semantics as the database stores.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"skillswap/internal/domain/skill"
	"skillswap/internal/domain/user"

	"github.com/google/uuid"
)

type Store struct {
	mu     sync.RWMutex
	users  map[string]user.User
	skills map[string]skill.Skill
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:  make(map[string]user.User),
		skills: make(map[string]skill.Skill),
		now:    time.Now,
	}
}

// Users and Skills expose the store through the domain interfaces.
func (s *Store) Users() *UserRepository   { return &UserRepository{s: s} }
func (s *Store) Skills() *SkillRepository { return &SkillRepository{s: s} }

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, u user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return user.User{}, user.ErrDuplicateEmail
		}
		if existing.Username == u.Username {
			return user.User{}, user.ErrDuplicateUsername
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := r.s.now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	u.Skills = nonNil(u.Skills)
	u.Interests = nonNil(u.Interests)
	u.Matches = nonNil(u.Matches)
	r.s.users[u.ID] = cloneUser(u)
	return cloneUser(u), nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	return r.find(func(u user.User) bool { return u.Email == email })
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (user.User, error) {
	return r.find(func(u user.User) bool { return u.Username == username })
}

func (r *UserRepository) find(match func(user.User) bool) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *UserRepository) GetByIDs(_ context.Context, ids []string) ([]user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]user.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.UsernameTakenByOther(ctx, username, "")
}

func (r *UserRepository) UsernameTakenByOther(_ context.Context, username, exceptID string) (bool, error) {
	_, err := r.find(func(u user.User) bool { return u.Username == username && u.ID != exceptID })
	return err == nil, nil
}

func (r *UserRepository) EmailTakenByOther(_ context.Context, email, exceptID string) (bool, error) {
	_, err := r.find(func(u user.User) bool { return u.Email == email && u.ID != exceptID })
	return err == nil, nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, id string, ch user.ProfileChanges) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.ErrNotFound
	}
	for _, other := range r.s.users {
		if other.ID == id {
			continue
		}
		if other.Email == ch.Email {
			return user.ErrDuplicateEmail
		}
		if other.Username == ch.Username {
			return user.ErrDuplicateUsername
		}
	}
	u.FName, u.LName, u.Email, u.Username, u.Bio = ch.FName, ch.LName, ch.Email, ch.Username, ch.Bio
	u.UpdatedAt = r.s.now().UTC()
	r.s.users[id] = u
	return nil
}

func (r *UserRepository) AddToSet(_ context.Context, id string, field user.SkillField, ids []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.ErrNotFound
	}
	switch field {
	case user.FieldSkills:
		u.Skills = mergeSet(u.Skills, ids)
	case user.FieldInterests:
		u.Interests = mergeSet(u.Interests, ids)
	default:
		return fmt.Errorf("unknown skill field: %d", field)
	}
	u.UpdatedAt = r.s.now().UTC()
	r.s.users[id] = u
	return nil
}

func (r *UserRepository) AddMatch(_ context.Context, id, matchID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Matches = mergeSet(u.Matches, []string{matchID})
	r.s.users[id] = u
	return nil
}

func (r *UserRepository) PushNotification(_ context.Context, id string, n user.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Notifications = append(append([]user.Notification(nil), u.Notifications...), n)
	r.s.users[id] = u
	return nil
}

// Delete removes a user; matches pointing at it become dangling.
func (r *UserRepository) Delete(_ context.Context, id string) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
}

type SkillRepository struct {
	s *Store
}

func (r *SkillRepository) GetAll(_ context.Context) ([]skill.Skill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]skill.Skill, 0, len(r.s.skills))
	for _, sk := range r.s.skills {
		out = append(out, sk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *SkillRepository) GetByNames(_ context.Context, names []string) ([]skill.Skill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]skill.Skill, 0, len(names))
	for _, sk := range r.s.skills {
		for _, n := range names {
			if sk.Name == n {
				out = append(out, sk)
				break
			}
		}
	}
	return out, nil
}

func (r *SkillRepository) Create(_ context.Context, sk skill.Skill) (skill.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.hasName(sk.Name) {
		return skill.Skill{}, skill.ErrDuplicateName
	}
	if sk.ID == "" {
		sk.ID = uuid.NewString()
	}
	sk.CreatedAt = r.s.now().UTC()
	r.s.skills[sk.ID] = sk
	return sk, nil
}

func (r *SkillRepository) EnsureSkills(_ context.Context, items []skill.Skill) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n := 0
	for _, it := range items {
		if r.hasName(it.Name) {
			continue
		}
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		it.CreatedAt = r.s.now().UTC()
		r.s.skills[it.ID] = it
		n++
	}
	return n, nil
}

// Delete drops a catalog entry; user references to it become dangling.
func (r *SkillRepository) Delete(_ context.Context, id string) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.skills, id)
}

func (r *SkillRepository) hasName(name string) bool {
	for _, sk := range r.s.skills {
		if sk.Name == name {
			return true
		}
	}
	return false
}

func mergeSet(dst, add []string) []string {
	out := append([]string(nil), dst...)
	seen := make(map[string]struct{}, len(out)+len(add))
	for _, v := range out {
		seen[v] = struct{}{}
	}
	for _, v := range add {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return nonNil(out)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func cloneUser(u user.User) user.User {
	u.Skills = append([]string{}, u.Skills...)
	u.Interests = append([]string{}, u.Interests...)
	u.Matches = append([]string{}, u.Matches...)
	u.Notifications = append([]user.Notification(nil), u.Notifications...)
	return u
}
