package user

// Directory resolves user ids loaded in one batch. Ids that were not found
// resolve to the caller's default instead of failing.
type Directory struct {
	byID map[string]User
}

func NewDirectory(users []User) Directory {
	d := Directory{byID: make(map[string]User, len(users))}
	for _, u := range users {
		d.byID[u.ID] = u
	}
	return d
}

func (d Directory) Lookup(id string) (User, bool) {
	u, ok := d.byID[id]
	return u, ok
}

func (d Directory) UsernameOf(id, def string) string {
	if u, ok := d.byID[id]; ok {
		return u.Username
	}
	return def
}
