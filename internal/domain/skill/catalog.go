package skill

// Catalog is an immutable id-indexed snapshot of the skill catalog.
type Catalog struct {
	byID   map[string]Skill
	byName map[string]Skill
}

func NewCatalog(items []Skill) Catalog {
	c := Catalog{
		byID:   make(map[string]Skill, len(items)),
		byName: make(map[string]Skill, len(items)),
	}
	for _, it := range items {
		c.byID[it.ID] = it
		c.byName[it.Name] = it
	}
	return c
}

// NameOf returns the catalog name for id, or def when the id is dangling.
func (c Catalog) NameOf(id, def string) string {
	if s, ok := c.byID[id]; ok {
		return s.Name
	}
	return def
}

func (c Catalog) IDOf(name string) (string, bool) {
	s, ok := c.byName[name]
	if !ok {
		return "", false
	}
	return s.ID, true
}

func (c Catalog) Len() int {
	return len(c.byID)
}
