package seeder

import (
	"context"
	"fmt"

	"skillswap/internal/domain/skill"
)

// SkillsSeeder upserts the default skill catalog. Existing names are kept.
type SkillsSeeder struct {
	Skills skill.Repository
}

func (SkillsSeeder) Name() string { return "skills" }

func (s SkillsSeeder) Run(ctx context.Context) (int, error) {
	if s.Skills == nil {
		return 0, fmt.Errorf("nil skill repository")
	}

	items := []struct {
		Name     string
		Category string
	}{
		{Name: "React Development", Category: "Technology"},
		{Name: "Python Programming", Category: "Technology"},
		{Name: "Go", Category: "Technology"},
		{Name: "UI/UX Design", Category: "Design"},
		{Name: "Graphic Design", Category: "Design"},
		{Name: "Spanish", Category: "Languages"},
		{Name: "French", Category: "Languages"},
		{Name: "Guitar Playing", Category: "Music"},
		{Name: "Piano", Category: "Music"},
		{Name: "Italian Cooking", Category: "Cooking"},
		{Name: "Baking", Category: "Cooking"},
		{Name: "Yoga", Category: "Sports"},
		{Name: "Tennis", Category: "Sports"},
		{Name: "Watercolor Painting", Category: "Art"},
		{Name: "Public Speaking", Category: "Business"},
		{Name: "Marketing", Category: "Business"},
		{Name: "Creative Writing", Category: "Writing"},
		{Name: "Photography", Category: "Photography"},
	}

	out := make([]skill.Skill, 0, len(items))
	for _, it := range items {
		out = append(out, skill.Skill{Name: it.Name, Category: it.Category})
	}
	return s.Skills.EnsureSkills(ctx, out)
}
