package seeder

import "skillswap/internal/domain/skill"

func Defaults(skills skill.Repository) []Seeder {
	return []Seeder{
		SkillsSeeder{Skills: skills},
	}
}
