package sections

import (
	"github.com/Zachkp/portfolio/internal/crud"
	"github.com/Zachkp/portfolio/internal/entities"
	"github.com/Zachkp/portfolio/internal/loader"
)

var (
	ProjectsMeta = Meta{
		Name:      entities.CollectionProjects,
		Anchor:    "projects",
		Title:     "PROJECT_LOGS",
		Subtitle:  "// DEPLOYED_SOLUTIONS",
		EmptyText: "NO_DATA_FOUND_IN_SECTOR_7",
		Skeletons: 3,
	}
	SkillsMeta = Meta{
		Name:      entities.CollectionSkills,
		Anchor:    "skills",
		Title:     "SKILL_MATRIX",
		Subtitle:  "Core competencies and technical proficiencies loaded into memory.",
		EmptyText: "MODULES_OFFLINE",
		Skeletons: 4,
	}
	PassionsMeta = Meta{
		Name:      entities.CollectionPassions,
		Anchor:    "passion",
		Title:     "MISSION_OBJECTIVES",
		Subtitle:  "Exploring the frontiers of technology and human potential.",
		EmptyText: "ARCHIVES_EMPTY",
		Skeletons: 1,
	}
)

func Projects(r crud.Reader, opts ...loader.Option) Section {
	return New(ProjectsMeta, crud.Fetcher[entities.Project](r), opts...)
}

func Skills(r crud.Reader, opts ...loader.Option) Section {
	return New(SkillsMeta, crud.Fetcher[entities.Skill](r), opts...)
}

func Passions(r crud.Reader, opts ...loader.Option) Section {
	return New(PassionsMeta, crud.Fetcher[entities.Passion](r), opts...)
}

// Portfolio is the home page: projects, skills and passions in that order.
func Portfolio(r crud.Reader, opts ...loader.Option) *Page {
	return NewPage(Projects(r, opts...), Skills(r, opts...), Passions(r, opts...))
}
