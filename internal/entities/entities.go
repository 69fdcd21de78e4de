// Package entities holds the record types of the portfolio collections. Field
// names follow the CMS documents the data service stores, so records decode
// straight from a collection listing.
package entities

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Collection identifiers.
const (
	CollectionProjects = "projects"
	CollectionSkills   = "skills"
	CollectionPassions = "passions"
)

// Meta carries the fields every record has. The timestamps are whatever the
// data service stored and are only ever displayed.
type Meta struct {
	ID          string `json:"_id" yaml:"_id"`
	CreatedDate any    `json:"_createdDate,omitempty" yaml:"_createdDate,omitempty"`
	UpdatedDate any    `json:"_updatedDate,omitempty" yaml:"_updatedDate,omitempty"`
}

type Project struct {
	Meta         `yaml:",inline"`
	ProjectTitle string `json:"projectTitle,omitempty" yaml:"projectTitle,omitempty"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	TechStack    string `json:"techStack,omitempty" yaml:"techStack,omitempty"`
	GithubURL    string `json:"githubUrl,omitempty" yaml:"githubUrl,omitempty"`
	LiveDemoURL  string `json:"liveDemoUrl,omitempty" yaml:"liveDemoUrl,omitempty"`
	ProjectImage string `json:"projectImage,omitempty" yaml:"projectImage,omitempty"`
}

// Technologies splits the comma separated tech stack into trimmed badges.
func (p Project) Technologies() []string {
	if strings.TrimSpace(p.TechStack) == "" {
		return nil
	}
	parts := strings.Split(p.TechStack, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

type Skill struct {
	Meta              `yaml:",inline"`
	SkillName         string   `json:"skillName,omitempty" yaml:"skillName,omitempty"`
	SkillImage        string   `json:"skillImage,omitempty" yaml:"skillImage,omitempty"`
	Category          string   `json:"category,omitempty" yaml:"category,omitempty"`
	ProficiencyLevel  string   `json:"proficiencyLevel,omitempty" yaml:"proficiencyLevel,omitempty"`
	Description       string   `json:"description,omitempty" yaml:"description,omitempty"`
	YearsOfExperience *float64 `json:"yearsOfExperience,omitempty" yaml:"yearsOfExperience,omitempty"`
}

// ExperienceLabel renders "N YRS EXP", or "MASTERY" when no years are set.
func (s Skill) ExperienceLabel() string {
	if s.YearsOfExperience == nil || *s.YearsOfExperience == 0 {
		return "MASTERY"
	}
	return strconv.FormatFloat(*s.YearsOfExperience, 'f', -1, 64) + " YRS EXP"
}

// UnmarshalJSON accepts yearsOfExperience as a number or a numeric string.
// Any other value leaves it unset.
func (s *Skill) UnmarshalJSON(data []byte) error {
	type plain Skill
	aux := struct {
		*plain
		YearsOfExperience json.RawMessage `json:"yearsOfExperience,omitempty"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.YearsOfExperience = parseYears(aux.YearsOfExperience)
	return nil
}

func parseYears(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return nil
	}
	return &n
}

type Passion struct {
	Meta               `yaml:",inline"`
	TopicTitle         string `json:"topicTitle,omitempty" yaml:"topicTitle,omitempty"`
	Description        string `json:"description,omitempty" yaml:"description,omitempty"`
	InspirationalQuote string `json:"inspirationalQuote,omitempty" yaml:"inspirationalQuote,omitempty"`
	QuoteAuthor        string `json:"quoteAuthor,omitempty" yaml:"quoteAuthor,omitempty"`
	TopicImage         string `json:"topicImage,omitempty" yaml:"topicImage,omitempty"`
	RelatedLink        string `json:"relatedLink,omitempty" yaml:"relatedLink,omitempty"`
}
