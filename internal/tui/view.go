package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/portfolio/internal/entities"
	"github.com/Zachkp/portfolio/internal/loader"
	"github.com/Zachkp/portfolio/internal/sections"
)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(m.title))
	b.WriteString("\n")
	if m.tagline != "" {
		b.WriteString(TaglineStyle.Render(m.tagline))
		b.WriteString("\n")
	}

	for i, v := range m.views {
		style := SectionStyle
		if i == m.cursor {
			style = SectionSelectedStyle
		}
		if m.width > 4 {
			style = style.Width(m.width - 4)
		}
		b.WriteString(style.Render(m.renderSection(v)))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("tab/j next • shift+tab/k previous • r reload • q quit"))
	return b.String()
}

func (m model) renderSection(v sections.View) string {
	var lines []string

	heading := TitleStyle.Render(v.Title)
	if v.Status == loader.StatusLoaded {
		heading = lipgloss.JoinHorizontal(lipgloss.Top, heading, "  ", CountStyle.Render(v.CountLabel()))
	}
	lines = append(lines, heading)
	if v.Subtitle != "" {
		lines = append(lines, SubtitleStyle.Render(v.Subtitle))
	}

	switch {
	case v.Loading():
		lines = append(lines, m.spinner.View()+" "+EmptyStyle.Render("loading "+v.Name+"..."))
	case v.ShowEmpty():
		lines = append(lines, EmptyStyle.Render(v.EmptyText))
		if v.Failed() && v.Error != "" {
			lines = append(lines, ErrorStyle.Render("("+v.Error+")"))
		}
	default:
		lines = append(lines, renderItems(v.Items)...)
	}

	return strings.Join(lines, "\n")
}

func renderItems(items any) []string {
	var lines []string

	switch items := items.(type) {
	case []entities.Project:
		for _, p := range items {
			line := "▸ " + ItemStyle.Render(p.ProjectTitle)
			for _, t := range p.Technologies() {
				line += " " + BadgeStyle.Render("["+t+"]")
			}
			lines = append(lines, line)
		}
	case []entities.Skill:
		for _, s := range items {
			line := "▸ " + ItemStyle.Render(s.SkillName)
			if s.Category != "" {
				line += " " + EmptyStyle.Render(s.Category)
			}
			line += " " + BadgeStyle.Render(s.ExperienceLabel())
			lines = append(lines, line)
		}
	case []entities.Passion:
		for _, p := range items {
			lines = append(lines, "▸ "+ItemStyle.Render(p.TopicTitle))
			if p.InspirationalQuote != "" {
				quote := fmt.Sprintf("  %q", p.InspirationalQuote)
				if p.QuoteAuthor != "" {
					quote += " - " + p.QuoteAuthor
				}
				lines = append(lines, SubtitleStyle.Render(quote))
			}
		}
	}

	return lines
}
