package tui

import (
	"fmt"
	"strings"

	"github.com/aaxonlabs/agentforge/internal/codegen"
	"github.com/aaxonlabs/agentforge/pkg/models"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	s := m.ctrl.Session()

	b.WriteString(m.styles.title.Render("agentforge"))
	b.WriteString("\n")
	b.WriteString(m.styles.stageTag.Render(stageHeading(s.Stage)))
	b.WriteString("\n\n")

	switch s.Stage {
	case models.StageObjective:
		b.WriteString(m.viewObjective())
	case models.StageSubtasks:
		b.WriteString(m.viewSubtasks())
	case models.StageFollowup:
		b.WriteString(m.viewFollowup())
	case models.StageResults:
		b.WriteString(m.viewResults())
	}

	b.WriteString("\n")
	if m.busy {
		b.WriteString(m.spin.View() + " " + m.styles.label.Render(m.status))
	} else if m.status != "" {
		if m.statusIsErr {
			b.WriteString(m.styles.errText.Render(m.status))
		} else {
			b.WriteString(m.styles.okText.Render(m.status))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func stageHeading(s models.Stage) string {
	switch s {
	case models.StageObjective:
		return "Stage 1/4: Objective"
	case models.StageSubtasks:
		return "Stage 2/4: Subtasks Review"
	case models.StageFollowup:
		return "Stage 3/4: Follow-up Questions"
	case models.StageResults:
		return "Stage 4/4: Analysis & Code"
	}
	return ""
}

func (m *Model) viewObjective() string {
	var b strings.Builder
	b.WriteString(m.styles.label.Render("What do you want to automate?"))
	b.WriteString("\n")
	b.WriteString(m.objective.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.label.Render("Agent name: "))
	b.WriteString(m.agentName.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.help.Render("tab switch field │ ctrl+d continue │ ctrl+c quit"))
	return b.String()
}

func (m *Model) viewSubtasks() string {
	s := m.ctrl.Session()
	var b strings.Builder

	b.WriteString(m.styles.label.Render(fmt.Sprintf("Skill level: %s (%s)", s.SkillLevel, s.SkillReason)))
	b.WriteString("\n\n")
	for i, task := range s.Subtasks {
		b.WriteString(m.styles.item.Render(fmt.Sprintf("%d. %s", i+1, task)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if s.Editing {
		b.WriteString(m.styles.label.Render("Edit instruction:"))
		b.WriteString("\n")
		b.WriteString(m.editInput.View())
		b.WriteString("\n")
		b.WriteString(m.styles.help.Render("enter apply │ esc cancel"))
	} else {
		b.WriteString(m.styles.help.Render("e edit │ r regenerate │ c/enter continue │ b back"))
	}
	return b.String()
}

func (m *Model) viewFollowup() string {
	s := m.ctrl.Session()
	var b strings.Builder

	for i, q := range s.Questions {
		marker := "  "
		render := m.styles.item
		if m.focused == focusAnswers && i == m.answerIndex {
			marker = "> "
			render = m.styles.selected
		}
		b.WriteString(render.Render(fmt.Sprintf("%s%d. %s", marker, i+1, q)))
		b.WriteString("\n")
		if i < len(m.answers) {
			b.WriteString("   " + m.answers[i].View())
		}
		b.WriteString("\n")
		for _, f := range s.QuestionFiles(i) {
			b.WriteString(m.styles.label.Render(fmt.Sprintf("   attached: %s", f.Filename)))
			b.WriteString("\n")
		}
		for _, cfg := range s.DatabaseConfigs {
			if cfg.QuestionIndex == i {
				b.WriteString(m.styles.label.Render(fmt.Sprintf("   database: %s", cfg.Kind)))
				b.WriteString("\n")
			}
		}
	}

	if m.focused == focusFilePath {
		b.WriteString("\n")
		b.WriteString(m.styles.label.Render("Attach file for the selected question:"))
		b.WriteString("\n")
		b.WriteString(m.filePath.View())
		b.WriteString("\n")
		b.WriteString(m.styles.help.Render("enter attach │ esc back"))
		return b.String()
	}

	if m.focused == focusDBSpec {
		b.WriteString("\n")
		b.WriteString(m.styles.label.Render("Declare a database for the selected question:"))
		b.WriteString("\n")
		b.WriteString(m.dbSpec.View())
		b.WriteString("\n")
		b.WriteString(m.styles.help.Render("enter add │ esc back"))
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("↑/↓ move │ ctrl+f attach file │ ctrl+b add database │ ctrl+s submit"))
	return b.String()
}

func (m *Model) viewResults() string {
	s := m.ctrl.Session()
	var b strings.Builder

	tabs := []string{"Code", "Explanation", "Analysis"}
	var rendered []string
	for i, name := range tabs {
		if resultsTab(i) == m.tab {
			rendered = append(rendered, m.styles.selected.Render("["+name+"]"))
		} else {
			rendered = append(rendered, m.styles.label.Render(" "+name+" "))
		}
	}
	b.WriteString(strings.Join(rendered, " "))
	b.WriteString("\n\n")

	switch m.tab {
	case tabCode:
		b.WriteString(m.styles.boxed.Render(m.codeView.View()))
	case tabExplanation:
		for _, key := range codegen.ExplainSections {
			section := s.Explanation[key]
			if section == "" {
				continue
			}
			b.WriteString(m.styles.value.Render(strings.ToUpper(key[:1]) + key[1:]))
			b.WriteString("\n")
			b.WriteString(m.styles.item.Render(section))
			b.WriteString("\n\n")
		}
	case tabAnalysis:
		if len(s.FileAnalysis) == 0 {
			b.WriteString(m.styles.label.Render("No file analysis available."))
		}
		for _, line := range s.FileAnalysis {
			b.WriteString(m.styles.item.Render("- " + line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("←/→ switch tab │ s save agent.py │ R start over │ q quit"))
	return b.String()
}
