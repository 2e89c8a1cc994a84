package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Render styles the report for terminal display.
func Render(r Report) string {
	ins := r.Insights

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	sectionStyle := lipgloss.NewStyle().Bold(true)
	captionStyle := lipgloss.NewStyle().Faint(true)
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	personaStyle := lipgloss.NewStyle().Italic(true)
	hookStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Width(74)
	scoreStyle := lipgloss.NewStyle().Bold(true).Foreground(scoreColor(ins.HookScore))

	var b strings.Builder
	b.WriteString(titleStyle.Render("Key Messaging Insights"))
	b.WriteString("\n\n")

	if ins.FallbackUsed {
		b.WriteString(warnStyle.Render("⚠ Gemini did not return a usable response. Showing a local heuristic analysis instead of real model output."))
		b.WriteString("\n")
		if ins.LLMError != "" {
			b.WriteString(captionStyle.Render("Underlying LLM error: " + ins.LLMError))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Analyzed Hook Text"))
	b.WriteString("\n")
	b.WriteString(hookStyle.Render(hookOrPlaceholder(ins.HookTextUsed)))
	b.WriteString("\n")
	b.WriteString(captionStyle.Render("This is the headline and first paragraph the AI scored."))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("1. Hook Score"))
	b.WriteString("\n")
	b.WriteString(scoreStyle.Render(fmt.Sprintf("%d%%", ins.HookScore)))
	b.WriteString(captionStyle.Render("  Opening Compellingness (Headline + First Paragraph)"))
	b.WriteString("\n")
	b.WriteString(scoreCommentary(ins.HookScore))
	b.WriteString("\n")
	if ins.HookScoreJustification != "" {
		b.WriteString(captionStyle.Render(ins.HookScoreJustification))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("2. Target Audience Persona"))
	b.WriteString("\n")
	b.WriteString("Prediction: ")
	b.WriteString(personaStyle.Render(ins.AudiencePersona))
	b.WriteString("\n")
	b.WriteString(captionStyle.Render("This prediction helps us verify if the tone and vocabulary match the intended reader."))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("3. Conversion Killers (Friction Points)"))
	b.WriteString("\n")
	killers := foundKillers(ins)
	if len(killers) == 0 {
		b.WriteString("Nice! No obvious jargon or confusing phrases were found. Clear messaging!\n")
	} else {
		b.WriteString(warnStyle.Render("Heads up! These phrases might confuse or lose customers:"))
		b.WriteString("\n")
		for i, k := range killers {
			b.WriteString(fmt.Sprintf("  %d. %q\n", i+1, phraseOrPlaceholder(k.Phrase)))
			if k.Reason != "" {
				b.WriteString(captionStyle.Render("     " + k.Reason))
				b.WriteString("\n")
			}
		}
	}
	b.WriteString("\n")

	b.WriteString(captionStyle.Render(fmt.Sprintf("Report %s for %s", r.ID.String()[:8], r.URL)))
	b.WriteString("\n")

	return b.String()
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score < 50:
		return lipgloss.Color("196")
	case score < 80:
		return lipgloss.Color("214")
	default:
		return lipgloss.Color("42")
	}
}
