// Package report wraps one analysis run in a saveable entity: a unique ID,
// the analyzed URL, a timestamp and the insights themselves, rendered either
// as markdown on disk or styled for the terminal.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"mia/internal/insight"
)

// Report ties an Insights value to the page it came from.
type Report struct {
	ID        uuid.UUID        `json:"id"`
	URL       string           `json:"url"`
	CreatedAt time.Time        `json:"created_at"`
	Insights  insight.Insights `json:"insights"`
}

// New stamps insights with a fresh ID and the current UTC time.
func New(url string, ins insight.Insights) Report {
	return Report{
		ID:        uuid.New(),
		URL:       url,
		CreatedAt: time.Now().UTC(),
		Insights:  ins,
	}
}

// Filename returns the name a saved report gets, e.g.
// report_2025-06-01_1a2b3c4d.md. The ID prefix keeps several reports from
// the same day apart.
func (r Report) Filename() string {
	return fmt.Sprintf("report_%s_%s.md", r.CreatedAt.Format("2006-01-02"), r.ID.String()[:8])
}

// scoreCommentary maps a hook score to the reviewer note shown under it.
func scoreCommentary(score int) string {
	switch {
	case score < 50:
		return "The opening hook needs significant work to grab visitor attention quickly."
	case score < 80:
		return "The hook is decent, but it could be punchier or clearer. Room for improvement!"
	default:
		return "Excellent hook! The opening is highly compelling and right on target."
	}
}

// foundKillers drops the empty "no finding" slots, keeping response order.
func foundKillers(ins insight.Insights) []insight.ConversionKiller {
	var found []insight.ConversionKiller
	for _, k := range ins.ConversionKillers {
		if k.Phrase == "" && k.Reason == "" {
			continue
		}
		found = append(found, k)
	}
	return found
}

// Markdown renders the report as a standalone markdown document.
func (r Report) Markdown() string {
	ins := r.Insights

	var b strings.Builder
	b.WriteString("# Marketing Insights Report\n\n")
	b.WriteString(fmt.Sprintf("- **URL:** %s\n", r.URL))
	b.WriteString(fmt.Sprintf("- **Generated:** %s\n", r.CreatedAt.Format("2006-01-02 15:04:05 MST")))
	b.WriteString(fmt.Sprintf("- **Report ID:** %s\n\n", r.ID))

	if ins.FallbackUsed {
		b.WriteString("> ⚠️ Gemini did not return a usable response. ")
		b.WriteString("Showing a local heuristic analysis instead of real model output.\n")
		if ins.LLMError != "" {
			b.WriteString(fmt.Sprintf("> Underlying LLM error: %s\n", ins.LLMError))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Analyzed Hook Text\n\n")
	b.WriteString(fmt.Sprintf("```\n%s\n```\n\n", hookOrPlaceholder(ins.HookTextUsed)))
	b.WriteString("*This is the headline and first paragraph the AI scored.*\n\n")

	b.WriteString("## 1. Hook Score\n\n")
	b.WriteString(fmt.Sprintf("Opening Compellingness (Headline + First Paragraph): **%d%%**\n\n", ins.HookScore))
	b.WriteString(scoreCommentary(ins.HookScore) + "\n\n")
	if ins.HookScoreJustification != "" {
		b.WriteString(fmt.Sprintf("*%s*\n\n", ins.HookScoreJustification))
	}

	b.WriteString("## 2. Target Audience Persona\n\n")
	b.WriteString(fmt.Sprintf("**Prediction:** *%s*\n\n", ins.AudiencePersona))
	if ins.AudiencePersonaJustification != "" {
		b.WriteString(ins.AudiencePersonaJustification + "\n\n")
	}

	b.WriteString("## 3. Conversion Killers (Friction Points)\n\n")
	killers := foundKillers(ins)
	if len(killers) == 0 {
		b.WriteString("Nice! No obvious jargon or confusing phrases were found. Clear messaging!\n")
	} else {
		b.WriteString("Heads up! These phrases might confuse or lose customers:\n\n")
		for i, k := range killers {
			b.WriteString(fmt.Sprintf("%d. `%s`\n", i+1, phraseOrPlaceholder(k.Phrase)))
			if k.Reason != "" {
				b.WriteString(fmt.Sprintf("   _%s_\n", k.Reason))
			}
		}
	}

	return b.String()
}

func hookOrPlaceholder(hook string) string {
	if strings.TrimSpace(hook) == "" {
		return "N/A"
	}
	return hook
}

func phraseOrPlaceholder(phrase string) string {
	if phrase == "" {
		return "N/A"
	}
	return phrase
}

// Save writes the markdown rendering into outputDir and returns the file
// path. The directory is created when missing.
func (r Report) Save(outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = "reports" // Default output directory
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	filePath := filepath.Join(outputDir, r.Filename())

	if err := os.WriteFile(filePath, []byte(r.Markdown()), 0644); err != nil {
		return "", fmt.Errorf("failed to write report file %s: %w", filePath, err)
	}

	return filePath, nil
}
