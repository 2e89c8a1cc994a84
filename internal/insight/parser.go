package insight

import (
	"regexp"
	"strconv"
	"strings"
)

// Label patterns for the plain-text response template. Labels are matched
// case-insensitively at the start of a line; the killers block captures
// everything after its label so numbering survives stray blank lines.
var (
	hookScoreRe    = regexp.MustCompile(`(?im)^HOOK_SCORE:\s*([0-9]{1,3})`)
	hookJustRe     = regexp.MustCompile(`(?im)^HOOK_SCORE_JUSTIFICATION:\s*(.+)`)
	personaRe      = regexp.MustCompile(`(?im)^AUDIENCE_PERSONA:\s*(.+)`)
	personaJustRe  = regexp.MustCompile(`(?im)^AUDIENCE_PERSONA_JUSTIFICATION:\s*(.+)`)
	killersBlockRe = regexp.MustCompile(`(?ims)^CONVERSION_KILLERS:\s*(.+)`)
	killerItemRe   = regexp.MustCompile(`^\s*\d+[).\-:]\s*(.+)$`)
)

// Parse extracts structured insights from the model's raw text response.
// Only an empty response is an error; any individual field the model
// omitted or mangled falls back to its default, so a partially conforming
// reply still yields a usable result.
func Parse(raw string) (Insights, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Insights{}, &ParseError{Reason: "AI returned an empty analysis. Cannot parse."}
	}

	score, err := strconv.Atoi(grab(hookScoreRe, text, "0"))
	if err != nil {
		score = 0
	}

	return Insights{
		HookScore:                    clampScore(score, 0, 100),
		HookScoreJustification:       grab(hookJustRe, text, ""),
		AudiencePersona:              grab(personaRe, text, UnknownAudience),
		AudiencePersonaJustification: grab(personaJustRe, text, ""),
		ConversionKillers:            padKillers(parseKillers(grab(killersBlockRe, text, ""))),
	}, nil
}

// grab returns the first submatch of re in text, trimmed, or def when the
// pattern does not match at all.
func grab(re *regexp.Regexp, text, def string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return def
	}
	return strings.TrimSpace(m[1])
}

// parseKillers reads numbered "phrase | reason" items out of the killers
// block. Unnumbered lines are skipped, the first pipe splits phrase from
// reason, and items whose phrase trims to nothing are dropped.
func parseKillers(block string) []ConversionKiller {
	var killers []ConversionKiller
	for _, line := range strings.Split(block, "\n") {
		m := killerItemRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		phrase := strings.TrimSpace(m[1])
		reason := ""
		if i := strings.Index(phrase, "|"); i >= 0 {
			phrase, reason = strings.TrimSpace(phrase[:i]), strings.TrimSpace(phrase[i+1:])
		}
		if phrase == "" {
			continue
		}
		killers = append(killers, ConversionKiller{Phrase: phrase, Reason: reason})
	}
	return killers
}
