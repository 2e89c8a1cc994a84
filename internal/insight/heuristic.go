package insight

import (
	"strings"
	"unicode/utf8"
)

// Heuristic justifications and persona sentinels. These are fixed strings so
// callers and tests can tell a heuristic result from a generated one.
const (
	heuristicHookJustification    = "Score estimated using a simple heuristic (length, power words, punctuation)."
	heuristicPersonaJustification = "Heuristic guess based on keywords detected in the page content."
	jargonReason                  = "Jargon can confuse readers; consider using simpler, concrete language."

	personaDeveloper = "Web developers exploring technical content."
	personaMarketing = "Marketing professionals focused on improving conversions."
	personaEcommerce = "E-commerce store owners or managers."
	personaGeneral   = "General online audience interested in this topic."
)

var powerWords = []string{"best", "ultimate", "guide", "free", "step-by-step", "proven"}

var (
	developerKeywords = []string{"developer", "javascript", "react", "frontend"}
	marketingKeywords = []string{"marketing", "brand", "campaign", "conversion"}
	ecommerceKeywords = []string{"ecommerce", "shop", "cart", "checkout"}
)

// jargonTerms is scanned in order against the lowercased page text; every
// match becomes a conversion killer until the list is trimmed to three.
var jargonTerms = []string{
	"synergy",
	"low-hanging fruit",
	"think outside the box",
	"circle back",
	"touch base",
	"bandwidth",
	"core competencies",
	"actionable items",
	"robust",
	"cutting-edge",
	"game changer",
	"next-generation",
	"state-of-the-art",
	"best-in-class",
	"viral",
	"data-driven",
	"holistic",
	"mission-critical",
	"game-changing",
	"customizable",
	"scalable",
	"disruptive",
	"value-add",
	"bleeding-edge",
	"rockstar",
	"ninja",
	"virtually",
	"leverage",
	"bandwidth",
	"action plan",
	"action item",
	"deep dive",
	"core competency",
	"win-win",
	"optimization",
	"think outside the box",
	"let’s circle back",
	"touch base",
}

// Fallback computes a deterministic offline analysis of the same inputs the
// model would have seen: a length-and-power-word hook score, a keyword-based
// audience persona, and jargon hits as conversion killers. It marks the
// result as FallbackUsed; the caller records why.
func Fallback(hookText, fullText string) Insights {
	hookLower := strings.ToLower(hookText)
	fullLower := strings.ToLower(fullText)

	score := 30
	length := utf8.RuneCountInString(strings.TrimSpace(hookText))
	if length > 20 {
		score += 15
	}
	if length > 60 {
		score += 15
	}
	if containsAny(hookLower, powerWords) {
		score += 10
	}
	if strings.Contains(hookText, "?") {
		score += 5
	}

	var persona string
	switch {
	case containsAny(fullLower, developerKeywords):
		persona = personaDeveloper
	case containsAny(fullLower, marketingKeywords):
		persona = personaMarketing
	case containsAny(fullLower, ecommerceKeywords):
		persona = personaEcommerce
	default:
		persona = personaGeneral
	}

	var killers []ConversionKiller
	for _, term := range jargonTerms {
		if strings.Contains(fullLower, term) {
			killers = append(killers, ConversionKiller{Phrase: term, Reason: jargonReason})
		}
	}

	return Insights{
		HookScore:                    clampScore(score, 10, 95),
		HookScoreJustification:       heuristicHookJustification,
		AudiencePersona:              persona,
		AudiencePersonaJustification: heuristicPersonaJustification,
		ConversionKillers:            padKillers(killers),
		FallbackUsed:                 true,
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
