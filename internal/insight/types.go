// Package insight implements the marketing-copy analysis pipeline: prompt
// construction, model response parsing, the offline heuristic fallback, and
// the orchestrator that chooses between them.
package insight

// killerCount is the fixed number of conversion-killer slots in a result.
const killerCount = 3

// UnknownAudience is the persona reported when the model gave no usable
// audience description.
const UnknownAudience = "Unknown audience"

// ConversionKiller is one phrase flagged as likely to confuse or repel a
// reader, with a short reason or suggested fix. Both fields empty marks a
// "no finding" slot.
type ConversionKiller struct {
	Phrase string `json:"phrase"`
	Reason string `json:"reason"`
}

// Insights is the result of analyzing one page's marketing copy. It is built
// once per Analyze call and not mutated afterwards. ConversionKillers always
// holds exactly three entries, HookScore always sits in [0,100], and LLMError
// is only set when FallbackUsed is true.
type Insights struct {
	HookScore                    int                `json:"hook_score"`
	HookScoreJustification       string             `json:"hook_score_justification"`
	AudiencePersona              string             `json:"audience_persona"`
	AudiencePersonaJustification string             `json:"audience_persona_justification"`
	ConversionKillers            []ConversionKiller `json:"conversion_killers"`
	FallbackUsed                 bool               `json:"fallback_used"`
	LLMError                     string             `json:"llm_error,omitempty"`
	HookTextUsed                 string             `json:"hook_text_used"`
	FullTextUsed                 string             `json:"full_text_used"`
}

// padKillers forces the list to exactly killerCount entries: short lists gain
// empty "no finding" slots, long lists keep their first three in order.
func padKillers(killers []ConversionKiller) []ConversionKiller {
	if len(killers) > killerCount {
		return killers[:killerCount]
	}
	for len(killers) < killerCount {
		killers = append(killers, ConversionKiller{})
	}
	return killers
}

func clampScore(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
