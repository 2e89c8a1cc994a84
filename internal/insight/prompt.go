package insight

import "fmt"

// promptTemplate pins the model to a plain-text line protocol so the response
// can be parsed without a JSON round trip. Parse depends on the exact label
// names used here.
const promptTemplate = `You are a world-class Senior Marketing Analyst and Copywriter.

Your task is to analyze a web page's messaging.

IMPORTANT INSTRUCTIONS (FOLLOW EXACTLY):
- Do NOT return JSON.
- Do NOT use Markdown.
- Do NOT add extra commentary before or after the result.
- You MUST respond ONLY using the following plain text template and nothing else:

HOOK_SCORE: <integer 0-100>
HOOK_SCORE_JUSTIFICATION: <one concise sentence>
AUDIENCE_PERSONA: <one concise sentence describing the specific target audience>
AUDIENCE_PERSONA_JUSTIFICATION: <one concise sentence>
CONVERSION_KILLERS:
1) <confusing or harmful phrase from the content> | <short reason why it's bad or how to improve>
2) <confusing or harmful phrase from the content> | <short reason>
3) <confusing or harmful phrase from the content> | <short reason>

Rules:
- "HOOK_SCORE" is based ONLY on the hook text (headline + first paragraph).
- "CONVERSION_KILLERS" must be EXACTLY 3 items.
- Each conversion killer must reference a concrete phrase from the content.

--- HOOK TEXT (headline + opening paragraph) ---
%s

--- FULL PAGE TEXT (context for persona and jargon) ---
%s

Now respond using ONLY the template described above.
Do not include any explanations, JSON, or Markdown.`

// BuildPrompt renders the analysis instruction for one page's extracted
// content. The hook text drives the score, the full text gives the model
// context for persona and jargon detection.
func BuildPrompt(hookText, fullText string) string {
	return fmt.Sprintf(promptTemplate, hookText, fullText)
}
