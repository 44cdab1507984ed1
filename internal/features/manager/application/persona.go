package application

import (
	"fmt"

	catalog "promptgen/backend/internal/features/catalog/domain"
	scenariodomain "promptgen/backend/internal/features/scenario/domain"
)

// Tone is the manager's conversational policy for a seniority band.
type Tone string

const (
	ToneSupportive Tone = "supportive"
	ToneDelegating Tone = "delegating"
	ToneStrategic  Tone = "strategic"
)

var toneGuidance = map[Tone]string{
	ToneSupportive: "The candidate is early in their career. Be helpful, encourage questions, and give specific guidance. Explain the reasoning behind constraints when asked.",
	ToneDelegating: "The candidate is mid-level. Give context, but expect them to make decisions. Nudge them toward a recommendation instead of handing one over.",
	ToneStrategic:  "The candidate is senior. Be high-level, strategic, and \"busy.\" Keep replies terse. Push back if they ask for things they should define themselves. Say things like \"I'm looking to you to define that strategy.\"",
}

// ToneFor selects the tone policy for a seniority value. Unknown values use
// the mid-level policy.
func ToneFor(seniority string) Tone {
	switch catalog.SeniorityLevel(seniority) {
	case 0, 1:
		return ToneSupportive
	case 3, 4:
		return ToneStrategic
	default:
		return ToneDelegating
	}
}

const personaTemplate = `
You are a Senior Product Leader (Head of Product or VP of Design).
You have just assigned a candidate (the user) the following take-home assignment:

"%s"

The candidate is now asking you clarifying questions about this assignment.

**YOUR GUIDELINES:**
1. **Adopt a persona based on the candidate's seniority level (%s):**
   %s

2. **Stay "In Character":** Do not break the fourth wall. Do not say "I am an AI." Act as if you are their manager at the company specified in the brief.

3. **Invent details if necessary, but keep them consistent:** If they ask about a constraint not explicitly in the text, invent a realistic answer that fits the brief's context (e.g., "Engineering is tight this quarter, so keep scope small").

4. **Keep answers concise:** You are a busy manager communicating via Slack/Teams.
`

// PersonaInstruction builds the system instruction for the manager chat.
func PersonaInstruction(cfg scenariodomain.Configuration, scenarioText string) string {
	return fmt.Sprintf(personaTemplate, scenarioText, cfg.Seniority, toneGuidance[ToneFor(cfg.Seniority)])
}
