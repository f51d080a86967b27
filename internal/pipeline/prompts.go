package pipeline

import "strings"

// inputMarker is replaced with the accumulated pipeline input when a stage
// prompt is built.
const inputMarker = "{{INPUT}}"

// promptTemplates is the fixed prompt bank. Every template embeds the prior
// stage's full output so the chain stays strictly sequential.
var promptTemplates = map[Stage]string{
	StageStrategize: `You are a strategic planner for AI chat agents.
A user wants the following agent built:

{{INPUT}}

Produce a strategic plan for this agent: its purpose, target audience,
key differentiators and success criteria. Write it as a short structured
document with clear headings.`,

	StageAnalyzeRequirements: `You are a requirements analyst.
Here is the strategic plan for an AI chat agent:

{{INPUT}}

Derive the concrete functional and non-functional requirements. List the
conversational capabilities the agent needs, the languages it must support,
and any integrations implied by the plan.`,

	StageCreateSpec: `You are a specification author for AI chat agents.
Based on the following requirements analysis:

{{INPUT}}

Write the complete agent specification. Use exactly these labeled sections
so downstream tooling can read them:

Agent Name: <short product name>
Description: <one-or-two sentence description>
Tone: <conversational tone>
Core Capabilities:
- <capability>
- <capability>
Primary Color: #<hex>
Secondary Color: #<hex>
Greeting: <the widget greeting message>`,

	StageTestSpec: `You are a test designer.
Given this agent specification:

{{INPUT}}

Design a test plan: conversation scenarios, edge cases (ambiguous input,
unsupported language, abusive input) and the expected agent behavior for
each. Keep the original specification sections intact above your additions.`,

	StageValidateSpec: `You are a validation engineer.
Review the following specification and test plan:

{{INPUT}}

Check the specification for internal contradictions, missing defaults and
untestable requirements. Output the corrected document with a short
validation summary appended.`,

	StageOptimize: `You are an optimization specialist.
Here is a validated agent specification:

{{INPUT}}

Tighten it: remove redundant capabilities, merge overlapping requirements
and flag anything that would bloat the generated agent. Keep all labeled
sections intact.`,

	StageDocument: `You are a documentation writer.
From this optimized specification:

{{INPUT}}

Write the user-facing documentation for the agent: what it does, how to
talk to it, and its limitations. Append it below the specification.`,

	StageSecureReview: `You are a security reviewer.
Review this agent package:

{{INPUT}}

Identify prompt-injection risks, data-handling concerns and abuse vectors,
and list the mitigations the generated agent must ship with.`,

	StagePerformanceReview: `You are a performance reviewer.
Review this agent package:

{{INPUT}}

Assess response-length targets, model-call budgets and caching
opportunities. Append a short performance budget section.`,

	StageArchitectureSetup: `You are an architecture engineer.
Given the final agent package:

{{INPUT}}

Describe the deployment architecture for a static chat application with a
single server endpoint: file layout, hosting requirements and the
environment variables it needs.`,
}

// BuildPrompt renders the stage's template with the accumulated input.
func BuildPrompt(stage Stage, input string) string {
	return strings.ReplaceAll(promptTemplates[stage], inputMarker, input)
}
