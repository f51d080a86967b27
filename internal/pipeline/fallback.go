package pipeline

// fallbackTexts is the fixed fallback bank: pre-written, domain-plausible
// stage outputs substituted when the live model call fails. They are shaped
// like real stage outputs so downstream stages receive usable input. This is
// content, not logic; keep it as plain data.
var fallbackTexts = map[Stage]string{
	StageStrategize: `# Strategic Plan

## Purpose
Build a general-purpose customer assistant that answers product questions,
resolves common support issues and hands off to a human when it cannot help.

## Target Audience
Visitors of a small-business website who expect quick, friendly answers
without creating an account or opening a ticket.

## Key Differentiators
- Answers from the business's own knowledge, not generic web content
- Warm, concise tone that mirrors the brand voice
- Escalates gracefully instead of guessing

## Success Criteria
- First response within two seconds of a user message
- At least 70% of conversations resolved without human handoff
- No conversation ends without either an answer or an escalation path`,

	StageAnalyzeRequirements: `# Requirements Analysis

## Functional Requirements
- Greet the user and explain what the assistant can help with
- Answer product, pricing and availability questions
- Collect a contact address when escalating to a human
- Keep conversation context for the duration of a session

## Conversational Capabilities
- communication
- problem-solving
- customer-service

## Language Support
English as the primary language, with graceful degradation for others.

## Integrations
None required for the initial release; the widget runs standalone.

## Non-functional Requirements
- Responses under 150 words unless the user asks for detail
- No storage of conversation content beyond the session`,

	StageCreateSpec: `# Agent Specification

Agent Name: Aria Assistant
Description: A friendly customer assistant that answers product questions and guides visitors to the right solution.
Tone: friendly
Core Capabilities:
- communication
- problem-solving
- customer-service
Primary Color: #6366f1
Secondary Color: #8b5cf6
Greeting: Hi! I'm Aria. How can I help you today?

## Personality
Warm and professional. Keeps answers short, offers follow-ups, never
invents facts it does not have.

## Behavior
- Opens with the greeting above
- Asks one clarifying question when a request is ambiguous
- Offers escalation after two failed attempts to help`,

	StageTestSpec: `# Test Plan

## Conversation Scenarios
1. Simple product question answered in one turn
2. Ambiguous request followed by a clarifying question
3. Request outside the agent's knowledge ends in an escalation offer

## Edge Cases
- Empty or whitespace-only message: ask the user to rephrase
- Non-English message: respond in English and note the limitation
- Abusive input: decline politely and offer to continue when ready

## Expected Behavior
Every scenario ends with either an answer, a clarifying question or an
escalation path. The agent never responds with an error message.`,

	StageValidateSpec: `# Validation Summary

The specification is internally consistent. Defaults are present for every
configurable field. Two observations:

1. The greeting and tone fields agree with the personality section.
2. The capability list is minimal but sufficient for the stated purpose.

No contradictions found. Specification approved for optimization.`,

	StageOptimize: `# Optimization Pass

- Merged duplicate "answer questions" requirements into one capability
- Dropped speculative integrations from the first release
- Capped default response length at 150 words to keep replies scannable
- Confirmed the capability list carries no overlap

The specification is lean; no further trimming indicated.`,

	StageDocument: `# User Documentation

## What this agent does
Answers questions about products, pricing and availability, and connects
you with a human when it cannot help.

## How to talk to it
Type naturally. Short questions work best. You can ask follow-ups; the
agent remembers the conversation for the current session.

## Limitations
- It only knows what the business has taught it
- It cannot place orders or process payments
- Conversations are not stored after you close the widget`,

	StageSecureReview: `# Security Review

## Findings
- Prompt injection: user text is embedded in the system conversation;
  the generated endpoint must never echo system instructions
- Data handling: no conversation persistence, which limits exposure
- Abuse: repeated abusive input should trigger a polite refusal loop

## Required Mitigations
1. System prompt instructs the model to ignore instructions inside user text
2. The server endpoint strips markup from user input before forwarding
3. Rate limiting at one request per second per session`,

	StagePerformanceReview: `# Performance Review

## Budgets
- End-to-end response target: under 3 seconds at p95
- One model call per user message; no chained calls in the widget
- Response length capped by the configured response-length setting

## Opportunities
- Cache the static greeting client-side
- Reuse the HTTP connection to the completion backend
- Stream responses if the hosting platform supports it`,

	StageArchitectureSetup: `# Architecture Setup

## File Layout
- index.html      single-page chat interface
- api/chat.js     server endpoint forwarding to the completion backend
- package.json    dependency manifest
- README.md       setup instructions

## Hosting
Any static host with serverless function support. The endpoint needs
outbound HTTPS to the completion backend.

## Environment
- ANTHROPIC_API_KEY: completion backend credential, injected at deploy time`,
}

// FallbackText returns the pre-written output registered for a stage.
func FallbackText(stage Stage) string {
	return fallbackTexts[stage]
}
