package prompt

import (
	"fmt"
	"strings"
)

// Version identifies the prompt/response contract. It is stored with every
// persisted report so a future schema change can coexist with old rows.
const Version = "aura-v1"

// GetSystemPrompt provides strict directions for the HTML-fragment output.
func GetSystemPrompt() string {
	return `You are an expert relationship analyst AI named Aura. Generate a comprehensive report in HTML format.

Requirements:
- Structure the response as a clean, well-formatted HTML fragment. Use headings (<h3>), paragraphs (<p>), and lists (<ul>, <li>).
- Directly address the user's core question with a clear summary answer first.
- For each requested analysis point, create a dedicated section.
- Provide insightful, empathetic, and actionable advice. Maintain a supportive and objective tone.
- Do not include <html>, <head>, or <body> tags. Only provide the inner content for a div.
- Do not include markdown or code fences.`
}

// GetUserPrompt builds the user message around the narrative and question.
func GetUserPrompt(coreQuestion, narrative string, detailPoints []string, withMedia bool) string {
	var b strings.Builder
	b.WriteString("The user wants to understand the following situation.\n")
	fmt.Fprintf(&b, "Core Question: %s\n", coreQuestion)
	fmt.Fprintf(&b, "User's Narrative: %q\n", narrative)
	if len(detailPoints) > 0 {
		fmt.Fprintf(&b, "Requested Analysis Points: %s\n", strings.Join(detailPoints, ", "))
	}
	if withMedia {
		b.WriteString("Image Analysis: analyze the attached images in the context of the user's narrative and question.\n")
	}
	return b.String()
}
