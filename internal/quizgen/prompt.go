package quizgen

import (
	"fmt"
	"regexp"
	"strings"
)

const systemPrompt = `You are a reading tutor creating comprehension quizzes for children about story books they just read.

Rules:
- Every question must be answerable from the story text alone.
- Each question has exactly 4 options and exactly 1 correct option.
- Wrong options must be plausible but clearly incorrect given the story.
- Keep the language age-appropriate for the stated reading level.
- Return ONLY JSON. No markdown fences, no commentary, no trailing text.`

// Excerpt budgets keep prompts inside provider context windows. The
// single-question fast path uses a tighter budget for lower latency.
const (
	fullExcerptLimit  = 4000
	firstExcerptLimit = 2000
)

// stageDirections matches bracketed markup embedded in page text, such as
// [excited] or [whispering], which narrates delivery and is not story
// content.
var stageDirections = regexp.MustCompile(`\[[^\[\]]*\]`)

// PromptInput carries everything the prompt builder needs.
type PromptInput struct {
	// Age is the reader's raw age. Out-of-range ages get generic wording.
	Age int

	// AttemptNumber is 1 or 2. Attempt 2 asks for questions disjoint from
	// the first attempt's likely content. This is a prompt-level request
	// only; nothing compares the two sets structurally.
	AttemptNumber int

	// StoryText is the concatenated page text, markup included.
	StoryText string

	// AvoidQuestion, when non-empty, names an already-served question the
	// new set must not repeat (used by the remaining-questions path).
	AvoidQuestion string
}

// CleanStoryText strips stage-direction markup and collapses the
// whitespace that stripping leaves behind.
func CleanStoryText(text string) string {
	cleaned := stageDirections.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(cleaned), " ")
}

// buildUserMessage assembles the generation instruction for count
// questions plus a bounded story excerpt.
func buildUserMessage(in PromptInput, count int) string {
	var b strings.Builder

	b.WriteString(readingLevelLine(in.Age))
	b.WriteString("\n")

	if count == 1 {
		b.WriteString("Create exactly 1 multiple-choice question about the story below.\n")
	} else {
		fmt.Fprintf(&b, "Create exactly %d multiple-choice questions about the story below.\n", count)
	}
	b.WriteString("Each question must have exactly 4 options with exactly 1 correct option.\n")

	if in.AttemptNumber == 2 {
		b.WriteString("This is the reader's second quiz on this story. Ask about different characters, events, and details than a first quiz would; do not reuse likely first-attempt questions.\n")
	}

	if in.AvoidQuestion != "" {
		fmt.Fprintf(&b, "Do not repeat or rephrase this question, it was already asked: %q\n", in.AvoidQuestion)
	}

	b.WriteString("\nRespond with only a JSON array in this shape:\n")
	b.WriteString(`[{"questionText": "...", "options": [{"text": "...", "isCorrect": true}, {"text": "...", "isCorrect": false}, {"text": "...", "isCorrect": false}, {"text": "...", "isCorrect": false}]}]`)
	b.WriteString("\n\nStory:\n")

	limit := fullExcerptLimit
	if count == 1 {
		limit = firstExcerptLimit
	}
	b.WriteString(truncate(CleanStoryText(in.StoryText), limit))

	return b.String()
}

// readingLevelLine maps the raw age to bucketed reading-level guidance.
func readingLevelLine(age int) string {
	group, ok := BucketAge(age)
	if !ok {
		return "Reading level: young children. Use simple, friendly language."
	}
	switch group {
	case Group3to5:
		return "Reading level: ages 3-5. Use very short sentences and the simplest possible words."
	case Group6to8:
		return "Reading level: ages 6-8. Use simple sentences and common vocabulary."
	default:
		return "Reading level: ages 9-12. Full sentences and richer vocabulary are fine."
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
