// Package prompts builds the fixed instructions sent to the generative-AI
// model for transcription, grounded chat, and answer validation.
package prompts

import (
	"fmt"
	"strings"

	"github.com/studyhall-inc/studyhall-engine/pkg/llm"
	"github.com/studyhall-inc/studyhall-engine/pkg/models"
)

// TranscriptionInstruction is the fixed prompt for handwritten-note OCR.
const TranscriptionInstruction = `Transcribe the handwritten text in this image exactly as written.
Preserve headings, lists, and mathematical notation. Use Markdown for structure.
If a word is illegible, write [illegible]. Output only the transcription, with no commentary.`

// ValidationInstruction is the fixed system instruction for the response
// validator. The model's verdict is returned to the caller as opaque JSON.
const ValidationInstruction = `You are a strict reviewer of AI study-assistant answers.
Assess the assistant's answer against the student's question and respond with a JSON object
describing whether the answer is relevant, accurate, and complete, with a short justification.`

// maxHistoryTurns bounds how many prior turns are replayed into a grounded
// chat request.
const maxHistoryTurns = 10

// BuildValidationContent formats the question/answer pair for the validator.
func BuildValidationContent(userMessage, assistantContent string) string {
	var b strings.Builder
	b.WriteString("## Student question\n\n")
	b.WriteString(userMessage)
	b.WriteString("\n\n## Assistant answer\n\n")
	b.WriteString(assistantContent)
	return b.String()
}

// BuildGroundedChat constructs the message sequence for a chat turn grounded
// in one material: a fixed two-turn priming exchange embedding the material's
// title and full content, the trimmed history, then the new message.
func BuildGroundedChat(material *models.AiMaterial, history []llm.Message, message string) []llm.Message {
	messages := []llm.Message{
		{
			Role: models.RoleUser,
			Content: fmt.Sprintf(
				"You are a study assistant. Answer only from the following material.\n\n# %s\n\n%s",
				material.Title, material.Content),
		},
		{
			Role: models.RoleAssistant,
			Content: fmt.Sprintf(
				"Understood. I will answer questions about %q using only that material.",
				material.Title),
		},
	}

	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	messages = append(messages, history...)

	return append(messages, llm.Message{Role: models.RoleUser, Content: message})
}
