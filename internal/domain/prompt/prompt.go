// Package prompt renders the instruction templates sent to the LLM.
// Pure functions: deterministic, no side effects, no truncation - size
// policy belongs to the caller.
package prompt

import (
	"strings"

	"github.com/0xcro3dile/docchat-go/internal/domain/entities"
)

const systemInstruction = `You are a helpful assistant that answers questions based on the provided document.
Only use information from the document to answer.
If the answer isn't in the document, say "I don't know".
Keep answers concise and never mention that you are consulting a document.
Greetings may be answered normally without the document.`

const thinkingInstruction = `You are a helpful assistant. Show your thinking process wrapped in <think></think> tags
before providing the final answer. Follow these rules:
1. First analyze the document content
2. Formulate your answer step-by-step
3. Always wrap thinking in <think></think>
4. Provide final answer after the thinking block`

// Build renders the blocking-path prompt: instruction, document content,
// formatted history (oldest first), current question.
func Build(documentContent string, history entities.ConversationHistory, question string) string {
	var sb strings.Builder
	sb.WriteString("[INST] <<SYS>>\n")
	sb.WriteString(systemInstruction)
	sb.WriteString("\n<</SYS>>\n\n")
	sb.WriteString("DOCUMENT CONTENT:\n")
	sb.WriteString(documentContent)
	sb.WriteString("\n\nPrevious Conversation:\n")
	sb.WriteString(FormatHistory(history))
	sb.WriteString("\n\nQUESTION: ")
	sb.WriteString(question)
	sb.WriteString(" [/INST]")
	return sb.String()
}

// BuildThinking renders the streaming-path prompt. It asks for a delimited
// reasoning block and omits conversation history.
func BuildThinking(documentContent, question string) string {
	var sb strings.Builder
	sb.WriteString("[INST] <<SYS>>\n")
	sb.WriteString(thinkingInstruction)
	sb.WriteString("\n<</SYS>>\n\n")
	sb.WriteString("Document Content: ")
	sb.WriteString(documentContent)
	sb.WriteString("\nQuestion: ")
	sb.WriteString(question)
	sb.WriteString(" [/INST]")
	return sb.String()
}

// FormatHistory renders history as "Human:"/"Assistant:" lines, oldest first.
func FormatHistory(history entities.ConversationHistory) string {
	lines := make([]string, 0, len(history.Messages))
	for _, msg := range history.Messages {
		speaker := "Assistant"
		if msg.Role == "user" {
			speaker = "Human"
		}
		lines = append(lines, speaker+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}
