package chat

import (
	"strings"

	"github.com/futig/outreach-backend/internal/entity"
)

const promptIntro = "You are an AI assistant that helps with recruiting outreach."

const promptSequenceRules = `

When users ask about email sequences or recruiting messages:
You need to generate sequence in following format:
- First paragraph is main objective why you are sending this email
- Second paragraph is the body of the email. You can add more details, like we are hiring for this specific skills and you have this skills while this project or experience.
- Third paragraph is the closing of the email. You can add more details, like we are hiring for this specific skills and you have this skills while this project or experience.

Use the user and organization context to personalize the messages appropriately.
For non-email sequence related questions, set email_sequence to null and only provide Reasoning and Answer.

IMPORTANT: Your response must be valid JSON without any additional text or formatting.`

const promptOutputFormat = `You should generate response in JSON format with following keys:
- text: str (Example: Based on your request, I have updated email sequence)
- reasoning: str (Example: Candidate has 3 years of experience in Python and Django, and they are looking for a new opportunity)
- email_sequence: object | null (For email sequences, use format: {"content": "email content here"}. For non-email queries, use null)

IMPORTANT: Return only the JSON object, with no additional text, markdown, or code block formatting.`

type contextField struct {
	label string
	key   string
}

var (
	userContextFields = []contextField{
		{label: "Recruiter Name", key: "name"},
		{label: "Title", key: "title"},
		{label: "Company", key: "company"},
		{label: "Email", key: "email"},
	}

	orgContextFields = []contextField{
		{label: "Company", key: "name"},
		{label: "Industry", key: "industry"},
		{label: "Description", key: "description"},
		{label: "Company Size", key: "company_size"},
	}
)

// BuildMessages assembles the two system messages followed by the history.
// A context block is only added when its record has at least one entry.
func BuildMessages(user, org entity.ContextRecord, history []entity.ChatMessage) []entity.CompletionMessage {
	var prompt strings.Builder
	prompt.WriteString(promptIntro)

	if len(user) > 0 {
		writeContextBlock(&prompt, "USER CONTEXT", user, userContextFields)
	}
	if len(org) > 0 {
		writeContextBlock(&prompt, "ORGANIZATION CONTEXT", org, orgContextFields)
	}

	prompt.WriteString(promptSequenceRules)

	messages := make([]entity.CompletionMessage, 0, len(history)+2)
	messages = append(messages,
		entity.CompletionMessage{Role: entity.RoleSystem, Content: prompt.String()},
		entity.CompletionMessage{Role: entity.RoleSystem, Content: promptOutputFormat},
	)

	for _, msg := range history {
		role := entity.RoleUser
		if msg.Sender == entity.SenderAssistant {
			role = entity.RoleAssistant
		}
		messages = append(messages, entity.CompletionMessage{Role: role, Content: msg.Text})
	}

	return messages
}

func writeContextBlock(b *strings.Builder, title string, record entity.ContextRecord, fields []contextField) {
	b.WriteString("\n\n")
	b.WriteString(title)
	b.WriteString(":")
	for _, f := range fields {
		b.WriteString("\n- ")
		b.WriteString(f.label)
		b.WriteString(": ")
		b.WriteString(record.Field(f.key))
	}
}
