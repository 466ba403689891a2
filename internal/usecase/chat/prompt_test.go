package chat

import (
	"strings"
	"testing"

	"github.com/futig/outreach-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessages_WithContext(t *testing.T) {
	user := entity.ContextRecord{"name": "John Doe", "title": "Technical Recruiter", "company": "TechCorp Inc."}
	org := entity.ContextRecord{"name": "TechCorp Inc.", "industry": "Technology", "company_size": "500-1000 employees"}
	history := []entity.ChatMessage{
		{Text: "Write a sequence for a Go engineer", Sender: entity.SenderUser},
		{Text: "Sure", Sender: entity.SenderAssistant},
		{Text: "Make it shorter", Sender: "someone-else"},
	}

	msgs := BuildMessages(user, org, history)
	require.Len(t, msgs, 5)

	system := msgs[0]
	assert.Equal(t, entity.RoleSystem, system.Role)
	assert.True(t, strings.HasPrefix(system.Content, promptIntro))
	assert.Contains(t, system.Content, "USER CONTEXT:\n- Recruiter Name: John Doe\n- Title: Technical Recruiter\n- Company: TechCorp Inc.\n- Email: N/A")
	assert.Contains(t, system.Content, "ORGANIZATION CONTEXT:\n- Company: TechCorp Inc.\n- Industry: Technology\n- Description: N/A\n- Company Size: 500-1000 employees")
	assert.Less(t, strings.Index(system.Content, "USER CONTEXT"), strings.Index(system.Content, "ORGANIZATION CONTEXT"))
	assert.True(t, strings.HasSuffix(system.Content, "valid JSON without any additional text or formatting."))

	assert.Equal(t, entity.RoleSystem, msgs[1].Role)
	assert.Equal(t, promptOutputFormat, msgs[1].Content)

	assert.Equal(t, entity.CompletionMessage{Role: entity.RoleUser, Content: "Write a sequence for a Go engineer"}, msgs[2])
	assert.Equal(t, entity.CompletionMessage{Role: entity.RoleAssistant, Content: "Sure"}, msgs[3])
	assert.Equal(t, entity.RoleUser, msgs[4].Role)
}

func TestBuildMessages_WithoutContext(t *testing.T) {
	msgs := BuildMessages(nil, entity.ContextRecord{}, nil)
	require.Len(t, msgs, 2)

	assert.NotContains(t, msgs[0].Content, "USER CONTEXT")
	assert.NotContains(t, msgs[0].Content, "ORGANIZATION CONTEXT")
	assert.Equal(t, promptIntro+promptSequenceRules, msgs[0].Content)
}
