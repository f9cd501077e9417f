package prompts

// IDReply is the prompt used to request the real agent reply.
const IDReply = "reply"

func init() {
	registry := DefaultRegistry()

	registry.Register(&Prompt{
		ID:       IDReply,
		Language: LangEnglish,
		Content: `You are a helpful, concise assistant.{{context_block}}

User: {{user_message}}

Answer the user directly.`,
		Description: "Agent reply prompt for the chat client",
		Tags:        []string{"reply"},
	})

	registry.Register(&Prompt{
		ID:       IDReply,
		Language: LangChinese,
		Content: `你是一个乐于助人、简明扼要的助手。{{context_block}}

用户：{{user_message}}

请直接回答用户的问题。`,
		Description: "Chinese variant of the agent reply prompt",
		Tags:        []string{"reply", "zh"},
	})
}

// BuildReply composes the prompt for the real agent reply. contextSummary may
// be empty.
func BuildReply(lang Language, userMessage, contextSummary string) (string, error) {
	b, err := NewBuilder(DefaultRegistry(), IDReply, lang)
	if err != nil {
		return "", err
	}
	contextBlock := ""
	if contextSummary != "" {
		if lang == LangChinese {
			contextBlock = "\n\n最近的对话背景：\n" + contextSummary
		} else {
			contextBlock = "\n\nRecent conversation context:\n" + contextSummary
		}
	}
	return b.SetVariable("user_message", userMessage).
		SetVariable("context_block", contextBlock).
		Build(), nil
}
