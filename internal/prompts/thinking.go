package prompts

import "fmt"

// Prompt IDs for the thinking simulation engine.
const (
	IDThoughtContextual = "thought.contextual"
	IDThoughtSimple     = "thought.simple"
	IDThoughtBatch      = "thought.batch"
)

func init() {
	registry := DefaultRegistry()

	registry.Register(&Prompt{
		ID:       IDThoughtContextual,
		Language: LangEnglish,
		Content: `You are simulating the inner monologue of an assistant that is working on a user's question.
Write exactly ONE short thought (under 20 words), first person, present tense, as if reasoning mid-task.
Do not answer the question. Do not use quotes, lists, or markdown. One line only.

User question: {{user_message}}{{context_block}}{{prior_block}}

Next thought:`,
		Description: "Contextual single-thought prompt with conversation context and prior-thought digest",
		Tags:        []string{"thinking", "contextual"},
	})

	registry.Register(&Prompt{
		ID:       IDThoughtContextual,
		Language: LangChinese,
		Content: `你正在模拟一个助手处理用户问题时的内心思考过程。
只写一条简短的思考（20字以内），第一人称，现在进行时，就像正在推理中。
不要回答问题本身。不要使用引号、列表或 markdown。只输出一行。

用户问题：{{user_message}}{{context_block}}{{prior_block}}

下一条思考：`,
		Description: "Chinese variant of the contextual thought prompt",
		Tags:        []string{"thinking", "contextual", "zh"},
	})

	registry.Register(&Prompt{
		ID:       IDThoughtSimple,
		Language: LangEnglish,
		Content: `Write one short first-person thought (under 15 words) an assistant might have while working on: {{user_message}}
No quotes, no lists, one line only. Do not answer the question.`,
		Description: "Context-light fallback thought prompt",
		Tags:        []string{"thinking", "simple"},
	})

	registry.Register(&Prompt{
		ID:       IDThoughtSimple,
		Language: LangChinese,
		Content: `写一条助手在处理下面问题时可能有的简短思考（15字以内），第一人称：{{user_message}}
不要引号，不要列表，只输出一行。不要回答问题本身。`,
		Description: "Chinese variant of the simple thought prompt",
		Tags:        []string{"thinking", "simple", "zh"},
	})

	registry.Register(&Prompt{
		ID:       IDThoughtBatch,
		Language: LangEnglish,
		Content: `You are simulating the inner monologue of an assistant that just received a user's question.
Write 5 short first-person thoughts, one per line, in working order:
the first frames the question, the last signals readiness to answer, the middle ones explore it.
Each under 20 words. No numbering, no quotes, no markdown.

User question: {{user_message}}

Thoughts:`,
		Description: "Initial-batch prompt producing the opening run of thoughts",
		Tags:        []string{"thinking", "batch"},
	})

	registry.Register(&Prompt{
		ID:       IDThoughtBatch,
		Language: LangChinese,
		Content: `你正在模拟一个助手刚收到用户问题时的内心思考过程。
按思考顺序写出5条简短的第一人称思考，每行一条：
第一条理解问题，最后一条表示准备好回答，中间几条展开分析。
每条20字以内。不要编号、引号或 markdown。

用户问题：{{user_message}}

思考：`,
		Description: "Chinese variant of the initial-batch prompt",
		Tags:        []string{"thinking", "batch", "zh"},
	})
}

// BuildContextualThought composes the contextual thought prompt. contextSummary
// and priorDigest may be empty; their sections are omitted entirely when so.
func BuildContextualThought(lang Language, userMessage, contextSummary, priorDigest string) (string, error) {
	b, err := NewBuilder(DefaultRegistry(), IDThoughtContextual, lang)
	if err != nil {
		return "", err
	}
	contextBlock := ""
	if contextSummary != "" {
		if lang == LangChinese {
			contextBlock = fmt.Sprintf("\n最近的对话背景：%s", contextSummary)
		} else {
			contextBlock = fmt.Sprintf("\nRecent conversation context: %s", contextSummary)
		}
	}
	priorBlock := ""
	if priorDigest != "" {
		if lang == LangChinese {
			priorBlock = fmt.Sprintf("\n已有的思考（不要重复）：%s", priorDigest)
		} else {
			priorBlock = fmt.Sprintf("\nThoughts so far (do not repeat them): %s", priorDigest)
		}
	}
	return b.SetVariable("user_message", userMessage).
		SetVariable("context_block", contextBlock).
		SetVariable("prior_block", priorBlock).
		Build(), nil
}

// BuildSimpleThought composes the short context-free fallback prompt.
func BuildSimpleThought(lang Language, userMessage string) (string, error) {
	b, err := NewBuilder(DefaultRegistry(), IDThoughtSimple, lang)
	if err != nil {
		return "", err
	}
	return b.SetVariable("user_message", userMessage).Build(), nil
}

// BuildThoughtBatch composes the prompt for the initial run of thoughts.
func BuildThoughtBatch(lang Language, userMessage string) (string, error) {
	b, err := NewBuilder(DefaultRegistry(), IDThoughtBatch, lang)
	if err != nil {
		return "", err
	}
	return b.SetVariable("user_message", userMessage).Build(), nil
}
