package engine

import (
	"strings"

	"github.com/wellszhang/mcschat/internal/prompts"
)

// Topic is the coarse flavor of a user message, used to pick the initial
// template set when generation is unavailable.
type Topic string

const (
	TopicTroubleshooting Topic = "troubleshooting"
	TopicHowTo           Topic = "howto"
	TopicGeneral         Topic = "general"
)

// classifyTopic picks a template flavor from keywords in the user message.
// Troubleshooting wins over how-to when both match ("I have an error, how do
// I fix it?" reads as troubleshooting).
func classifyTopic(msg string) Topic {
	lower := strings.ToLower(msg)
	troubleshooting := []string{"error", "bug", "fix", "fail", "crash", "broken", "doesn't work", "not working", "错误", "报错", "问题", "失败", "崩溃"}
	for _, kw := range troubleshooting {
		if strings.Contains(lower, kw) {
			return TopicTroubleshooting
		}
	}
	howto := []string{"how do", "how to", "how can", "how should", "怎么", "如何", "怎样"}
	for _, kw := range howto {
		if strings.Contains(lower, kw) {
			return TopicHowTo
		}
	}
	return TopicGeneral
}

// Initial template banks. Item 0 frames the question and the last item
// signals readiness to answer; the selection rule in the generator relies on
// that ordering.
var initialBanks = map[prompts.Language]map[Topic][]string{
	prompts.LangEnglish: {
		TopicTroubleshooting: {
			"Let me look at what this error could mean.",
			"First I should narrow down where the error is coming from.",
			"I want to rule out the most common causes of this kind of error.",
			"There might be a configuration or environment issue behind this error.",
			"Checking whether the error message points at a specific line or component.",
			"I think I can see a likely cause. Let me put together the fix.",
		},
		TopicHowTo: {
			"Let me make sure I understand what they want to accomplish.",
			"There are usually a few ways to do this; I should pick the simplest.",
			"I should think about the prerequisites before laying out steps.",
			"A step-by-step walkthrough will probably serve best here.",
			"Worth mentioning the common pitfalls along the way.",
			"Alright, I have a clear set of steps. Time to write them down.",
		},
		TopicGeneral: {
			"Let me break this question down.",
			"What's the core thing being asked here?",
			"I should gather the relevant facts before answering.",
			"Considering this from a couple of angles.",
			"Weighing which details actually matter for a good answer.",
			"I think I have a solid picture now. Preparing my answer.",
		},
	},
	prompts.LangChinese: {
		TopicTroubleshooting: {
			"让我先看看这个错误可能意味着什么。",
			"我需要先缩小错误的来源范围。",
			"先排除这类错误最常见的几个原因。",
			"也许是配置或环境的问题导致的错误。",
			"检查错误信息是否指向了具体的代码或组件。",
			"我大概找到原因了，来整理一下解决方案。",
		},
		TopicHowTo: {
			"让我先确认用户想要达到什么目标。",
			"通常有几种做法，我应该选最简单的。",
			"在列出步骤之前，先想想有哪些前提条件。",
			"分步骤讲解应该最清楚。",
			"值得提一下过程中常见的坑。",
			"好，步骤已经清晰了，开始整理答案。",
		},
		TopicGeneral: {
			"让我把这个问题拆解一下。",
			"这个问题的核心是什么？",
			"先收集相关的信息再回答。",
			"从几个不同的角度考虑一下。",
			"权衡哪些细节对答案真正重要。",
			"我心里有数了，准备组织回答。",
		},
	},
}

// Continuous template bank: generic reasoning phrases, selected by thought
// index modulo bank size so the sequence is deterministic.
var continuousBanks = map[prompts.Language][]string{
	prompts.LangEnglish: {
		"Still thinking this through.",
		"Cross-checking that against what I know.",
		"Let me reconsider one detail.",
		"Connecting this back to the original question.",
		"Double-checking my reasoning so far.",
		"Exploring one more possibility before I settle.",
		"Tightening up the answer in my head.",
		"Making sure I haven't missed an edge case.",
	},
	prompts.LangChinese: {
		"还在继续梳理这个问题。",
		"把这一点和已知的信息对照一下。",
		"让我重新考虑一个细节。",
		"把思路连回到最初的问题上。",
		"再检查一遍目前的推理。",
		"在下结论之前再考虑一种可能。",
		"在脑子里把答案再收紧一些。",
		"确认一下有没有漏掉的特殊情况。",
	},
}

// Closing lines appended on natural termination, language-matched to the
// user's message.
var closingLines = map[prompts.Language]string{
	prompts.LangEnglish: "Okay, I'm ready to answer.",
	prompts.LangChinese: "好，我想清楚了，可以回答了。",
}

func closingLine(lang prompts.Language) string {
	if line, ok := closingLines[lang]; ok {
		return line
	}
	return closingLines[prompts.LangEnglish]
}

func initialBank(lang prompts.Language, topic Topic) []string {
	banks, ok := initialBanks[lang]
	if !ok {
		banks = initialBanks[prompts.LangEnglish]
	}
	if bank, ok := banks[topic]; ok {
		return bank
	}
	return banks[TopicGeneral]
}

func continuousBank(lang prompts.Language) []string {
	if bank, ok := continuousBanks[lang]; ok {
		return bank
	}
	return continuousBanks[prompts.LangEnglish]
}
