package usecase

import (
	"fmt"
	"strings"

	"answer-orchestrator/internal/domain"
)

const systemPrompt = "You are helping to answer a query from a user. You are specifically good at searching the internet for results."

// noResultsPlaceholder feeds the synthesis prompt when every page failed or
// the search returned nothing, so a run always produces a textual answer.
const noResultsPlaceholder = "No results were found in the search"

const reformulateTemplate = `You are helping a user search the internet and answer a question. Here's the question from the user. Based on the question, can you reformat the question into a good query for a search engine? For example, if the user's question is "I am having trouble with my computer overheating. What should I do?" you could reformat it as "How to prevent computer overheating". Respond only with the reformatted question. Do not use the site keyword in the query:

user's question: %s`

const relevanceTemplate = `You are helping a user search the internet and answer a question. Here's the raw page formatted in markdown. Based on this data, generate a summary of how this page relates to the user's question. If it answers the user's question, provide the answer and also mention the website it came from:

question: %s

page content:
%s`

const synthesisTemplate = `You are helping a user search the internet and answer a question. Here are the results of their internet search. Only answer the question based on the search results. Mention the website if the answer came from a website. Format the answer in markdown:

Search results:

%s

Based on the search results, what is the answer to the user's question?
Here's their question: %s`

func reformulateMessages(question string) []domain.Message {
	return []domain.Message{
		{Role: domain.RoleSystem, Content: systemPrompt},
		{Role: domain.RoleUser, Content: fmt.Sprintf(reformulateTemplate, question)},
	}
}

func relevanceMessages(question, pageContent string) []domain.Message {
	return []domain.Message{
		{Role: domain.RoleSystem, Content: systemPrompt},
		{Role: domain.RoleUser, Content: fmt.Sprintf(relevanceTemplate, question, pageContent)},
	}
}

func synthesisMessages(question string, summaries []domain.RelevanceSummary) []domain.Message {
	var results string
	if len(summaries) == 0 {
		results = noResultsPlaceholder
	} else {
		var sb strings.Builder
		for i, s := range summaries {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(s.Text)
		}
		results = sb.String()
	}

	return []domain.Message{
		{Role: domain.RoleSystem, Content: systemPrompt},
		{Role: domain.RoleUser, Content: fmt.Sprintf(synthesisTemplate, results, question)},
	}
}
