package ai

import (
	"fmt"
	"strings"

	"ilmakase/models"
)

const patternSystemMessage = `You are a career analyst. Given several days of work logs you find the
recurring work pattern, describe the user's workflow, extract skill keywords and produce one
actionable insight. Respond with a JSON object: {"pattern": string, "workflow": string,
"keywords": [string], "insight": string}.`

func buildPatternPrompt(batch []models.RecordBatchEntry) string {
	var b strings.Builder
	b.WriteString("Analyze the following daily work logs, oldest first.\n\n")
	for _, entry := range batch {
		fmt.Fprintf(&b, "## %s\n", entry.Date.Format("2006-01-02"))
		for _, task := range entry.Contents {
			fmt.Fprintf(&b, "- %s\n", task)
		}
		b.WriteString("\n")
	}
	return b.String()
}

const dailySystemMessage = `You are a career coach reviewing one day of work. Summarize what was
accomplished, list concrete achievements and suggest improvements. Respond with a JSON object:
{"summary": string, "achievements": [string], "suggestions": [string]}.`

func buildDailyPrompt(workLogs string) string {
	return "Today's work log:\n\n" + workLogs
}

const suggestionSystemMessage = `You are a planning assistant. Given in-progress tasks grouped by
project, propose the next tasks worth doing. Respond with a JSON object:
{"suggestions": [{"task": string, "reason": string, "project": string, "priority": string}]}.`

func buildSuggestionPrompt(tasks []models.TaskInput, projectContext string) string {
	var b strings.Builder
	if projectContext != "" {
		fmt.Fprintf(&b, "Project context: %s\n\n", projectContext)
	}
	b.WriteString("Current tasks:\n")
	for _, task := range tasks {
		if task.Project != "" {
			fmt.Fprintf(&b, "- [%s] %s\n", task.Project, task.Content)
		} else {
			fmt.Fprintf(&b, "- %s\n", task.Content)
		}
	}
	return b.String()
}

const previewSystemMessage = `You translate raw work-log lines into portfolio language. For every
input line produce the skill it demonstrates and a resume-ready phrasing. Respond with a JSON
object: {"items": [{"original": string, "skill": string, "portfolioTerm": string}]}. Keep the
items in input order, one per input line.`

func buildPreviewPrompt(contents []string) string {
	var b strings.Builder
	b.WriteString("Work log lines:\n")
	for i, content := range contents {
		fmt.Fprintf(&b, "%d. %s\n", i+1, content)
	}
	return b.String()
}

const projectSystemMessage = `You are a portfolio writer. Fold several work-pattern analyses into a
single project card with a title, the tasks performed, the results achieved and a narrative
summary in markdown. Respond with a JSON object: {"title": string, "tasks": [string],
"results": [string], "summary": string}.`

func buildProjectPrompt(analyses []*models.Analysis) string {
	var b strings.Builder
	b.WriteString("Work-pattern analyses, oldest first:\n\n")
	for i, a := range analyses {
		fmt.Fprintf(&b, "## Analysis %d\n", i+1)
		fmt.Fprintf(&b, "Pattern: %s\n", a.Pattern)
		fmt.Fprintf(&b, "Workflow: %s\n", a.Workflow)
		fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(a.Keywords, ", "))
		fmt.Fprintf(&b, "Insight: %s\n\n", a.Insight)
	}
	return b.String()
}
