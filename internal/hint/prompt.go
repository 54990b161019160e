package hint

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a SQL tutor coaching someone through window-function exercises. You give hints, not answers.`

func buildUserMessage(in Input, schemaText string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Exercise type: %s\n", in.Challenge.Category.Label())
	fmt.Fprintf(&b, "Question: %s\n", in.Challenge.Question)
	fmt.Fprintf(&b, "\nSchema:\n%s\n", schemaText)

	b.WriteString("\nLearner's query:\n")
	if strings.TrimSpace(in.Query) == "" {
		b.WriteString("(nothing written yet)\n")
	} else {
		fmt.Fprintf(&b, "%s\n", in.Query)
	}

	if in.Outcome != "" {
		fmt.Fprintf(&b, "\nLast result: %s\n", in.Outcome.Message())
	}
	if in.ErrorMessage != "" {
		fmt.Fprintf(&b, "Database error: %s\n", in.ErrorMessage)
	}

	b.WriteString(`
Instructions:
1. Give one hint of at most two sentences that moves the learner one step closer.
2. Name the clause or function to look at (OVER, PARTITION BY, ORDER BY, ROWS BETWEEN, LAG, RANK, ...) but do not write the finished query.
3. If the query fails to run, point at the error first.
4. If nothing is written yet, suggest where to start.`)

	return b.String()
}
