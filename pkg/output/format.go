// Package output provides utilities for formatting and displaying
// recommendation batches.
package output

import (
	"fmt"
	"strings"

	"github.com/adlumen/budget-engine/internal/engine"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(recommendations []engine.Recommendation) {
	p := message.NewPrinter(language.English)
	fmt.Printf("Campaign                       | Action  | Conf | Adjust | Current      | Recommended  | Reason\n")
	fmt.Printf("________                       | ______  | ____ | ______ | _______      | ___________  | ______\n")
	for _, rec := range recommendations {
		_, _ = p.Printf("%-30s | %-7s | %4d | %-6s | $%.2f | $%.2f | %s\n",
			rec.Campaign, rec.Action, rec.ConfidenceScore, rec.AdjustmentType,
			rec.CurrentBudget, rec.RecommendedBudget, rec.ReasonSummary)
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(recommendations []engine.Recommendation) {
	fmt.Print(CsvString(recommendations))
}

// CsvString renders the batch as a CSV document, the export format the API
// and CLI share.
func CsvString(recommendations []engine.Recommendation) string {
	var b strings.Builder
	b.WriteString(`"campaign","action","adjustmentType","confidenceScore","currentBudget","recommendedBudget","budgetDelta","utilization","stopLoss","guardrails","reason"`)
	b.WriteString("\n")
	for _, rec := range recommendations {
		b.WriteString(fmt.Sprintf(`"%s","%s","%s","%d","%.2f","%.2f","%.2f","%.4f","%t","%s","%s"`,
			escape(rec.Campaign), rec.Action, rec.AdjustmentType, rec.ConfidenceScore,
			rec.CurrentBudget, rec.RecommendedBudget, rec.BudgetDelta, rec.Utilization,
			rec.StopLoss, escape(strings.Join(rec.Guardrails, "; ")), escape(rec.ReasonSummary)))
		b.WriteString("\n")
	}
	return b.String()
}

func escape(field string) string {
	return strings.ReplaceAll(field, `"`, `""`)
}
