package notifier

import (
	"fmt"
	"strings"

	"stock-dashboard/src/models"
)

const (
	codeFence     = "```"
	emptyResultMD = "_검색된 종목이 없습니다._"
)

// FormatSearchMessage renders the Markdown summary sent for a completed search.
func FormatSearchMessage(title string, stocks []models.MSearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s 검색 결과*\n", title)

	if len(stocks) == 0 {
		b.WriteString(emptyResultMD)
		return b.String()
	}

	lines := make([]string, len(stocks))
	for i, s := range stocks {
		lines[i] = fmt.Sprintf("- %s (%s)", s.Name, s.Code)
	}

	b.WriteString(codeFence + "\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n" + codeFence)
	return b.String()
}
