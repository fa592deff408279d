package dashboard

import (
	"time"

	"enrollment-dashboard-service/internal/enrollments/core/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const updatedAtLayout = "02/01/2006 15:04"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatCount renders n with pt-BR digit grouping, e.g. 1.234.
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

type RowView struct {
	Branch string
	Count  string
}

type PageView struct {
	Title         string
	ReloadSeconds int
	Error         string

	Total     string
	UpdatedAt string
	Rows      []RowView
	Chart     BarChart
	CSVURL    string
	Footer    string
}

func newPageView(title string, snap *domain.Snapshot, reload time.Duration, csvURL string) PageView {
	rows := domain.SortRows(snap.Rows)

	views := make([]RowView, 0, len(rows))
	for _, r := range rows {
		views = append(views, RowView{Branch: r.Branch, Count: FormatCount(r.Count)})
	}

	return PageView{
		Title:         title,
		ReloadSeconds: int(reload / time.Second),
		Total:         FormatCount(snap.Total),
		UpdatedAt:     snap.FetchedAt.Format(updatedAtLayout),
		Rows:          views,
		Chart:         NewBarChart(rows, FormatCount),
		CSVURL:        csvURL,
		Footer:        "BI - Matriz Educação",
	}
}

func newErrorView(title string, err error, reload time.Duration) PageView {
	return PageView{
		Title:         title,
		ReloadSeconds: int(reload / time.Second),
		Error:         "Falha ao executar a consulta: " + err.Error(),
	}
}
