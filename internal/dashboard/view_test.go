package dashboard

import (
	"bytes"
	"strings"
	"testing"

	"enrollment-dashboard-service/internal/enrollments/core/domain"
)

func TestFormatCount(t *testing.T) {
	tests := map[int64]string{
		0:       "0",
		150:     "150",
		1234:    "1.234",
		1234567: "1.234.567",
	}
	for n, want := range tests {
		if got := FormatCount(n); got != want {
			t.Errorf("FormatCount(%d) = %q, want %q", n, got, want)
		}
	}
}

// ------------------------------------------------------------
// CHART
// ------------------------------------------------------------

func TestChartHeight(t *testing.T) {
	if h := ChartHeight(0); h != 260 {
		t.Fatalf("expected floor 260, got %d", h)
	}
	if h := ChartHeight(9); h != 260 {
		t.Fatalf("expected floor 260 for 9 rows, got %d", h)
	}
	if h := ChartHeight(20); h != 560 {
		t.Fatalf("expected 28*20, got %d", h)
	}
}

func TestNewBarChart_ProportionalBars(t *testing.T) {
	rows := []domain.AggregatedRow{
		{Branch: "CENTRO", Count: 200},
		{Branch: "NORTE", Count: 50},
		{Branch: "SUL", Count: 0},
	}

	ch := NewBarChart(rows, FormatCount)

	if len(ch.Bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(ch.Bars))
	}
	if ch.Bars[0].Width != float64(ch.PlotWidth) {
		t.Fatalf("largest bar should span the plot, got %v", ch.Bars[0].Width)
	}
	if ch.Bars[1].Width != float64(ch.PlotWidth)/4 {
		t.Fatalf("expected quarter width, got %v", ch.Bars[1].Width)
	}
	if ch.Bars[2].Width != 0 {
		t.Fatalf("zero count should have zero width")
	}
	if !(ch.Bars[0].Y < ch.Bars[1].Y && ch.Bars[1].Y < ch.Bars[2].Y) {
		t.Fatalf("bars should be stacked top to bottom in row order")
	}
}

func TestNewBarChart_AllZero(t *testing.T) {
	ch := NewBarChart([]domain.AggregatedRow{{Branch: "A"}}, FormatCount)
	if ch.Bars[0].Width != 0 {
		t.Fatalf("expected zero width, got %v", ch.Bars[0].Width)
	}
}

// ------------------------------------------------------------
// CSV
// ------------------------------------------------------------

func TestEncodeCSV(t *testing.T) {
	out, err := EncodeCSV([]domain.AggregatedRow{
		{Branch: "CENTRO", Count: 150},
		{Branch: "VILA; NOVA", Count: 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("expected UTF-8 BOM")
	}

	want := "Filial;Matrículas\nCENTRO;150\n\"VILA; NOVA\";3\n"
	if got := string(out[3:]); got != want {
		t.Fatalf("unexpected csv:\n%q\nwant\n%q", got, want)
	}
}

func TestEncodeCSV_Empty(t *testing.T) {
	out, err := EncodeCSV(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(string(out), "Filial;Matrículas\n") {
		t.Fatalf("expected header only, got %q", out)
	}
}
