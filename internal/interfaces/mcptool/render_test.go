package mcptool

import (
	"strings"
	"testing"

	"github.com/riskibarqy/fpl-assistant/internal/domain/nameindex"
	"github.com/riskibarqy/fpl-assistant/internal/domain/refdata"
)

func TestPrice(t *testing.T) {
	cases := map[int]string{
		130: "£13.0m",
		45:  "£4.5m",
		0:   "£0.0m",
	}
	for tenths, want := range cases {
		if got := price(tenths); got != want {
			t.Errorf("price(%d)=%q, want %q", tenths, got, want)
		}
	}
}

func TestReport_BuildsMarkdown(t *testing.T) {
	out := newReport().
		heading("Title").
		line("intro").
		bullet("first").
		bulletf("second %d", 2).
		blank().
		String()

	want := "## Title\n\nintro\n- first\n- second 2\n\n"
	if out != want {
		t.Fatalf("unexpected markdown:\n%q\nwant:\n%q", out, want)
	}
}

func TestWriteCandidates_IncludesScores(t *testing.T) {
	r := newReport()
	writeCandidates(r, []nameindex.Match{
		{Player: refdata.Player{WebName: "B.Silva", TeamName: "Man City", Position: "MID", NowCost: 65}, Score: 1.0},
		{Player: refdata.Player{WebName: "T.Silva", TeamName: "Chelsea", Position: "DEF", NowCost: 50}, Score: 0.9},
	})
	out := r.String()

	for _, want := range []string{"B.Silva", "score 1.00", "T.Silva", "score 0.90", "£6.5m"} {
		if !strings.Contains(out, want) {
			t.Fatalf("candidate list missing %q:\n%s", want, out)
		}
	}
}

func TestPlayerLine(t *testing.T) {
	p := refdata.Player{
		WebName:           "Salah",
		TeamName:          "Liverpool",
		Position:          "MID",
		NowCost:           130,
		Form:              "8.5",
		TotalPoints:       211,
		SelectedByPercent: "45.3",
	}
	got := playerLine(p)
	if !strings.Contains(got, "Salah (Liverpool, MID) £13.0m") || !strings.Contains(got, "45.3% owned") {
		t.Fatalf("unexpected player line: %s", got)
	}
}
