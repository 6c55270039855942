package mcptool

import (
	"fmt"
	"strconv"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/fpl-assistant/internal/domain/nameindex"
	"github.com/riskibarqy/fpl-assistant/internal/domain/refdata"
)

// report builds the markdown a tool hands back to the model. Buffers come
// from a shared pool; String releases the buffer, so a report is single-use.
type report struct {
	buf *bytebufferpool.ByteBuffer
}

func newReport() *report {
	return &report{buf: bytebufferpool.Get()}
}

func (r *report) heading(text string) *report {
	r.buf.WriteString("## ")
	r.buf.WriteString(text)
	r.buf.WriteString("\n\n")
	return r
}

func (r *report) line(text string) *report {
	r.buf.WriteString(text)
	r.buf.WriteByte('\n')
	return r
}

func (r *report) linef(format string, args ...any) *report {
	fmt.Fprintf(r.buf, format, args...)
	r.buf.WriteByte('\n')
	return r
}

func (r *report) bullet(text string) *report {
	r.buf.WriteString("- ")
	r.buf.WriteString(text)
	r.buf.WriteByte('\n')
	return r
}

func (r *report) bulletf(format string, args ...any) *report {
	r.buf.WriteString("- ")
	fmt.Fprintf(r.buf, format, args...)
	r.buf.WriteByte('\n')
	return r
}

func (r *report) blank() *report {
	r.buf.WriteByte('\n')
	return r
}

func (r *report) String() string {
	out := string(r.buf.Bytes())
	bytebufferpool.Put(r.buf)
	r.buf = nil
	return out
}

// price renders tenths-of-a-million as the familiar £X.Xm.
func price(tenths int) string {
	return "£" + strconv.FormatFloat(float64(tenths)/10.0, 'f', 1, 64) + "m"
}

func playerLine(p refdata.Player) string {
	return fmt.Sprintf("%s (%s, %s) %s — form %s, %d pts, %s%% owned",
		p.WebName, p.TeamName, p.Position, price(p.NowCost), p.Form, p.TotalPoints, p.SelectedByPercent)
}

func writeCandidates(r *report, matches []nameindex.Match) {
	for _, m := range matches {
		r.bulletf("%s (%s, %s) %s — score %.2f",
			m.Player.WebName, m.Player.TeamName, m.Player.Position, price(m.Player.NowCost), m.Score)
	}
}
