package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/jbweber/zdir/internal/makevm"
)

// TableFormatter formats results as a return-code row followed by the
// response and any directory statements.
type TableFormatter struct {
	// NoHeaders omits the header row.
	NoHeaders bool
}

// FormatResults formats r as text.
func (f *TableFormatter) FormatResults(r makevm.Results) (string, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "OVERALLRC\tRC\tRS\tERRNO")
	}
	_, _ = fmt.Fprintf(w, "%d\t%d\t%d\t%d\n", r.OverallRC, r.RC, r.RS, r.Errno)
	_ = w.Flush()

	writeSection(&buf, "Response:", r.Response)
	writeSection(&buf, "Directory entry:", r.Directory)
	return buf.String(), nil
}

func writeSection(buf *bytes.Buffer, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	buf.WriteString(title + "\n")
	for _, l := range lines {
		buf.WriteString("  " + l + "\n")
	}
}
