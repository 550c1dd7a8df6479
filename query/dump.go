package query

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sarchlab/symtrace/symeval"
)

var titleCaser = cases.Title(language.English)

// kindLabel names m's concrete message kind for display. The four known
// kinds map to fixed labels (e.g. "Unconditional Branch"); any other type
// is labeled by title-casing its Go type name.
func kindLabel(m symeval.Message) string {
	switch m.(type) {
	case symeval.MemoryMessage:
		return "Memory"
	case symeval.BranchMessage:
		return "Branch"
	case symeval.UnconditionalBranchMessage:
		return "Unconditional Branch"
	case symeval.WarningMessage:
		return "Warning"
	default:
		return titleCaser.String(strings.ReplaceAll(fmt.Sprintf("%T", m), "symeval.", ""))
	}
}

// Dump renders v's full message and warning log as two tables written to w,
// mirroring core/util.go's PrintState pattern: gated by verbose, and built
// with go-pretty/v6/table rather than hand-formatted text.
func Dump(w io.Writer, v View, verbose bool) {
	if !verbose {
		return
	}

	msgTable := table.NewWriter()
	msgTable.SetOutputMirror(w)
	msgTable.SetTitle("Messages")
	msgTable.AppendHeader(table.Row{"IP", "Kind", "Message"})
	for _, m := range v.Messages() {
		msgTable.AppendRow(table.Row{ipLabel(m.IP, m.HasIP), kindLabel(m.Message), m.Message.String()})
	}
	msgTable.Render()

	fmt.Fprintln(w)

	warnTable := table.NewWriter()
	warnTable.SetOutputMirror(w)
	warnTable.SetTitle("Warnings")
	warnTable.AppendHeader(table.Row{"IP", "Warning"})
	for _, wn := range v.Warnings() {
		warnTable.AppendRow(table.Row{ipLabel(wn.IP, wn.HasIP), wn.Text})
	}
	warnTable.Render()
}

// DumpIP renders only the messages recorded at ip.
func DumpIP(w io.Writer, v View, ip uint64) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Messages @ %s", ipLabel(ip, true)))
	t.AppendHeader(table.Row{"Message"})
	for _, m := range v.MessagesByIP(ip) {
		t.AppendRow(table.Row{m.String()})
	}
	t.Render()
}
