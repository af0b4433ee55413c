// Package diagnostics holds small debugging aids that sit outside the
// emulation core itself: a struct-graph dump for inspecting how the machine
// is wired, a Markdown-to-HTML renderer for the about text the cmd
// front-end prints, and a live runtime-stats dashboard.
package diagnostics

import (
	"io"

	"github.com/bradleyjkemp/memviz"
)

// DumpGraph writes a Graphviz DOT description of v's field structure to w,
// grounded directly on the teacher's own use of memviz.Map in
// debugger/terminal/commandline/parser_test.go to visualise a parsed
// command tree; here it is pointed at a *hardware.C64 (or any of its
// sub-systems) instead, for inspecting how the machine got wired together.
func DumpGraph(w io.Writer, v interface{}) {
	memviz.Map(w, v)
}
