package diagnostics

import (
	"io"

	"github.com/yuin/goldmark"
)

// AboutMarkdown is the short project blurb the cmd front-end's "about"
// command renders; kept here rather than in cmd so RenderAbout has
// something to convert without an embed directive at the call site.
const AboutMarkdown = `# gopher64

A headless Commodore 64 and 1541 disk drive emulation core.

- CPU: 6510/6502, cycle-exact instruction execution
- Chips: VIC-II (raster/IRQ timing), two CIAs, SID (register routing only)
- Storage: D64 disk images over an emulated IEC serial bus
- Cartridges: CRT-format ROM images, several common bank-switching schemes
`

// RenderAbout converts AboutMarkdown to HTML, the simplest way to give the
// CLI's "about" output headings/lists without the front-end re-implementing
// a Markdown renderer itself.
func RenderAbout(w io.Writer) error {
	return goldmark.Convert([]byte(AboutMarkdown), w)
}
