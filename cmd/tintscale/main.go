// tintscale - contrast-targeted colour scales
//
// tintscale builds OKHSL colour scales whose steps hit WCAG contrast
// targets against a background, and exports them for Tailwind CSS or as
// PNG swatches.
package main

import (
	"github.com/jmylchreest/tintscale/internal/cli"
)

func main() {
	cli.Execute()
}
