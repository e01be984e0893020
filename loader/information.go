package loader

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shirouto/dsprobe/probe"
	"github.com/shirouto/dsprobe/types"
)

// InfoTargets holds the probe targets listed in the startup banner.
var InfoTargets []probe.Target

// Launching prints the startup banner with the configured targets.
// Credentials never appear here.
func Launching() {
	if SystemInfoConfig != nil && !SystemInfoConfig.EnableStartupBanner() {
		return
	}

	var printer = launcher{
		Width: 100,
	}
	printer.init()

	printer.hr()
	printer.printTitle("dsprobe", "datasource connectivity prober")

	if Runtime != nil && Runtime.GetName() != "" {
		printer.printData("Environment", Runtime.GetName())
		printer.hr2()
	}

	if SystemInfoConfig != nil && !SystemInfoConfig.EnableTargetInfo() {
		return
	}

	if len(InfoTargets) == 0 {
		printer.printData("Targets", "none configured")
		printer.hr()
		return
	}

	printer.printHeading("Probe Targets")
	for _, target := range InfoTargets {
		printer.printData("Name", target.Name)
		printer.printData("Dialect", string(target.Config.EngineDialect()))
		if addr, ok := target.Config.(types.Address); ok {
			printer.printData("Address", fmt.Sprintf("%s:%s", addr.GetHost(), addr.GetPort()))
		}
		printer.printData("Connect Timeout (s)", target.Config.GetConnectTimeout())
		printer.hr2()
	}
	printer.hr()
}

type launcher struct {
	Width int

	writer     io.Writer
	separator  string
	separator2 string
}

func (l *launcher) init() {
	l.separator = strings.Repeat("/", l.Width)
	l.separator += "\n"
	l.separator2 = "// " + strings.Repeat("-", l.Width-6) + " //"
	l.separator2 += "\n"

	l.writer = os.Stdout
}

func (l *launcher) printTitle(title string, subtitle string) {
	var format = "// %-40s %53s //\n"

	fmt.Fprintf(l.writer, format, title, subtitle)
	l.hr()
}

func (l *launcher) printHeading(title string) {
	lenTitle := len(title)
	spaceL := (l.Width - 6 - lenTitle) / 2
	spaceR := spaceL

	if (lenTitle % 2) == 1 {
		spaceR++
	}

	var format = "// %-" + fmt.Sprintf("%v", spaceL) + "s%s%-" + fmt.Sprintf("%v", spaceR) + "s //\n"

	fmt.Fprintf(l.writer, format, "", title, "")
	l.hr2()
}

func (l *launcher) printData(field string, value any) {
	if value == nil {
		return
	}

	switch value.(type) {
	case string:
		var format = "// %-30s : %-61s //\n"
		fmt.Fprintf(l.writer, format, field, value)
	case bool:
		var format = "// %-30s : %-61t //\n"
		fmt.Fprintf(l.writer, format, field, value)
	case int:
		var format = "// %-30s : %-61d //\n"
		fmt.Fprintf(l.writer, format, field, value)
	}
}

func (l *launcher) hr() {
	fmt.Fprintf(l.writer, "%s", l.separator)
}

func (l *launcher) hr2() {
	fmt.Fprintf(l.writer, "%s", l.separator2)
}
