package logging

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

const timestampFormat = "15:04:05.000"

var levelColors = map[logrus.Level]color.Attribute{
	logrus.TraceLevel: color.FgWhite,
	logrus.DebugLevel: color.FgCyan,
	logrus.InfoLevel:  color.FgGreen,
	logrus.WarnLevel:  color.FgYellow,
	logrus.ErrorLevel: color.FgRed,
	logrus.FatalLevel: color.FgHiRed,
	logrus.PanicLevel: color.FgHiRed,
}

// Formatter renders one line per entry:
//
//	12:00:00.000 DEBU testbench booted providers=2 backend=framework
//
// Fields are sorted by key. The level tag is colored unless NoColor is set
// or fatih/color decided the output is not a terminal.
type Formatter struct {
	NoColor          bool
	DisableTimestamp bool
}

func (f *Formatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	if !f.DisableTimestamp {
		b.WriteString(e.Time.Format(timestampFormat))
		b.WriteByte(' ')
	}

	tag := strings.ToUpper(e.Level.String())
	if len(tag) > 4 {
		tag = tag[:4]
	}
	c := color.New(levelColors[e.Level])
	if f.NoColor {
		c.DisableColor()
	}
	b.WriteString(c.Sprint(tag))
	b.WriteByte(' ')
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
