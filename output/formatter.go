// Package output renders requests and responses for the terminal.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/fourteendev/httpman/http"
	"github.com/fourteendev/httpman/stats"
)

// Formatter renders requests, responses and stats snapshots in text
// form, optionally colored.
type Formatter struct {
	Verbose bool
	NoColor bool
	scheme  *ColorScheme
}

// NewFormatter creates a formatter. Color is disabled when noColor is
// set or when stdout is not a terminal.
func NewFormatter(verbose, noColor bool) *Formatter {
	if !noColor && !IsTerminal(os.Stdout) {
		noColor = true
	}
	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
		scheme:  scheme,
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// FormatRequest formats an outgoing request for display.
func (f *Formatter) FormatRequest(req *http.Request) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n",
		f.scheme.Method.Sprint(req.Method), f.scheme.URL.Sprint(req.URL)))

	if f.Verbose && len(req.Headers) > 0 {
		buf.WriteString("  Headers:\n")
		for _, key := range sortedKeys(req.Headers) {
			buf.WriteString(fmt.Sprintf("    %s: %s\n",
				f.scheme.HeaderKey.Sprint(key), req.Headers[key]))
		}
	}

	if req.Body != "" {
		buf.WriteString("  Body:\n")
		buf.WriteString(indentJSON(req.Body))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatResponse formats a response for display.
func (f *Formatter) FormatResponse(resp *http.Response) string {
	var buf strings.Builder

	status := f.scheme.StatusError
	switch {
	case resp.IsSuccess():
		status = f.scheme.StatusOK
	case resp.IsRedirect():
		status = f.scheme.StatusWarn
	}

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s (%dms)\n",
		status.Sprintf("%d", resp.StatusCode), resp.ElapsedMillis()))

	if f.Verbose {
		buf.WriteString("  Headers:\n")
		for _, key := range sortedKeys(resp.Headers) {
			buf.WriteString(fmt.Sprintf("    %s: %s\n",
				f.scheme.HeaderKey.Sprint(key), resp.Headers[key]))
		}
	}

	if resp.Body != "" {
		buf.WriteString("  Body:\n")
		buf.WriteString(indentJSON(resp.Body))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatSnapshot formats a stats summary for display.
func (f *Formatter) FormatSnapshot(s stats.Snapshot) string {
	var buf strings.Builder

	buf.WriteString(f.scheme.Highlight.Sprint("■ STATS") + "\n")
	buf.WriteString(fmt.Sprintf("  Requests: %d (%s %d, %s %d)\n",
		s.Total,
		f.scheme.Success.Sprint("ok"), s.Success,
		f.scheme.Error.Sprint("failed"), s.Failed))
	if s.ClientErrors > 0 || s.ServerErrors > 0 {
		buf.WriteString(fmt.Sprintf("  HTTP errors: 4xx=%d 5xx=%d\n", s.ClientErrors, s.ServerErrors))
	}
	if s.Total > 0 {
		buf.WriteString(fmt.Sprintf("  Latency: min=%s mean=%s p50=%s p90=%s p99=%s max=%s\n",
			s.MinLatency, s.Mean, s.P50, s.P90, s.P99, s.MaxLatency))
	}

	return buf.String()
}

// indentJSON pretty-prints JSON bodies; anything that is not JSON is
// returned untouched.
func indentJSON(s string) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(s), "  ", "  "); err != nil {
		return "  " + s
	}
	return "  " + pretty.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
