package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/inhies/go-bytesize"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

type terminalInfo struct {
	IsTerminal       bool
	StderrIsTerminal bool
	Color            bool
	StderrColor      bool
}

// detectTerminal inspects stdout and stderr, honouring --no-color and the
// NO_COLOR convention.
func detectTerminal() terminalInfo {
	stdoutTTY := term.IsTerminal(int(os.Stdout.Fd()))
	stderrTTY := term.IsTerminal(int(os.Stderr.Fd()))
	colorOff := noColor || os.Getenv("NO_COLOR") != ""
	return terminalInfo{
		IsTerminal:       stdoutTTY,
		StderrIsTerminal: stderrTTY,
		Color:            stdoutTTY && !colorOff,
		StderrColor:      stderrTTY && !colorOff,
	}
}

func checkFormat(f string) error {
	switch f {
	case formatJSON, formatTable:
		return nil
	}
	return fmt.Errorf("invalid format %q, must be %q or %q", f, formatJSON, formatTable)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// reportJSONError prints err as the command's only output, {"error": msg},
// and returns ErrReported.
func reportJSONError(w io.Writer, err error) error {
	_ = printJSON(w, map[string]string{"error": err.Error()})
	return ErrReported
}

func printTable(w io.Writer, header []string, rows [][]string) error {
	data := pterm.TableData{header}
	data = append(data, rows...)
	return pterm.DefaultTable.
		WithWriter(w).
		WithHasHeader().
		WithBoxed().
		WithData(data).
		Render()
}

func formatSize(n int64) string {
	if n <= 0 {
		return "-"
	}
	return bytesize.New(float64(n)).String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
