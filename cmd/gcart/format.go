package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// formatRupees formats a rupee amount with comma separators and two decimals
// (e.g. 45230.5 -> "45,230.50").
func formatRupees(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	remainder := len(whole) % 3
	if remainder > 0 {
		b.WriteString(whole[:remainder])
	}
	for i := remainder; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}
	out := b.String() + frac
	if neg {
		return "-" + out
	}
	return out
}

// printTable writes rows in aligned columns.
func printTable(w io.Writer, headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// yesNo renders a boolean as a status word.
func yesNo(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}

// surfaced prefers the synchronizer's user-facing message over the raw
// transport error.
func surfaced(err error, msg string) error {
	if msg != "" {
		return errors.New(msg)
	}
	return err
}
