// Package output renders scan reports to an io.Writer, one report per line.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/ganwell/microscan/scan"
)

// Text writes human-readable report lines. Safe for concurrent Emit.
type Text struct {
	mu sync.Mutex
	w  io.Writer
}

func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

func (t *Text) Emit(r scan.Report) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	line := fmt.Sprintf("[%s] %s %4ddBm", r.Time.Format("15:04:05.000"), r.Addr, r.RSSI)
	if r.Name != "" {
		line += fmt.Sprintf(" %q", r.Name)
	}
	if detail := describe(r); detail != "" {
		line += " | " + detail
	}

	_, err := fmt.Fprintln(t.w, line)
	return errors.Wrap(err, "write report")
}

func (t *Text) Close() error {
	return closeWriter(t.w)
}

// describe renders the AD structures of the report, preferring the raw
// records when the transport exposed them.
func describe(r scan.Report) string {
	if len(r.Records) > 0 {
		parts := make([]string, 0, len(r.Records))
		for _, rec := range r.Records {
			parts = append(parts, rec.String())
		}
		return strings.Join(parts, " ")
	}

	var parts []string
	if len(r.Services) > 0 {
		parts = append(parts, "services="+strings.Join(r.Services, ","))
	}
	for _, sd := range r.ServiceData {
		parts = append(parts, fmt.Sprintf("svcdata=%s:%s", sd.UUID, sd.Data))
	}
	if r.MfgData != "" || r.Company != "" {
		parts = append(parts, fmt.Sprintf("mfg=%s:%s", r.Company, r.MfgData))
	}
	if r.TxPower != nil {
		parts = append(parts, fmt.Sprintf("txpwr=%ddBm", *r.TxPower))
	}
	return strings.Join(parts, " ")
}

// JSON writes one JSON object per report. Safe for concurrent Emit.
type JSON struct {
	mu sync.Mutex
	w  io.Writer
}

func NewJSON(w io.Writer) *JSON {
	return &JSON{w: w}
}

func (j *JSON) Emit(r scan.Report) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	out, err := jsoniter.Marshal(r)
	if err != nil {
		return errors.Wrap(err, "encode report")
	}
	out = append(out, '\n')

	_, err = j.w.Write(out)
	return errors.Wrap(err, "write report")
}

func (j *JSON) Close() error {
	return closeWriter(j.w)
}

// closeWriter closes the underlying writer when it owns a resource. The
// process streams stay open so a sink over stdout/stderr is reusable.
func closeWriter(w io.Writer) error {
	if w == os.Stdout || w == os.Stderr {
		return nil
	}
	if c, ok := w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
