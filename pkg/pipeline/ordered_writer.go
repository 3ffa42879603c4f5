package pipeline

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/askiada/go-hybrid-cipher/pkg/pipeline/model"
)

// orderedWriter buffers records arriving out of order and writes them by line number.
type orderedWriter struct {
	w       *bufio.Writer
	next    int
	pending map[int]string
}

func newOrderedWriter(w io.Writer) *orderedWriter {
	return &orderedWriter{
		w:       bufio.NewWriter(w),
		pending: make(map[int]string),
	}
}

func (o *orderedWriter) write(rec model.Record, blank *lineSet) error {
	o.pending[rec.Line] = rec.Text

	return o.drain(blank)
}

func (o *orderedWriter) drain(blank *lineSet) error {
	for {
		if blank.has(o.next) {
			if err := o.writeLine(""); err != nil {
				return err
			}

			continue
		}
		text, ok := o.pending[o.next]
		if !ok {
			return nil
		}
		delete(o.pending, o.next)
		if err := o.writeLine(text); err != nil {
			return err
		}
	}
}

func (o *orderedWriter) writeLine(text string) error {
	_, err := o.w.WriteString(text + "\n")
	if err != nil {
		return errors.Wrap(err, "unable to write line")
	}
	o.next++

	return nil
}

// flush writes the trailing empty lines and flushes the buffer. It must run after the
// pipeline has finished.
func (o *orderedWriter) flush(blank *lineSet) error {
	err := o.drain(blank)
	if err != nil {
		return err
	}
	if len(o.pending) > 0 {
		return errors.Errorf("%d lines were never written", len(o.pending))
	}

	return errors.Wrap(o.w.Flush(), "unable to flush output")
}
