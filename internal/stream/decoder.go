// Package stream implements the event-stream framing used by the text
// generation endpoint: `data: <json>` lines carrying OpenAI-style chat
// completion deltas, terminated by `data: [DONE]`.
package stream

import (
	"bytes"
	"encoding/json"
)

const (
	dataPrefix   = "data: "
	doneSentinel = "[DONE]"
)

type delta struct {
	Content *string `json:"content"`
}

type choice struct {
	Delta delta `json:"delta"`
}

type chunk struct {
	Choices []choice `json:"choices"`
}

type lineKind int

const (
	lineSkip lineKind = iota
	lineContent
	lineDone
	lineIncomplete
)

func parseLine(raw []byte) (string, lineKind) {
	line := bytes.TrimSuffix(raw, []byte("\r"))
	if len(line) == 0 || line[0] == ':' {
		return "", lineSkip
	}
	if !bytes.HasPrefix(line, []byte(dataPrefix)) {
		return "", lineSkip
	}

	payload := line[len(dataPrefix):]
	if string(payload) == doneSentinel {
		return "", lineDone
	}

	var c chunk
	if err := json.Unmarshal(payload, &c); err != nil {
		return "", lineIncomplete
	}
	if len(c.Choices) == 0 || c.Choices[0].Delta.Content == nil || *c.Choices[0].Delta.Content == "" {
		return "", lineSkip
	}
	return *c.Choices[0].Delta.Content, lineContent
}

// Decoder turns arbitrarily chunked stream bytes into content increments.
// The zero value is ready to use. A Decoder is not safe for concurrent use.
type Decoder struct {
	buf  []byte
	done bool
}

// Feed buffers chunk and returns the increments completed by it. A line whose
// JSON payload does not parse stays at the head of the buffer until more bytes
// arrive or Flush is called.
func (d *Decoder) Feed(p []byte) []string {
	if d.done {
		return nil
	}
	d.buf = append(d.buf, p...)
	return d.drain(false)
}

// Flush processes whatever is still buffered at end of stream, including a
// final line without a trailing newline. Unparseable lines are dropped.
func (d *Decoder) Flush() []string {
	if d.done {
		return nil
	}
	out := d.drain(true)
	if d.done || len(d.buf) == 0 {
		d.buf = nil
		return out
	}

	content, kind := parseLine(d.buf)
	d.buf = nil
	switch kind {
	case lineContent:
		out = append(out, content)
	case lineDone:
		d.done = true
	}
	return out
}

// Done reports whether the terminating sentinel has been seen.
func (d *Decoder) Done() bool {
	return d.done
}

func (d *Decoder) drain(final bool) []string {
	var out []string
	for !d.done {
		i := bytes.IndexByte(d.buf, '\n')
		if i < 0 {
			break
		}

		content, kind := parseLine(d.buf[:i])
		switch kind {
		case lineIncomplete:
			if !final {
				return out
			}
		case lineDone:
			d.done = true
			d.buf = nil
			return out
		case lineContent:
			out = append(out, content)
		}
		d.buf = d.buf[i+1:]
	}

	if len(d.buf) == 0 {
		d.buf = nil
	}
	return out
}
