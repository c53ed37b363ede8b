package telemetry

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
)

// Parser converts raw log text into samples.
type Parser struct {
	strict  bool
	indexed bool
}

// Option configures a Parser.
type Option func(*Parser)

// Lenient coerces fields the way a browser's Number() does: empty fields
// are 0, "Infinity" is accepted and anything unparsable becomes NaN. Missing
// fields are NaN and extra fields are ignored.
func Lenient() Option {
	return func(p *Parser) { p.strict = false }
}

// WithIndexColumn expects a leading sequence number on every row and drops it.
func WithIndexColumn() Option {
	return func(p *Parser) { p.indexed = true }
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{strict: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse is shorthand for NewParser(opts...).Parse(text).
func Parse(text string, opts ...Option) ([]Sample, error) {
	return NewParser(opts...).Parse(text)
}

// ParseReader reads r to EOF and parses the result.
func (p *Parser) ParseReader(r io.Reader) ([]Sample, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return p.Parse(string(data))
}

// Parse splits text into rows and converts each row positionally into
// x, y, z, temperatureC and light. Blank rows are skipped but still counted,
// so error line numbers match the input.
func (p *Parser) Parse(text string) ([]Sample, error) {
	lines := strings.Split(text, "\n")
	samples := make([]Sample, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s, err := p.parseLine(i+1, line)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}

	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	return samples, nil
}

func (p *Parser) parseLine(lineNo int, line string) (Sample, error) {
	fields := strings.Split(line, ",")
	want := NumFields
	if p.indexed {
		want++
	}

	if len(fields) != want && p.strict {
		return Sample{}, &MalformedInputError{Line: lineNo, Text: line, Field: -1, Wrapped: ErrFieldCount}
	}
	if p.indexed && len(fields) > 0 {
		fields = fields[1:]
	}

	var vals [NumFields]float64
	for i := range vals {
		if i >= len(fields) {
			vals[i] = math.NaN()
			continue
		}
		raw := strings.TrimSpace(fields[i])
		if !p.strict {
			vals[i] = looseNumber(raw)
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Sample{}, &MalformedInputError{Line: lineNo, Text: raw, Field: i, Wrapped: ErrBadNumber}
		}
		vals[i] = v
	}
	return sampleFromFields(vals), nil
}

// looseNumber converts a trimmed field with Number() semantics. Only plain
// decimal literals, signed Infinity and unsigned 0x/0o/0b integers are
// numbers; everything else is NaN.
func looseNumber(s string) float64 {
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			return radixNumber(s[2:], base)
		}
	}

	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c == '.', c == 'e', c == 'E', c == '+', c == '-':
		default:
			return math.NaN()
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}

func radixNumber(digits string, base int) float64 {
	var v float64
	for _, c := range strings.ToLower(digits) {
		var d int
		switch {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case c >= 'a' && c <= 'f':
			d = int(c-'a') + 10
		default:
			return math.NaN()
		}
		if d >= base {
			return math.NaN()
		}
		v = v*float64(base) + float64(d)
	}
	return v
}
