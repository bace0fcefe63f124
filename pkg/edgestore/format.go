package edgestore

import (
	"bufio"
	"io"
	"strings"

	"github.com/matzehuels/followgraph/pkg/errors"
	"github.com/matzehuels/followgraph/pkg/graph"
)

// Header is the mandatory first line of an edge log.
const Header = "follower,followed"

// FormatEdge returns the log line for e, including the trailing newline.
func FormatEdge(e graph.Edge) string {
	return e.String() + "\n"
}

// ParseEdge parses one log line (without its newline) into an edge.
// Blanks around each field are tolerated.
func ParseEdge(line string) (graph.Edge, error) {
	follower, followed, ok := strings.Cut(line, ",")
	if !ok || strings.Contains(followed, ",") {
		return graph.Edge{}, errors.New(errors.ErrCodeCorruptFormat, "expected two comma-separated integers, got %q", line)
	}
	a, err := graph.ParseNodeID(strings.TrimSpace(follower))
	if err != nil {
		return graph.Edge{}, errors.Wrap(errors.ErrCodeCorruptFormat, err, "invalid follower id in %q", line)
	}
	b, err := graph.ParseNodeID(strings.TrimSpace(followed))
	if err != nil {
		return graph.Edge{}, errors.Wrap(errors.ErrCodeCorruptFormat, err, "invalid followed id in %q", line)
	}
	return graph.Edge{Follower: a, Followed: b}, nil
}

// scanResult describes what a scan found beyond the edges themselves.
type scanResult struct {
	empty bool // no bytes at all
	lines int  // data lines read
}

// scan reads an edge log from r and calls fn for every data line.
//
// The header must match exactly and every line, the last one included, must
// end with a newline and parse. Anything else is a CORRUPT_FORMAT error naming
// the line; the caller never repairs the file. An unterminated final line is
// most likely an interrupted append, so it is rejected rather than loaded as
// a possibly truncated edge.
func scan(r io.Reader, fn func(graph.Edge)) (scanResult, error) {
	var res scanResult
	br := bufio.NewReaderSize(r, 64*1024)

	for lineNo := 1; ; lineNo++ {
		raw, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return res, errors.Wrap(errors.ErrCodeStorage, err, "read edge log")
		}
		if raw == "" && err == io.EOF {
			res.empty = lineNo == 1
			return res, nil
		}

		line, terminated := strings.CutSuffix(raw, "\n")
		if !terminated {
			return res, errors.New(errors.ErrCodeCorruptFormat,
				"line %d: %q has no trailing newline (interrupted write?); fix or remove it to continue", lineNo, line)
		}

		if lineNo == 1 {
			if line != Header {
				return res, errors.New(errors.ErrCodeCorruptFormat, "line 1: header must be %q, got %q", Header, line)
			}
			continue
		}

		e, perr := ParseEdge(line)
		if perr != nil {
			return res, errors.New(errors.ErrCodeCorruptFormat, "line %d: %s", lineNo, errors.UserMessage(perr))
		}
		res.lines++
		fn(e)
	}
}
