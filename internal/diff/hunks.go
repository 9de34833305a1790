package diff

import (
	"fmt"
	"strconv"
	"strings"

	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
)

const noNewlineMarker = `\ No newline at end of file`

// DefaultContextLines is the number of unchanged lines kept around each change.
const DefaultContextLines = 3

// op is one line of a file patch after chunks are split into lines.
type op struct {
	typ       fdiff.Operation
	text      string
	noNewline bool
	oldNo     int // 1-based line number in the old file, 0 if absent
	newNo     int // 1-based line number in the new file, 0 if absent
}

// expandChunks splits chunk contents into numbered lines.
func expandChunks(chunks []fdiff.Chunk) []op {
	var ops []op
	oldNo, newNo := 0, 0
	for _, c := range chunks {
		for _, text := range splitChunk(c.Content()) {
			o := op{typ: c.Type()}
			if strings.HasSuffix(text, "\n") {
				o.text = strings.TrimSuffix(text, "\n")
			} else {
				o.text = text
				o.noNewline = true
			}

			switch c.Type() {
			case fdiff.Equal:
				oldNo++
				newNo++
				o.oldNo, o.newNo = oldNo, newNo
			case fdiff.Delete:
				oldNo++
				o.oldNo = oldNo
			case fdiff.Add:
				newNo++
				o.newNo = newNo
			}
			ops = append(ops, o)
		}
	}
	return ops
}

func splitChunk(content string) []string {
	if content == "" {
		return nil
	}
	parts := strings.SplitAfter(content, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// hunk is a half-open range [start, end) of ops.
type hunk struct {
	start, end int
}

// groupHunks selects the ranges of ops to print, keeping context lines of
// unchanged text around each change and merging ranges that touch.
func groupHunks(ops []op, context int) []hunk {
	if context < 0 {
		context = 0
	}

	var hunks []hunk
	for i, o := range ops {
		if o.typ == fdiff.Equal {
			continue
		}
		start := max(i-context, 0)
		end := min(i+context+1, len(ops))
		if n := len(hunks); n > 0 && start <= hunks[n-1].end {
			hunks[n-1].end = max(hunks[n-1].end, end)
			continue
		}
		hunks = append(hunks, hunk{start: start, end: end})
	}
	return hunks
}

// header formats the "@@ -a,b +c,d @@" line for a hunk.
func (h hunk) header(ops []op) string {
	oldStart, oldCount := 0, 0
	newStart, newCount := 0, 0
	oldBefore, newBefore := 0, 0

	for i := 0; i < h.start; i++ {
		if ops[i].oldNo > 0 {
			oldBefore = ops[i].oldNo
		}
		if ops[i].newNo > 0 {
			newBefore = ops[i].newNo
		}
	}

	for _, o := range ops[h.start:h.end] {
		if o.oldNo > 0 {
			if oldCount == 0 {
				oldStart = o.oldNo
			}
			oldCount++
		}
		if o.newNo > 0 {
			if newCount == 0 {
				newStart = o.newNo
			}
			newCount++
		}
	}

	if oldCount == 0 {
		oldStart = oldBefore
	}
	if newCount == 0 {
		newStart = newBefore
	}

	return fmt.Sprintf("@@ -%s +%s @@", hunkRange(oldStart, oldCount), hunkRange(newStart, newCount))
}

func hunkRange(start, count int) string {
	if count == 1 {
		return strconv.Itoa(start)
	}
	return strconv.Itoa(start) + "," + strconv.Itoa(count)
}

// code returns the single-character origin code of an op, and the code of
// the end-of-file marker that follows it when the line has no newline.
func (o op) code() (line, eof byte) {
	switch o.typ {
	case fdiff.Add:
		return '+', '>'
	case fdiff.Delete:
		return '-', '<'
	default:
		return ' ', '='
	}
}
