package reconcile

import (
	"strings-sync/internal/parser"
	"strings-sync/internal/textutil"
)

// Result is the reconciled content of one target file.
type Result struct {
	// Lines is the new file body, one entry per line, without line terminators.
	Lines []string
	// Added lists the keys copied from the original, in original order.
	Added []string
	// Dropped lists the target keys the original no longer defines, in target order.
	Dropped []string
}

// Reconcile rebuilds a target file so it holds exactly the original's keys in
// the original's order. A key the target already has keeps the target's raw
// lines; a missing key gets the original's raw lines. The target's header
// comments go first, followed by one blank line, and blank line runs are
// collapsed.
//
// The comments bound to the first emitted record join the header, so the
// output parses back to the same header and reconciling it again is a no-op.
func Reconcile(original []parser.Record, target []string) *Result {
	doc := parser.ParseDocument(target)

	existing := make(map[string]parser.Record, len(doc.Records))
	for _, rec := range doc.Records {
		if _, ok := existing[rec.Key]; !ok {
			existing[rec.Key] = rec
		}
	}

	res := &Result{}
	header := comments(doc.Preamble)
	var body []string

	emitted := make(parser.KeySet, len(original))
	for _, rec := range original {
		if emitted.Has(rec.Key) {
			continue
		}
		emitted[rec.Key] = struct{}{}

		raw := rec.RawLines
		if found, ok := existing[rec.Key]; ok {
			raw = found.RawLines
		} else {
			res.Added = append(res.Added, rec.Key)
		}

		if len(emitted) == 1 {
			lead, rest := parser.SplitLead(raw)
			header = append(header, comments(lead)...)
			raw = rest
		}
		body = append(body, raw...)
	}

	for _, rec := range doc.Records {
		if emitted.Has(rec.Key) {
			continue
		}
		// Mark as handled so a duplicated stale key is reported once.
		emitted[rec.Key] = struct{}{}
		res.Dropped = append(res.Dropped, rec.Key)
	}

	out := header
	if len(header) > 0 {
		out = append(out, "")
	}
	res.Lines = Normalize(append(out, body...))
	return res
}

// comments returns the non-blank lines of lines.
func comments(lines []string) []string {
	var out []string
	for _, line := range lines {
		if !textutil.IsBlank(line) {
			out = append(out, line)
		}
	}
	return out
}

// Normalize collapses each run of blank lines into a single empty line and
// strips blank lines at both ends.
func Normalize(lines []string) []string {
	out := make([]string, 0, len(lines))
	lastBlank := false

	for _, line := range lines {
		if textutil.IsBlank(line) {
			if !lastBlank {
				out = append(out, "")
				lastBlank = true
			}
			continue
		}
		out = append(out, line)
		lastBlank = false
	}

	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return out
}
