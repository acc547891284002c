package parser

import (
	"strings"

	"strings-sync/internal/textutil"

	"github.com/rs/zerolog/log"
)

// Parse returns the records of a .strings file in file order. Comment and
// blank lines scanned toward a key stay in that record's RawLines.
func Parse(lines []string) []Record {
	var records []Record
	scan(lines, func(rec Record, ok bool) {
		if ok {
			records = append(records, rec)
		}
	})
	return records
}

// ParseDocument scans a whole file, separating its header from the records.
// Every blank and comment line before the first record's key line forms the
// preamble, including the body of a multi-line block comment and the lines
// that Parse would bind to the first record. Lines of stretches without a key
// (malformed lines, an empty key, unterminated input) are dropped after the
// first record.
func ParseDocument(lines []string) *Document {
	doc := &Document{}
	inBlock := false

	scan(lines, func(rec Record, ok bool) {
		if ok {
			if len(doc.Records) == 0 {
				lead, rest := SplitLead(rec.RawLines)
				doc.Preamble = append(doc.Preamble, lead...)
				rec.RawLines = rest
			}
			doc.Records = append(doc.Records, rec)
			return
		}

		if len(doc.Records) > 0 {
			return
		}
		for _, line := range rec.RawLines {
			if inBlock || textutil.IsBlank(line) || textutil.IsComment(line) {
				doc.Preamble = append(doc.Preamble, line)
				inBlock = opensBlock(line, inBlock)
			}
		}
	})

	return doc
}

// SplitLead splits a record's raw lines into the blank and comment lines
// scanned before its key line and the remaining lines.
func SplitLead(raw []string) (lead, rest []string) {
	n := 0
	for n < len(raw) && (textutil.IsBlank(raw[n]) || textutil.IsComment(raw[n])) {
		n++
	}
	return raw[:n:n], raw[n:]
}

// scan calls fn for every stretch of lines in order. ok is false for a
// stretch that ended without a non-empty key.
func scan(lines []string, fn func(rec Record, ok bool)) {
	for i := 0; i < len(lines); {
		start := i
		rec, next, ok := scanRecord(lines, i)
		i = next

		ok = ok && rec.Key != ""
		if !ok && hasDelimiter(rec.RawLines) {
			log.Debug().
				Int("line", start+1).
				Int("lines", len(rec.RawLines)).
				Str("text", textutil.Truncate(firstContent(rec.RawLines), 80)).
				Msg("Discarding lines without a key")
		}
		fn(rec, ok)
	}
}

func hasDelimiter(raw []string) bool {
	for _, line := range raw {
		if strings.Contains(line, "=") {
			return true
		}
	}
	return false
}

func firstContent(raw []string) string {
	for _, line := range raw {
		if !textutil.IsBlank(line) {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// opensBlock reports whether a block comment is still open after line.
func opensBlock(line string, open bool) bool {
	trimmed := strings.TrimSpace(line)
	if !open {
		if !strings.HasPrefix(trimmed, "/*") {
			return false
		}
		trimmed = trimmed[2:]
	}
	return !strings.Contains(trimmed, "*/")
}

// scanRecord reads one record starting at lines[start]. It returns the record,
// the index to resume at and whether a key was found.
func scanRecord(lines []string, start int) (Record, int, bool) {
	var raw []string
	var text strings.Builder
	key, found := "", false
	// keyStart is the offset in text of the first line that may hold the key.
	keyStart := -1

	for i := start; i < len(lines); i++ {
		line := lines[i]
		raw = append(raw, line)
		text.WriteString(line)
		text.WriteByte('\n')

		if textutil.IsBlank(line) || textutil.IsComment(line) {
			continue
		}
		if keyStart < 0 {
			keyStart = text.Len() - len(line) - 1
		}

		// The delimiter search runs on the raw accumulated text: an "=" in an
		// earlier comment line or an escaped "=" in the key is found first, and
		// then no key is extracted.
		if !found {
			acc := text.String()
			if eq := strings.IndexByte(acc, '='); eq >= keyStart {
				key, found = ExtractKey(acc[keyStart:eq])
			}
		}

		if textutil.IsContinued(line) {
			continue
		}

		return Record{Key: key, RawLines: raw}, i + 1, found
	}

	return Record{RawLines: raw}, len(lines), false
}
