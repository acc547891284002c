package parser

// Record is one key/value entry of a .strings file.
type Record struct {
	// Key is the literal before the first "=", as read by ExtractKey.
	Key string
	// RawLines are the exact source lines of the record, including comment and
	// blank lines consumed while scanning toward the key or inside a continued value.
	RawLines []string
}

// Document holds the result of a single scan over a file.
type Document struct {
	// Records are the emitted records in file order.
	Records []Record
	// Preamble holds the blank and comment lines that precede the first
	// record's key line. The first record's RawLines start at its key line.
	Preamble []string
}

// KeySet is a membership set of record keys.
type KeySet map[string]struct{}

// NewKeySet builds the key set of a record list.
func NewKeySet(records []Record) KeySet {
	ks := make(KeySet, len(records))
	for _, r := range records {
		ks[r.Key] = struct{}{}
	}
	return ks
}

// Has reports whether key is in the set.
func (ks KeySet) Has(key string) bool {
	_, ok := ks[key]
	return ok
}

// Keys returns the keys of a record list in order, duplicates included.
func Keys(records []Record) []string {
	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = r.Key
	}
	return keys
}
