package textfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want Encoding
	}{
		{name: "empty", raw: nil, want: UTF8},
		{name: "plain", raw: []byte(`"a" = "b";`), want: UTF8},
		{name: "utf-8 bom", raw: []byte{0xEF, 0xBB, 0xBF, '"'}, want: UTF8BOM},
		{name: "utf-16le bom", raw: []byte{0xFF, 0xFE, '"', 0}, want: UTF16LE},
		{name: "utf-16be bom", raw: []byte{0xFE, 0xFF, 0, '"'}, want: UTF16BE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.raw))
		})
	}
}

func TestRead_KeepsEncoding(t *testing.T) {
	lines := []string{`/* Übersicht */`, `"title" = "Grüße";`, `"emoji" = "😀";`}

	for _, enc := range []Encoding{UTF8, UTF8BOM, UTF16LE, UTF16BE} {
		t.Run(enc.String(), func(t *testing.T) {
			data, err := Marshal(lines, enc)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "Localizable.strings")
			require.NoError(t, os.WriteFile(path, data, 0o644))

			f, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, enc, f.Encoding)
			assert.Equal(t, lines, f.Lines)
			assert.Equal(t, data, f.Raw)
		})
	}
}

func TestRead_UTF16WithCRLF(t *testing.T) {
	data, err := Encode("\"a\" = \"b\";\r\n\"c\" = \"d\";\r\n", UTF16LE)
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xFE}, data[:2])

	path := filepath.Join(t.TempDir(), "InfoPlist.strings")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	f, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{`"a" = "b";`, `"c" = "d";`}, f.Lines)
}

func TestRead_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.strings")
	require.NoError(t, os.WriteFile(path, []byte{'"', 0xC3, 0x28, '"'}, 0o644))

	_, err := Read(path)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.strings"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshal_EmptyIsEmpty(t *testing.T) {
	for _, enc := range []Encoding{UTF8, UTF8BOM, UTF16LE, UTF16BE} {
		data, err := Marshal(nil, enc)
		require.NoError(t, err)
		assert.Empty(t, data, enc.String())
	}
}

func TestWrite_ReplacesAndKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Localizable.strings")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o600))

	require.NoError(t, Write(path, []byte("new\n")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWrite_FollowsSymlink(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "shared", "Localizable.strings")
	require.NoError(t, os.MkdirAll(filepath.Dir(dest), 0o755))
	require.NoError(t, os.WriteFile(dest, []byte("old\n"), 0o600))

	link := filepath.Join(dir, "Localizable.strings")
	if err := os.Symlink(dest, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	require.NoError(t, Write(link, []byte("new\n")))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(got))
}

func TestWrite_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "New.strings")

	require.NoError(t, Write(path, []byte("x\n")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(got))
}
