package importer

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/brokerstatement/internal/ib"
	"github.com/cleared-dev/brokerstatement/internal/statement"
)

type fakeParser struct{ format string }

func (p fakeParser) Parse(io.Reader) (*statement.Statement, error) { return nil, nil }
func (p fakeParser) Format() string                              { return p.format }

const (
	importDir    = "import"
	processedDir = "import/processed"
)

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(fakeParser{format: "fake"})
	p := r.Get("fake")
	require.NotNil(t, p)
	assert.Equal(t, "fake", p.Format())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(fakeParser{format: "Fake"})
	assert.NotNil(t, r.Get("fake"))
	assert.NotNil(t, r.Get("FAKE"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(fakeParser{format: "fake"})
	assert.Panics(t, func() { r.Register(fakeParser{format: "FAKE"}) })
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	p := r.Get("ib")
	require.NotNil(t, p)
	assert.IsType(t, &ib.Parser{}, p)
}

func TestParseFile(t *testing.T) {
	p := DefaultRegistry().Get("ib")

	st, err := ParseFile(p, "../../testdata/ib_statement.csv")
	require.NoError(t, err)
	assert.Len(t, st.Deposits, 2)

	bad := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("x\n"), 0o644))
	_, err = ParseFile(p, bad)
	require.ErrorIs(t, err, ib.ErrInvalidRecord)
	assert.Contains(t, err.Error(), "parsing bad.csv as ib")

	_, err = ParseFile(p, filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, importDir), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, importDir, "statement.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, importDir, "STATEMENT2.CSV"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, importDir, "other.txt"), []byte("data"), 0o644))

	files, err := Scan(dir, importDir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "STATEMENT2.CSV", files[0].Name)
	assert.Equal(t, "statement.csv", files[1].Name)
	assert.Equal(t, int64(4), files[1].Size)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, processedDir), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, importDir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, processedDir, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir, importDir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_MissingDir(t *testing.T) {
	files, err := Scan(t.TempDir(), importDir)
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, importDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, importDir, "statement.csv"), []byte("data"), 0o644))

	require.NoError(t, MarkProcessed(dir, importDir, processedDir, "statement.csv"))

	_, err := os.Stat(filepath.Join(dir, importDir, "statement.csv"))
	assert.True(t, os.IsNotExist(err))

	info, err := os.Stat(filepath.Join(dir, processedDir, "statement.csv"))
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestMarkProcessed_Missing(t *testing.T) {
	err := MarkProcessed(t.TempDir(), importDir, processedDir, "gone.csv")
	assert.ErrorContains(t, err, "moving gone.csv to processed")
}
