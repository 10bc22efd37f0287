package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qrsdp/lobreplay/errs"
	"github.com/qrsdp/lobreplay/eventlog"
	"github.com/qrsdp/lobreplay/format"
)

func writeSessionFile(t *testing.T, dir, name string, records []format.Record) string {
	t.Helper()

	header := format.FileHeader{
		VersionMajor:  1,
		VersionMinor:  1,
		LevelsPerSide: 10,
		ChunkCapacity: 4096,
	}

	path := filepath.Join(dir, name)
	require.NoError(t, eventlog.WriteSession(path, header, records, 0))

	return name
}

func TestParseV10Manifest(t *testing.T) {
	data := []byte(`{"sessions":[{"date":"2026-01-02","file":"2026-01-02.qrsdp"},{"date":"2026-01-05","file":"2026-01-05.qrsdp"}]}`)

	m, err := Parse(data, "/runs/aapl")
	require.NoError(t, err)
	require.Empty(t, m.Symbols())
	require.Len(t, m.Securities, 1)
	require.Equal(t, "", m.Securities[0].Symbol)
	require.Len(t, m.Securities[0].Sessions, 2)
}

func TestParseV11Manifest(t *testing.T) {
	data := []byte(`{"securities":[
		{"symbol":"AAPL","sessions":[{"date":"2026-01-02","file":"aapl/2026-01-02.qrsdp"}]},
		{"symbol":"MSFT","sessions":[{"date":"2026-01-02","file":"msft/2026-01-02.qrsdp"}]}
	]}`)

	m, err := Parse(data, "/runs")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"AAPL", "MSFT"}, m.Symbols())
}

func TestParseUnknownSchema(t *testing.T) {
	_, err := Parse([]byte(`{"foo":"bar"}`), "/runs")
	require.ErrorIs(t, err, errs.ErrBadManifest)
}

func TestParseMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`not json`), "/runs")
	require.ErrorIs(t, err, errs.ErrBadManifest)
}

func TestIterSessionsV10IgnoresSymbol(t *testing.T) {
	data := []byte(`{"sessions":[{"date":"2026-01-02","file":"a.qrsdp"}]}`)
	m, err := Parse(data, "/runs")
	require.NoError(t, err)

	var count int
	for range m.IterSessions("AAPL") {
		count++
	}
	require.Zero(t, count, "a v1.0 manifest has no named security, so any symbol filter yields nothing")

	count = 0
	for range m.IterSessions("") {
		count++
	}
	require.Equal(t, 1, count)
}

func TestIterSessionsV11FiltersBySymbol(t *testing.T) {
	data := []byte(`{"securities":[
		{"symbol":"AAPL","sessions":[{"date":"2026-01-02","file":"a1.qrsdp"},{"date":"2026-01-03","file":"a2.qrsdp"}]},
		{"symbol":"MSFT","sessions":[{"date":"2026-01-02","file":"m1.qrsdp"}]}
	]}`)
	m, err := Parse(data, "/runs")
	require.NoError(t, err)

	var dates []string
	for symbol, sess := range m.IterSessions("AAPL") {
		require.Equal(t, "AAPL", symbol)
		dates = append(dates, sess.Date)
	}
	require.Equal(t, []string{"2026-01-02", "2026-01-03"}, dates)
}

func TestIterDaysDateRangeFiltering(t *testing.T) {
	dir := t.TempDir()

	empty := []format.Record{}
	writeSessionFile(t, dir, "a.qrsdp", empty)
	writeSessionFile(t, dir, "b.qrsdp", empty)
	writeSessionFile(t, dir, "c.qrsdp", empty)

	data := []byte(`{"sessions":[
		{"date":"2026-01-02","file":"a.qrsdp"},
		{"date":"2026-01-05","file":"b.qrsdp"},
		{"date":"2026-01-09","file":"c.qrsdp"}
	]}`)
	m, err := Parse(data, dir)
	require.NoError(t, err)

	var dates []string
	for res, err := range m.IterDays("2026-01-03", "2026-01-09", "") {
		require.NoError(t, err)
		dates = append(dates, res.Date)
	}
	require.Equal(t, []string{"2026-01-05", "2026-01-09"}, dates)
}

func TestIterDaysExactSingleDate(t *testing.T) {
	dir := t.TempDir()
	writeSessionFile(t, dir, "a.qrsdp", nil)
	writeSessionFile(t, dir, "b.qrsdp", nil)

	data := []byte(`{"sessions":[
		{"date":"2026-01-02","file":"a.qrsdp"},
		{"date":"2026-01-05","file":"b.qrsdp"}
	]}`)
	m, err := Parse(data, dir)
	require.NoError(t, err)

	var dates []string
	for res, err := range m.IterDays("2026-01-05", "2026-01-05", "") {
		require.NoError(t, err)
		dates = append(dates, res.Date)
	}
	require.Equal(t, []string{"2026-01-05"}, dates)
}

func TestIterSecuritiesAcrossAllSymbols(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "aapl"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "msft"), 0o755))

	writeSessionFile(t, filepath.Join(dir, "aapl"), "2026-01-02.qrsdp", nil)
	writeSessionFile(t, filepath.Join(dir, "msft"), "2026-01-02.qrsdp", nil)

	data := []byte(`{"securities":[
		{"symbol":"AAPL","sessions":[{"date":"2026-01-02","file":"aapl/2026-01-02.qrsdp"}]},
		{"symbol":"MSFT","sessions":[{"date":"2026-01-02","file":"msft/2026-01-02.qrsdp"}]}
	]}`)
	m, err := Parse(data, dir)
	require.NoError(t, err)

	var symbols []string
	for res, err := range m.IterSecurities("", "") {
		require.NoError(t, err)
		symbols = append(symbols, res.Symbol)
	}
	require.ElementsMatch(t, []string{"AAPL", "MSFT"}, symbols)
}

func TestLoadResolvesManifestJSON(t *testing.T) {
	dir := t.TempDir()
	writeSessionFile(t, dir, "a.qrsdp", nil)

	manifestPath := filepath.Join(dir, ManifestFileName)
	require.NoError(t, os.WriteFile(manifestPath, []byte(`{"sessions":[{"date":"2026-01-02","file":"a.qrsdp"}]}`), 0o600))

	m, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, m.Securities[0].Sessions, 1)
}
