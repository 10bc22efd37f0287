// Package manifest implements the Run Manifest (spec §4.2): a JSON index of
// per-security, dated session files, tolerant of two schema versions. v1.0's
// implicit single security is normalized into one Security with an empty
// Symbol, so call sites never branch on which schema was parsed.
package manifest

import (
	"encoding/json"
	"iter"
	"path/filepath"

	"github.com/qrsdp/lobreplay/errs"
	"github.com/qrsdp/lobreplay/eventlog"
	"github.com/qrsdp/lobreplay/format"
)

// Session is one dated session-file entry.
type Session struct {
	Date string
	File string
}

// Security is one catalogued symbol and its ordered session list. v1.0
// manifests normalize to a single Security with Symbol == "".
type Security struct {
	Symbol   string
	Sessions []Session
}

// Manifest is the normalized, schema-agnostic in-memory representation of a
// parsed manifest.json.
type Manifest struct {
	Securities []Security

	// baseDir is the directory relative file paths are resolved against:
	// the manifest's own containing directory.
	baseDir string
}

type rawSession struct {
	Date string `json:"date"`
	File string `json:"file"`
}

type rawSecurity struct {
	Symbol   string       `json:"symbol"`
	Sessions []rawSession `json:"sessions"`
}

type rawManifestV11 struct {
	Securities []rawSecurity `json:"securities"`
}

type rawManifestV10 struct {
	Sessions []rawSession `json:"sessions"`
}

// detect is only used to pick a schema by key presence, per spec: "detects
// schema by presence of securities vs sessions".
type detect struct {
	Securities json.RawMessage `json:"securities"`
	Sessions   json.RawMessage `json:"sessions"`
}

// Parse decodes manifest JSON data into a Manifest, resolving relative file
// paths against baseDir. Returns errs.ErrBadManifest on malformed JSON or an
// unrecognized top-level schema (neither "sessions" nor "securities" present).
func Parse(data []byte, baseDir string) (Manifest, error) {
	var d detect
	if err := json.Unmarshal(data, &d); err != nil {
		return Manifest{}, errs.ErrBadManifest
	}

	switch {
	case d.Securities != nil:
		var raw rawManifestV11
		if err := json.Unmarshal(data, &raw); err != nil {
			return Manifest{}, errs.ErrBadManifest
		}

		return Manifest{Securities: toSecurities(raw.Securities), baseDir: baseDir}, nil

	case d.Sessions != nil:
		var raw rawManifestV10
		if err := json.Unmarshal(data, &raw); err != nil {
			return Manifest{}, errs.ErrBadManifest
		}

		return Manifest{
			Securities: []Security{{Symbol: "", Sessions: toSessions(raw.Sessions)}},
			baseDir:    baseDir,
		}, nil

	default:
		return Manifest{}, errs.ErrBadManifest
	}
}

func toSessions(raw []rawSession) []Session {
	sessions := make([]Session, len(raw))
	for i, s := range raw {
		sessions[i] = Session{Date: s.Date, File: s.File}
	}

	return sessions
}

func toSecurities(raw []rawSecurity) []Security {
	securities := make([]Security, len(raw))
	for i, s := range raw {
		securities[i] = Security{Symbol: s.Symbol, Sessions: toSessions(s.Sessions)}
	}

	return securities
}

// Symbols returns the symbol of each catalogued security, in declaration
// order; a symbol listed under several securities appears once per listing.
// Empty for a v1.0 manifest, whose single security has no symbol.
func (m Manifest) Symbols() []string {
	var symbols []string
	for _, sec := range m.Securities {
		if sec.Symbol != "" {
			symbols = append(symbols, sec.Symbol)
		}
	}

	return symbols
}

// IterSessions yields (symbol, session) pairs. If symbol is non-empty, only
// that security's sessions are yielded; an unknown or v1.0-incompatible
// symbol yields nothing. If symbol is empty, every security's sessions are
// yielded, each tagged with its own symbol (the empty string for v1.0).
func (m Manifest) IterSessions(symbol string) iter.Seq2[string, Session] {
	return func(yield func(string, Session) bool) {
		for _, sec := range m.Securities {
			if symbol != "" && sec.Symbol != symbol {
				continue
			}

			for _, s := range sec.Sessions {
				if !yield(sec.Symbol, s) {
					return
				}
			}
		}
	}
}

func inDateRange(date, startDate, endDate string) bool {
	if startDate != "" && date < startDate {
		return false
	}
	if endDate != "" && date > endDate {
		return false
	}

	return true
}

// resolvePath joins a manifest-relative file path against the manifest's
// containing directory, leaving already-absolute paths untouched.
func (m Manifest) resolvePath(file string) string {
	if filepath.IsAbs(file) {
		return file
	}

	return filepath.Join(m.baseDir, file)
}

// DayResult is one (date, records) tuple yielded by IterDays.
type DayResult struct {
	Date    string
	Records []format.Record
}

// IterDays joins the manifest's session listing with eventlog.ReadDay,
// applying an inclusive [startDate, endDate] filter (empty bounds are
// unbounded) using lexicographic YYYY-MM-DD comparison, and restricting to
// symbol's sessions when symbol is non-empty. An empty symbol walks every
// security's sessions undifferentiated by symbol, which is exactly the
// single unnamed security for a v1.0 manifest. A session whose file fails to
// read is yielded with its error and nil records, and iteration then moves on
// to the next session unless the caller stops ranging.
func (m Manifest) IterDays(startDate, endDate, symbol string, opts ...eventlog.ReaderOption) iter.Seq2[DayResult, error] {
	return func(yield func(DayResult, error) bool) {
		for _, sess := range m.IterSessions(symbol) {
			if !inDateRange(sess.Date, startDate, endDate) {
				continue
			}

			records, err := eventlog.ReadDay(m.resolvePath(sess.File), opts...)
			if !yield(DayResult{Date: sess.Date, Records: records}, err) {
				return
			}
		}
	}
}

// SecurityDayResult is one (symbol, date, records) tuple yielded by
// IterSecurities.
type SecurityDayResult struct {
	Symbol  string
	Date    string
	Records []format.Record
}

// IterSecurities walks every security's sessions (symbol is "" throughout
// for a v1.0 manifest), applying the same inclusive date-range filter as
// IterDays. As with IterDays, a session that fails to read is yielded with
// its error and iteration continues with the next session.
func (m Manifest) IterSecurities(startDate, endDate string, opts ...eventlog.ReaderOption) iter.Seq2[SecurityDayResult, error] {
	return func(yield func(SecurityDayResult, error) bool) {
		for symbol, sess := range m.IterSessions("") {
			if !inDateRange(sess.Date, startDate, endDate) {
				continue
			}

			records, err := eventlog.ReadDay(m.resolvePath(sess.File), opts...)
			if !yield(SecurityDayResult{Symbol: symbol, Date: sess.Date, Records: records}, err) {
				return
			}
		}
	}
}
