// Package output formats run results for the terminal: processing
// statistics, a styled summary, and unified diff previews for check
// mode.
package output

// Stats aggregates per-file outcomes of one processing run.
type Stats struct {
	Total     int
	Modified  int
	Unchanged int
	Skipped   int
	Errors    int
}

// RecordModified counts a file whose contents changed.
func (s *Stats) RecordModified() {
	s.Total++
	s.Modified++
}

// RecordUnchanged counts a file that needed no fixes.
func (s *Stats) RecordUnchanged() {
	s.Total++
	s.Unchanged++
}

// RecordSkipped counts a file excluded from processing. Skipped files
// count toward Total like every other per-file outcome.
func (s *Stats) RecordSkipped() {
	s.Total++
	s.Skipped++
}

// RecordError counts a file that failed.
func (s *Stats) RecordError() {
	s.Total++
	s.Errors++
}
