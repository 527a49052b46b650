package mirror

// RunStats accumulates counters over a mirror run.
//
// Invariant: CopySuccess <= ShouldCopy <= FilesChecked. ShouldCopy can
// decrease when a failed copy turns out to have identical contents on
// both sides; that reconciliation is not an error.
type RunStats struct {
	FilesChecked   int
	FoldersChecked int
	FilesFiltered  int
	ShouldCopy     int
	CopySuccess    int
	Errors         int
	BytesCopied    int64
}

// Merge folds other into s. Used to combine per-subtree stats from
// parallel walks.
func (s *RunStats) Merge(other RunStats) {
	s.FilesChecked += other.FilesChecked
	s.FoldersChecked += other.FoldersChecked
	s.FilesFiltered += other.FilesFiltered
	s.ShouldCopy += other.ShouldCopy
	s.CopySuccess += other.CopySuccess
	s.Errors += other.Errors
	s.BytesCopied += other.BytesCopied
}
