package seeder

type ApplyOptions struct {
	Tables        []string // empty means every demo table
	NoTransaction bool     // run statements outside a transaction
	Force         bool     // skip failing tables instead of aborting
}

type CleanOptions struct {
	Tables        []string
	NoTransaction bool
}

type TableReport struct {
	Name    string
	Exists  bool  // known to exist; false when a failed insert left it unknown
	Rows    int64 // inserted, deleted or counted, depending on the operation
	Skipped bool
	Err     error
}

type Report struct {
	Tables []TableReport
}

// Total sums Rows across tables.
func (r *Report) Total() int64 {
	var total int64
	for _, t := range r.Tables {
		total += t.Rows
	}
	return total
}

// Failed returns the tables that reported an error.
func (r *Report) Failed() []TableReport {
	var failed []TableReport
	for _, t := range r.Tables {
		if t.Err != nil {
			failed = append(failed, t)
		}
	}
	return failed
}
