package model

// Verdict is the outcome of checking a single pair.
type Verdict int

const (
	// VerdictNoImports means the module imports nothing, so there was nothing to verify.
	VerdictNoImports Verdict = iota
	// VerdictMocked means every import has a mock declaration.
	VerdictMocked
	// VerdictMissingMocks means at least one import has no mock declaration.
	VerdictMissingMocks
	// VerdictFailed means the pair could not be checked (e.g. unreadable file).
	VerdictFailed
)

func (v Verdict) String() string {
	switch v {
	case VerdictNoImports:
		return "no-imports"
	case VerdictMocked:
		return "mocked"
	case VerdictMissingMocks:
		return "missing-mocks"
	case VerdictFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PairReport holds the result of checking one pair.
type PairReport struct {
	Pair         TestFilePair
	Imports      []ModuleIdentifier
	Missing      []ModuleIdentifier
	MockFunction string // mock declaration call the test file was checked for
	Patch        string // unified diff adding the missing mocks, when requested
	Err          error
}

// ExpectedMocks renders the declarations that would fix the missing mocks.
func (r PairReport) ExpectedMocks() []string {
	call := r.MockFunction
	if call == "" {
		call = DefaultMockFunction
	}

	mocks := make([]string, 0, len(r.Missing))
	for _, id := range r.Missing {
		mocks = append(mocks, id.Mock(call))
	}

	return mocks
}

// Verdict derives the outcome of the report.
func (r PairReport) Verdict() Verdict {
	switch {
	case r.Err != nil:
		return VerdictFailed
	case len(r.Imports) == 0:
		return VerdictNoImports
	case len(r.Missing) > 0:
		return VerdictMissingMocks
	default:
		return VerdictMocked
	}
}

// Summary counts verdicts over a run.
type Summary struct {
	Pairs     int
	Mocked    int
	Missing   int
	NoImports int
	Failed    int
}

// Add records a report in the summary.
func (s *Summary) Add(r PairReport) {
	s.Pairs++

	switch r.Verdict() {
	case VerdictNoImports:
		s.NoImports++
	case VerdictMocked:
		s.Mocked++
	case VerdictMissingMocks:
		s.Missing++
	case VerdictFailed:
		s.Failed++
	}
}

// OK reports whether no pair is missing mocks and no pair failed.
func (s Summary) OK() bool {
	return s.Missing == 0 && s.Failed == 0
}
