package model

import "fmt"

// ErrorKind identifies an entry of the pair error taxonomy.
type ErrorKind int

const (
	// NotATestFile means a file name contains neither test marker.
	NotATestFile ErrorKind = iota + 1
	// TestFileMissing means the requested test file does not exist.
	TestFileMissing
	// ModuleUnderTestMissing means the module derived from a test file does not exist.
	ModuleUnderTestMissing
	// UnreadableFile means a module or test file could not be read.
	UnreadableFile
	// NoPairsFound means a directory scan found no test/module pair.
	NoPairsFound
)

func (k ErrorKind) String() string {
	switch k {
	case NotATestFile:
		return "not a test file"
	case TestFileMissing:
		return "test file missing"
	case ModuleUnderTestMissing:
		return "module under test missing"
	case UnreadableFile:
		return "unreadable file"
	case NoPairsFound:
		return "no pairs found"
	default:
		return "unknown"
	}
}

// PairError is returned when resolving or checking a pair fails. Path is the
// offending file (or the scanned directory for NoPairsFound).
type PairError struct {
	Kind ErrorKind
	Path Path
	Err  error
}

// Sentinels for errors.Is; they match any PairError of the same kind.
var (
	ErrNotATestFile           = &PairError{Kind: NotATestFile}
	ErrTestFileMissing        = &PairError{Kind: TestFileMissing}
	ErrModuleUnderTestMissing = &PairError{Kind: ModuleUnderTestMissing}
	ErrUnreadableFile         = &PairError{Kind: UnreadableFile}
	ErrNoPairsFound           = &PairError{Kind: NoPairsFound}
)

// NewNotATestFileError reports a file without a test marker.
func NewNotATestFileError(path Path) *PairError {
	return &PairError{Kind: NotATestFile, Path: path}
}

// NewTestFileMissingError reports a missing test file.
func NewTestFileMissingError(path Path) *PairError {
	return &PairError{Kind: TestFileMissing, Path: path}
}

// NewModuleUnderTestMissingError reports a missing module under test.
func NewModuleUnderTestMissingError(path Path) *PairError {
	return &PairError{Kind: ModuleUnderTestMissing, Path: path}
}

// NewUnreadableFileError wraps an I/O failure while reading path.
func NewUnreadableFileError(path Path, err error) *PairError {
	return &PairError{Kind: UnreadableFile, Path: path, Err: err}
}

// NewNoPairsFoundError reports an empty directory scan.
func NewNoPairsFoundError(dir Path) *PairError {
	return &PairError{Kind: NoPairsFound, Path: dir}
}

func (e *PairError) Error() string {
	switch e.Kind {
	case NotATestFile:
		return fmt.Sprintf("'%s' is not a test file", e.Path)
	case TestFileMissing:
		return fmt.Sprintf("Sorry, test file doesn't exist: %s", e.Path)
	case ModuleUnderTestMissing:
		return fmt.Sprintf("Sorry, module under test doesn't exist: %s", e.Path)
	case UnreadableFile:
		if e.Err != nil {
			return fmt.Sprintf("could not read %s: %v", e.Path, e.Err)
		}

		return fmt.Sprintf("could not read %s", e.Path)
	case NoPairsFound:
		return fmt.Sprintf("no test files with a module under test found in %s", e.Path)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Path)
	}
}

func (e *PairError) Unwrap() error {
	return e.Err
}

// Is matches another PairError of the same kind.
func (e *PairError) Is(target error) bool {
	other, ok := target.(*PairError)
	if !ok {
		return false
	}

	return other.Kind == e.Kind
}
