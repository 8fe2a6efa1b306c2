// Package model defines the data structures shared by the mock checking workflow.
package model

import "fmt"

// Path represents a file system path.
type Path string

// TestFilePair associates a test file with the module it tests.
// Both files existed on disk when the pair was built.
type TestFilePair struct {
	Test   Path
	Module Path
}

// NewTestFilePair builds a pair from a test file and its module under test.
func NewTestFilePair(test, module Path) TestFilePair {
	return TestFilePair{Test: test, Module: module}
}

func (p TestFilePair) String() string {
	return fmt.Sprintf("%s -> %s", p.Test, p.Module)
}
