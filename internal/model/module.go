package model

import "fmt"

// DefaultMockFunction is the mock declaration call recognised in test files.
const DefaultMockFunction = "jest.mock"

// ModuleIdentifier names an imported module exactly as written in the
// `from "<literal>"` clause of an import statement.
type ModuleIdentifier string

// MockPrefix returns the text searched for in a test file, e.g. `jest.mock("./bar"`.
// The closing paren is left out so declarations with a factory argument match.
func (id ModuleIdentifier) MockPrefix(call string) string {
	return fmt.Sprintf(`%s("%s"`, call, id)
}

// Mock returns the ready-to-paste declaration, e.g. `jest.mock("./bar")`.
func (id ModuleIdentifier) Mock(call string) string {
	return id.MockPrefix(call) + ")"
}

func (id ModuleIdentifier) String() string {
	return string(id)
}
