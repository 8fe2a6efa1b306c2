// Package main is the entry point for the mockguard CLI.
package main

import "mockguard.dev/pkg/mockguard/cmd"

func main() {
	cmd.Execute()
}
