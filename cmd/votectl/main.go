// Command votectl is the operator CLI for the election portal: index
// migration, admin seeding and fixture loading against MongoDB.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
