// Idiomatic entrypoint for the Cobra CLI that delegates handling to the
// root command in cmd/strskel/root.go.

package main

import (
	"github.com/strskel/strskel/cmd/strskel"
)

func main() {
	strskel.Execute()
}
