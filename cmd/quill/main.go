// Command quill is the Quill language front end: it checks, dumps and
// formats Quill source files.
package main

import (
	"os"

	"github.com/quill-lang/quill/cmd/quill/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
