// Command hpss is the CLI front end for the hash-partitioned stratified
// sampling service: it can check feasibility, generate a batch directly to
// stdout, serve the HTTP API, or verify a previously generated batch.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
