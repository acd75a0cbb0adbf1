// Command partiqlparse is a command-line front end for parsing PartiQL
// expression text.
package main

import "os"

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
