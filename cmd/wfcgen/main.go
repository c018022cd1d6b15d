// Command wfcgen grows images from sample bitmaps with the overlapping
// wave function collapse model and hunts for contradicting seeds.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
