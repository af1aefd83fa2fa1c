// Command aperture cleans hand keypoint logs and plots them.
//
// Usage:
//
//	aperture boxplot <file>...      compare aperture distributions across files
//	aperture plotkeypoints <file>   scatter the keypoint clouds of one file
//
// See --help for all available options.
package main

import "os"

func main() {
	os.Exit(Execute(newApp(), os.Args[1:]))
}
