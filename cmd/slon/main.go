// slon - SLON codec CLI tool
//
// Usage:
//
//	slon fmt [--check] [file]          Print the canonical form of a document
//	slon check [file...]               Validate documents
//	slon to-json [--indent N] [file]   Convert SLON to JSON
//	slon from-json [file]              Convert JSON to canonical SLON
//	slon lines [options] [file]        Canonicalize a line-delimited record stream
//	slon version                       Print version info
//
// Global flags --config, --max-depth and --verbose apply to every command.
//
// If no file is given, or the file is "-", reads from stdin.
package main

import "os"

func main() {
	os.Exit(Main())
}
