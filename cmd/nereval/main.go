// Command nereval scores named-entity predictions against gold labels.
//
// Usage:
//
//	nereval eval --data dev.jsonl                        # score predictions stored in the dataset
//	nereval eval --data dev.jsonl --predictions p.jsonl  # score a separate prediction file
//	nereval compare --data dev.jsonl crf=a.jsonl softmax=b.jsonl
//	nereval export --data test.jsonl --predictions p.jsonl --out test.tsv
package main

import "github.com/jamesainslie/go-nereval/cmd/nereval/cmd"

// Set by the linker: -X main.version=...
var version = "dev"

func main() {
	cmd.Version = version
	cmd.Execute()
}
