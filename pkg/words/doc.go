// Package words turns input documents into ranked word frequencies.
//
// # Sources
//
// A [Source] reads raw words from one kind of document. Sources are looked
// up by file extension through a [Registry], which is built from an explicit
// list so that callers decide which formats they accept:
//
//	reg := words.NewRegistry(words.TextSource{}, words.LineSource{}, words.JSONSource{})
//	raw, err := reg.ReadFile("speech.txt")
//
// [DefaultSources] returns the sources the CLI and server use.
//
// # Preprocessing
//
// A [Preprocessor] normalizes raw words (Unicode NFC, case folding, trimmed
// punctuation) and drops stop words and very short words.
//
// # Counting
//
// [Count] aggregates words into [Frequency] values ordered by descending
// count, ties broken alphabetically, which is the order the layouter is fed.
package words
