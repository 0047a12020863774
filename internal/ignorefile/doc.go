// Package ignorefile models a line-oriented ignore file (.npmignore,
// .gitignore) as an ordered list of lines plus the line ending it was
// written with. Parsing and serializing an unchanged Document reproduces
// the source bytes exactly, including a missing trailing newline.
package ignorefile
