// Package table reads delimited text files as restartable row sequences.
//
// A Table remembers its path and options instead of holding an open file, so
// Rows can be ranged over any number of times: the column probe, the preview
// and the real extraction pass each get a fresh reader. Input is decoded
// through a BOM sniffer, which strips a UTF-8 byte order mark and decodes
// UTF-16 files that announce themselves. Rows the CSV parser rejects, or that
// carry invalid UTF-8, are yielded with Row.Err set so callers can count and
// log them without stopping the pass.
package table
