// Package sid recognizes and normalizes student identification numbers.
//
// An identifier is a maximal run of ASCII digits that is exactly 7 or 9
// characters long. Runs are found anywhere inside a cell, so filenames such
// as "001234567.pdf" contribute their embedded number. Seven-digit runs are
// left-padded with "00"; nine-digit runs are kept as-is. Every other run
// length is ignored, which means no identifier is ever cut out of a longer
// number.
//
// The ID type is the canonical form: exactly nine digits. Construct values
// through Normalize or Parse so the invariant holds everywhere downstream.
package sid
