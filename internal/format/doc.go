// Package format renders report values one character at a time.
//
// A Printer owns no state beyond its sink and the first write error it saw.
// Every value the report contains is produced here:
//
//   - unsigned and signed decimal numbers
//   - hexadecimal numbers with a minimum digit count and a trailing 'h'
//   - null-terminated text, whole or truncated to a field width
//   - byte sequences as space-separated two-digit hex bytes
//   - fill runs and the full-width fill line
//
// Lines end with CRLF. The layout constants (79-column fill line, 74-column
// case name field) are part of the report format and must not change.
package format
