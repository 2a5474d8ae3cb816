// Package roman converts between Roman numerals and integers in [1,3999].
//
// Encoding is greedy over a fixed 13-entry fragment table. Decoding first
// checks the numeral against the strict subtractive grammar (thousands,
// hundreds, tens and units groups in decreasing order) and only then sums
// it. Every failure is returned as an *Error carrying a Kind, so callers can
// tell an out-of-range value from a malformed numeral.
//
// Everything in this package is pure; a Converter may be shared by any number
// of goroutines.
package roman
