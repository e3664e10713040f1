// Package csvio decodes transaction records from CSV input and encodes final
// account state back to CSV.
//
// Decoding is strict: a bad header, an unrecognized type token, an
// out-of-range id, or an unparseable amount is a fatal error, not a record
// to skip. Business-rule policy lives in the engine package; this package
// only guards the wire format.
package csvio
