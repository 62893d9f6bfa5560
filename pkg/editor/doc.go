// Package editor applies profile edits across many profile files.
//
// Each file is read, decoded, edited and, only when its content changed,
// re-encoded and written back atomically. Failures are isolated per file: a
// batch always attempts every file and reports one [Result] per input path,
// in input order.
package editor
