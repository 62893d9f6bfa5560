// Package expr provides CEL (Common Expression Language) functionality
// for evaluating expressions against profile files.
//
// It creates CEL environments with custom functions for:
//   - File path operations (pathBase, pathDir, pathExt)
//   - Profile inspection (profileName, profileField, hasEntry)
//
// CEL expressions have access to variables:
//   - `file` (string): The profile file path being processed
//   - `dir` (string): The directory containing the file
//   - `profile` (string): The profile name derived from the file name
package expr
