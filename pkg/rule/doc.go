// Package rule decides which profile files an edit applies to, by using CEL
// (Common Expression Language) expressions.
//
// The expressions have access to the file path, its directory, and its
// profile name, and can inspect the profile's content.
package rule
