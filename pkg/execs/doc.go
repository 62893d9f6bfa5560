// Package execs runs external commands, as defined by configuration.
//
// It is used to run the deploy command after profiles have been edited.
// Command arguments may reference variables such as `${METADATA}`, which are
// expanded before the command runs.
package execs
