// Package files resolves profile file paths within a Salesforce project.
//
// Profiles are stored as `<Name>.profile-meta.xml` files under each package
// directory's `main/default/profiles` folder. [Resolve] turns profile names
// given on the command line into paths, and [FindProject] locates the
// project's `sfdx-project.json`.
package files
