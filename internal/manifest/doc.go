// Package manifest loads and validates tools.json, the declarative list of
// AI tools and the artifacts to install for each of them.
//
// A tool declares its configuration directory, its source directory inside
// the AI root, and any number of optional rule groups. Rules expands those
// groups into a typed, ordered list of Rule values for the installer. The
// document is checked against an embedded JSON schema before it is decoded,
// and tool declaration order is preserved.
package manifest
