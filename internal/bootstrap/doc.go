// Package bootstrap prepares the machine before anything is linked: it
// detects the operating system, makes sure the package tooling is present and
// runs the per-component setup scripts shipped in the repository.
package bootstrap
