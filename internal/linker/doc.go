// Package linker installs the artifacts declared in tools.json into each
// tool's configuration directory. It runs every rule of a tool in order,
// links or generates files from the AI source tree, backs up whatever it
// replaces, and reports per-tool results. A failed rule is recorded as a
// warning and the remaining rules still run; only a declined settings prompt
// aborts the run.
package linker
