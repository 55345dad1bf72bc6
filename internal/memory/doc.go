// Package memory builds shared memory documents for tools that cannot include
// other files by reference. The documents in a memory directory are either
// concatenated into one file or copied into a directory of their own.
package memory
