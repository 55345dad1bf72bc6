// Package teardown removes what setup installed: the shell and terminal
// configuration files, the global git settings and every path the tools in
// tools.json manage. It also finds and deletes the backups left behind by
// earlier runs.
package teardown
