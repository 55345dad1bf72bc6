// Package shellrc edits the user's shell startup file: appending tool
// aliases once, and carrying tool-installed lines across a reset.
//
// Tools that modify the startup file on their own are expected to append
// below a marker line. Everything from the marker onward can be extracted
// before the file is replaced and spliced back into the fresh copy.
package shellrc
