// Package convert turns skill documents into the files a tool expects.
// Tools that read markdown get the document unchanged; tools that read
// TOML command files get a description line and a triple-quoted prompt block
// holding the document body verbatim.
package convert
