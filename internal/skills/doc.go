// Package skills finds skill documents in a source tree and installs them into
// a tool's configuration directory, either by generating one file per skill
// or by linking each skill directory into place.
//
// A skill is either a directory holding a SKILL.md file or a flat markdown
// file. Directory skills are named after the directory; flat skills after the
// file stem.
package skills
