// Package runtime runs external commands for the bootstrap and teardown
// steps. Everything goes through the Runner interface so that callers can be
// tested without touching the real system.
package runtime
