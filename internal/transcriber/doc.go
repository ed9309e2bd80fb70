// Package transcriber defines the boundary to the external speech-to-text
// capability. The batch engine depends only on the Transcriber interface;
// the whispercli subpackage provides the production implementation.
package transcriber
