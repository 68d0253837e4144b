// Package fetch retrieves a source URL (local path, FTP, git or HTTP) into a
// fresh destination directory.
//
// Sources are parsed into an immutable Descriptor, stripped of embedded
// credentials and dispatched on their Scheme. SmartFetch additionally
// rewrites hosting "browse" URLs into git sources before dispatch.
package fetch
