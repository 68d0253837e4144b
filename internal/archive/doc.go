// Package archive materializes fetched sources into a destination directory.
//
// Unpack sniffs zip, tar, tar.gz, tar.bz2, tar.xz and tar.zst payloads and
// extracts them; CopyTree copies a local directory while keeping symbolic
// links as links.
package archive
