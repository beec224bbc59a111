// Package encryption seals and opens files with a spha cipher.
// Files are processed concurrently, each output is written atomically, and
// every sealed file starts with a small envelope naming the cipher variant.
package encryption
