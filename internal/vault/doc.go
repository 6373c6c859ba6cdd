// Package vault implements the content index consumed by the embed
// processor: a filesystem walk producing file descriptors, link resolution,
// cached reads and an optional watcher that keeps the index current.
package vault
