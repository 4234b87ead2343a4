// Package queue persists the FIFO of wallpapers staged for later display,
// one absolute path per line. Enqueue deduplicates; dequeue pops the head.
// Entries are plain strings here; consumers validate them against the
// filesystem when they are taken off the queue.
package queue
