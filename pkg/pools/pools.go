// Package pools provides object pooling for reducing GC pressure.
//
// NodeIDPool recycles the neighbor buffers that triangle counting sorts for
// every node. Parallel passes create one counter per chunk, so without
// pooling each chunk would grow its buffer from scratch.
package pools
