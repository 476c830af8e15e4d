// Package ptrie defines a compressed trie set over byte-string keys with an
// optional stable-index layer.
//
// A trie consists of forward nodes and buckets. A forward node consumes one
// byte of the (encoded) key and has up to 256 children; every branch ends
// with a bucket holding the remaining suffixes of all keys sharing that path.
// When a bucket grows past the split bound it is replaced by a new forward
// node and up to 256 smaller buckets.
//
// Key encoding:
// ------------
//
// A key k of length L is routed as
//
//	enc(k) = [ L>>8 ] [ L&0xFF ] [ k[0] ] [ k[1] ] ... [ k[L-1] ]
//
// so the first two levels of the trie branch on the key length. A bucket
// sitting under d forward nodes stores, per entry, a 16-bit header and a tail:
//
//	head = enc[d]<<8 | enc[d+1]      (bytes past the end read as zero)
//	tail = enc[d+2:]                 (== k[d:], max(0, L-d) bytes)
//
// The header carries whatever the path has not already pinned of L:
//
//	depth  path pins   header holds
//	-----  ---------   -----------------------
//	0      -           L
//	1      L>>8        L&0xFF, k[0]
//	>=2    L           k[d-2], k[d-1]
//
// Tails shorter than the heap bound are packed inline in the bucket's data
// run, longer tails get their own allocation.
//
// Example trie (split bound 2) holding "ab", "ac", "ad" and "xyz":
//
//	                                        ,--62--> bucket{ 6200:"" }
//	                                        |
//	[root] --00--> [fwd] --02--> [fwd] --61--> [fwd] --63--> bucket{ 6300:"" }
//	                 |                      |
//	                 |                      `--64--> bucket{ 6400:"" }
//	                 |
//	                 `--03--> bucket{ 0378:"yz" }
//
// Stable indices:
// --------------
//
// A Stable set hands out a permanent Index for every inserted key. The index
// records the forward node owning the key's bucket and the slot byte; Unpack
// climbs parent links from there to rebuild the key. Splits re-point the
// affected indices, so an index stays valid until its key is erased.
//
// Neither Set nor Stable is safe for concurrent mutation. Readers may run in
// parallel while no writer is active.
package ptrie
