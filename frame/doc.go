// Package frame wraps codec output in a small self-describing container.
//
// A frame records which algorithm produced the payload, the original and
// payload sizes, and optionally an xxHash64 checksum of the original bytes, so
// a reader can decode it without being told the algorithm:
//
//	offset  size  field
//	0       2     magic "PP"
//	2       1     version (1)
//	3       1     method byte (format.Algorithm)
//	4       1     flags (bit 0: checksum present)
//	5       4     original size, u32 LE
//	9       4     payload size, u32 LE
//	13      8     xxHash64 of the original bytes, u64 LE (only with checksum flag)
//	13/21   n     codec payload
//
// Example:
//
//	packed, err := frame.Encode(format.AlgorithmLZ77, data)
//	...
//	original, err := frame.Decode(packed)
package frame
