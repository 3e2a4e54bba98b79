package pool

import "sync"

var int32SlicePool = sync.Pool{
	New: func() any { return &[]int32{} },
}

// GetInt32Slice retrieves an int32 slice of exactly size elements from the pool,
// with every element set to fill.
//
// The caller must call the returned cleanup function to give the slice back.
//
// Example:
//
//	head, cleanup := pool.GetInt32Slice(1<<15, -1)
//	defer cleanup()
func GetInt32Slice(size int, fill int32) ([]int32, func()) {
	ptr, _ := int32SlicePool.Get().(*[]int32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int32, size)
	} else {
		slice = slice[:size]
	}
	for i := range slice {
		slice[i] = fill
	}
	*ptr = slice

	return slice, func() { int32SlicePool.Put(ptr) }
}
