package pool

import "sync"

// float64SlicePool recycles raster row buffers across copies.
var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice retrieves and resizes a float64 slice from the pool.
//
// The returned slice has exactly size elements; its contents are unspecified.
// The caller must call the returned cleanup function, typically with defer,
// to give the slice back:
//
//	row, release := pool.GetFloat64Slice(width)
//	defer release()
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { float64SlicePool.Put(ptr) }
}
