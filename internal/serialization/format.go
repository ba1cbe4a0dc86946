package serialization

import (
	"github.com/born-ml/dezero/internal/ndarray"
)

// SafeTensors dtype identifiers.
const (
	DTypeF64 = "F64"
	DTypeF32 = "F32"
)

// metadataKey is the reserved header entry holding string metadata.
const metadataKey = "__metadata__"

// TensorHeader describes one tensor in the SafeTensors header.
type TensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// TensorMeta is a decoded header entry.
type TensorMeta struct {
	Name   string
	DType  string
	Shape  ndarray.Shape
	Offset int64 // Bytes from the start of the data section
	Size   int64 // Size in bytes
}

// dtypeSize returns the element width in bytes, or 0 for unknown dtypes.
func dtypeSize(dtype string) int64 {
	switch dtype {
	case DTypeF64:
		return 8
	case DTypeF32:
		return 4
	default:
		return 0
	}
}
