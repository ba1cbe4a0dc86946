package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"io"
	"maps"
	"math"
	"os"
	"slices"

	"github.com/pkg/errors"

	"github.com/born-ml/dezero/internal/ndarray"
)

// WriteFile writes stateDict to path in SafeTensors format.
// An existing file is truncated.
func WriteFile(path string, stateDict map[string]*ndarray.Array, metadata map[string]string) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "failed to close file")
		}
	}()

	return Write(file, stateDict, metadata)
}

// Write encodes stateDict to w. Tensors are written in name order as F64.
func Write(w io.Writer, stateDict map[string]*ndarray.Array, metadata map[string]string) error {
	names := slices.Sorted(maps.Keys(stateDict))
	if len(names) > MaxTensorCount {
		return &ValidationError{Kind: ErrTooManyTensors, Details: "state dict too large"}
	}

	header := make(map[string]any, len(names)+1)
	if len(metadata) > 0 {
		header[metadataKey] = metadata
	}

	var offset int64
	for _, name := range names {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		a := stateDict[name]
		if a == nil {
			return errors.Errorf("tensor %q is nil", name)
		}

		shape := a.Shape()
		dims := make([]int64, len(shape))
		for i, d := range shape {
			dims[i] = int64(d)
		}
		size := int64(a.Size()) * dtypeSize(DTypeF64)
		header[name] = TensorHeader{
			DType:       DTypeF64,
			Shape:       dims,
			DataOffsets: [2]int64{offset, offset + size},
		}
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "failed to marshal header")
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return errors.Wrap(err, "failed to write header size")
	}
	if _, err := bw.Write(headerJSON); err != nil {
		return errors.Wrap(err, "failed to write header")
	}

	var buf [8]byte
	for _, name := range names {
		for _, v := range stateDict[name].Data() {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			if _, err := bw.Write(buf[:]); err != nil {
				return errors.Wrapf(err, "failed to write tensor %s", name)
			}
		}
	}

	return errors.Wrap(bw.Flush(), "failed to flush")
}
