package serialization

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/born-ml/dezero/internal/ndarray"
)

// ReadFile loads a SafeTensors file written by WriteFile or any compatible
// producer of F64/F32 tensors.
func ReadFile(path string) (map[string]*ndarray.Array, map[string]string, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open file")
	}
	defer func() {
		_ = file.Close()
	}()

	return Read(file)
}

// Read decodes a SafeTensors stream. The header is validated before any
// tensor data is decoded.
func Read(r io.Reader) (map[string]*ndarray.Array, map[string]string, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read header size")
	}
	if headerSize > MaxHeaderSize {
		return nil, nil, &ValidationError{
			Kind:    ErrHeaderTooLarge,
			Details: "header size exceeds limit",
		}
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read header")
	}

	metas, metadata, err := parseHeader(headerJSON)
	if err != nil {
		return nil, nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read tensor data")
	}
	if err := ValidateTensorOffsets(metas, int64(len(data))); err != nil {
		return nil, nil, err
	}

	stateDict := make(map[string]*ndarray.Array, len(metas))
	for _, m := range metas {
		a, err := decode(m, data[m.Offset:m.Offset+m.Size])
		if err != nil {
			return nil, nil, err
		}
		stateDict[m.Name] = a
	}
	return stateDict, metadata, nil
}

// parseHeader decodes the JSON header into tensor metadata.
func parseHeader(headerJSON []byte) ([]TensorMeta, map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(headerJSON, &raw); err != nil {
		return nil, nil, errors.Wrap(err, "failed to parse header")
	}

	var metadata map[string]string
	if m, ok := raw[metadataKey]; ok {
		if err := json.Unmarshal(m, &metadata); err != nil {
			return nil, nil, errors.Wrap(err, "failed to parse metadata")
		}
		delete(raw, metadataKey)
	}

	if len(raw) > MaxTensorCount {
		return nil, nil, &ValidationError{Kind: ErrTooManyTensors, Details: "header lists too many tensors"}
	}

	metas := make([]TensorMeta, 0, len(raw))
	for name, entry := range raw {
		if err := ValidateTensorName(name); err != nil {
			return nil, nil, err
		}

		var th TensorHeader
		if err := json.Unmarshal(entry, &th); err != nil {
			return nil, nil, errors.Wrapf(err, "failed to parse tensor %q", name)
		}

		shape := make(ndarray.Shape, len(th.Shape))
		for i, d := range th.Shape {
			shape[i] = int(d)
		}
		m := TensorMeta{
			Name:   name,
			DType:  th.DType,
			Shape:  shape,
			Offset: th.DataOffsets[0],
			Size:   th.DataOffsets[1] - th.DataOffsets[0],
		}
		if err := validateMeta(m); err != nil {
			return nil, nil, err
		}
		metas = append(metas, m)
	}
	return metas, metadata, nil
}

// decode converts raw little-endian bytes into a float64 array.
func decode(m TensorMeta, b []byte) (*ndarray.Array, error) {
	values := make([]float64, m.Shape.NumElements())
	switch m.DType {
	case DTypeF64:
		for i := range values {
			values[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
		}
	case DTypeF32:
		for i := range values {
			values[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:])))
		}
	default:
		return nil, &ValidationError{Kind: ErrUnsupportedDType, Tensor: m.Name, Details: m.DType}
	}

	a, err := ndarray.New(values, m.Shape)
	if err != nil {
		return nil, errors.Wrapf(err, "tensor %q", m.Name)
	}
	return a, nil
}
