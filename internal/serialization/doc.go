// Package serialization saves and loads parameter state dictionaries in the
// SafeTensors format.
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON object, one entry per tensor plus optional "__metadata__"]
//	  [Tensor data: raw little-endian bytes, tensors in name order]
//
// Each header entry records dtype, shape and the [begin, end) byte range in
// the data section. Tensors are written as F64; F32 tensors are widened on
// load.
//
// Example usage:
//
//	// Save a model
//	if err := serialization.WriteFile("model.safetensors", model.StateDict(), nil); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Load a model
//	stateDict, _, err := serialization.ReadFile("model.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := model.LoadStateDict(stateDict); err != nil {
//	    log.Fatal(err)
//	}
package serialization
