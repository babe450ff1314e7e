package discovery

import (
	"fmt"
	"path"
	"strings"
)

// WeightFormat is the serialization format of a weight file.
type WeightFormat string

const (
	FormatGGUF        WeightFormat = "gguf"
	FormatSafetensors WeightFormat = "safetensors"
	FormatPyTorch     WeightFormat = "pytorch"
	FormatONNX        WeightFormat = "onnx"
	FormatNeMo        WeightFormat = "nemo"
	FormatGGML        WeightFormat = "ggml"
	FormatCoreML      WeightFormat = "coreml"
	FormatTFLite      WeightFormat = "tflite"
	FormatKeras       WeightFormat = "keras"
	FormatTorchServe  WeightFormat = "torchserve"
	FormatTensorRT    WeightFormat = "tensorrt"
	FormatUnknown     WeightFormat = "unknown"
)

// Formats lists every known format, Unknown last.
var Formats = []WeightFormat{
	FormatGGUF, FormatSafetensors, FormatPyTorch, FormatONNX, FormatNeMo,
	FormatGGML, FormatCoreML, FormatTFLite, FormatKeras, FormatTorchServe,
	FormatTensorRT, FormatUnknown,
}

// formatRules are evaluated in order against the lowercased base name;
// the first rule whose prefix and suffix both match wins.
var formatRules = []struct {
	prefix string
	suffix string
	format WeightFormat
}{
	{"", ".gguf", FormatGGUF},
	{"", ".safetensors", FormatSafetensors},
	{"", ".ggml", FormatGGML},
	{"ggml", ".bin", FormatGGML},
	{"", ".bin", FormatPyTorch},
	{"", ".pt", FormatPyTorch},
	{"", ".pth", FormatPyTorch},
	{"", ".onnx", FormatONNX},
	{"", ".nemo", FormatNeMo},
	{"", ".mlmodel", FormatCoreML},
	{"", ".mlpackage", FormatCoreML},
	{"", ".tflite", FormatTFLite},
	{"", ".keras", FormatKeras},
	{"", ".h5", FormatKeras},
	{"", ".mar", FormatTorchServe},
	{"", ".engine", FormatTensorRT},
	{"", ".plan", FormatTensorRT},
	{"", ".trt", FormatTensorRT},
}

// metadataStoplist marks files that ship alongside weights but are not
// weights, whatever their extension.
var metadataStoplist = []string{
	"tokenizer",
	"config",
	"vocab",
	"merges",
	"special_tokens",
	"generation_config",
	"preprocessor",
	"trainer_state",
	"training_args",
	"optimizer",
	"scheduler",
	"added_tokens",
}

// ClassifyFile returns the weight format of a repository file. ok is false
// for hidden files and metadata files, which are never artifacts.
func ClassifyFile(p string) (format WeightFormat, ok bool) {
	base := strings.ToLower(path.Base(p))
	if base == "" || strings.HasPrefix(base, ".") {
		return "", false
	}
	for _, stop := range metadataStoplist {
		if strings.Contains(base, stop) {
			return "", false
		}
	}
	for _, r := range formatRules {
		if strings.HasPrefix(base, r.prefix) && strings.HasSuffix(base, r.suffix) {
			return r.format, true
		}
	}
	return FormatUnknown, true
}

// ParseWeightFormat parses a format name, case-insensitively.
func ParseWeightFormat(s string) (WeightFormat, error) {
	want := WeightFormat(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range Formats {
		if f == want {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown weight format %q", s)
}
