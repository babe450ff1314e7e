package discovery

import (
	"path"
	"regexp"
	"strings"
)

// QuantUnknown is the quantization tag of artifacts without one.
const QuantUnknown = "unknown"

// PreferredQuant is the quantization picked for catalog entries when a
// repository offers it.
const PreferredQuant = "Q4_K_M"

// quantRules run against the uppercased name with hyphens turned into
// underscores. First match wins.
var quantRules = []*regexp.Regexp{
	regexp.MustCompile(`I?Q\d_[A-Z0-9_]+`), // Q4_K_M, Q5_K_S, Q8_0, IQ4_XS
	regexp.MustCompile(`I?Q\d_\d`),
	regexp.MustCompile(`BF16|F16|F32`),
}

// templateQuant locates the quant token in a filename without changing its
// case, for the {quant} placeholder.
var templateQuant = regexp.MustCompile(`[Ii]?[Qq]\d_[Kk]?_?[A-Za-z0-9]*`)

// ExtractQuant returns the normalized quantization tag found in name.
func ExtractQuant(name string) (string, bool) {
	normalized := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	for _, rule := range quantRules {
		if m := rule.FindString(normalized); m != "" {
			return strings.TrimRight(m, "_"), true
		}
	}
	return "", false
}

// QuantToken returns the first quant token of filename as spelled there,
// for example "q4_k_m" in "qwen2.5-1.5b-instruct-q4_k_m.gguf".
func QuantToken(filename string) (string, bool) {
	m := templateQuant.FindString(filename)
	return m, m != ""
}

// FilenameTemplate replaces every occurrence of the first quant token of
// filename with "{quant}", so "Q4_K_M/big-Q4_K_M.gguf" becomes
// "{quant}/big-{quant}.gguf". Filenames without one are returned unchanged.
func FilenameTemplate(filename string) string {
	token, ok := QuantToken(filename)
	if !ok {
		return filename
	}
	return strings.ReplaceAll(filename, token, "{quant}")
}

// HasPlaceholder reports whether template takes a quantization.
func HasPlaceholder(template string) bool {
	return strings.Contains(template, "{quant}")
}

// FileQuant returns the normalized quantization of a repository file,
// ignoring directories and shard infixes.
func FileQuant(p string) (string, bool) {
	name := path.Base(p)
	if shard, ok := ParseShard(name); ok {
		name = shard.Key
	}
	return ExtractQuant(name)
}

// ExpandTemplate substitutes quant into a filename template.
func ExpandTemplate(template, quant string) string {
	return strings.ReplaceAll(template, "{quant}", quant)
}
