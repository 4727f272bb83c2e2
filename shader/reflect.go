package shader

import "regexp"

// declPattern matches "uniform <type> <name>" followed by ';', '=' or ','.
// Arrays, blocks and qualified declarations do not match.
var declPattern = regexp.MustCompile(`\buniform\s+(\w+)\s+(\w+)\s*[;=,]`)

// ExtractUniforms scans source for uniform declarations whose type
// keyword is in table, left to right. Duplicates are kept. Declarations
// with unknown type keywords are skipped. A nil table means DefaultTypes.
func ExtractUniforms(source string, table *TypeTable) []Uniform {
	if table == nil {
		table = DefaultTypes
	}
	var out []Uniform
	for _, m := range declPattern.FindAllStringSubmatch(source, -1) {
		tag, ok := table.Lookup(m[1])
		if !ok {
			continue
		}
		out = append(out, Uniform{Name: m[2], Type: tag, Default: DefaultValue(tag)})
	}
	return out
}
