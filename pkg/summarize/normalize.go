package summarize

import "regexp"

// groupedName matches parameter names that encode grouped structure, such as
// "sigma[cyl]" or "b[Intercept]". The part before the brackets becomes the
// group label, the bracketed part the display parameter.
var groupedName = regexp.MustCompile(`^([^\[\]]+)\[([^\[\]]+)\]$`)

// splitGroupedName splits a grouped parameter name into group and clean
// parameter labels. Names without grouped structure return ok=false and are
// left untouched by the caller.
func splitGroupedName(name string) (group, parameter string, ok bool) {
	m := groupedName.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}
