package printer

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// TemplateName derives an exported template identifier from a source path.
func TemplateName(pathname string) string {
	if len(pathname) == 0 {
		return "Template"
	}
	parts := strings.Split(pathname, "/")
	part := parts[len(parts)-1]
	if len(part) == 0 {
		return "Template"
	}
	basename := strcase.ToCamel(strings.Split(part, ".")[0])
	if basename == "" {
		return "Template"
	}
	return basename
}
