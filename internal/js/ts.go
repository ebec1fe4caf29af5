package js

import "github.com/dlclark/regexp2"

// Type-only imports are the one TypeScript construct the pipeline handles:
// they are removed before the script reaches the parser, which emits an
// untyped tree for everything else.
var typeImportRe = regexp2.MustCompile(`(?m)^[ \t]*import\s+type\b[^;\r\n]*;?[ \t]*\r?$`, regexp2.None)

// StripTypeImports removes `import type …` statements from a lang="ts"
// script body.
func StripTypeImports(source string) string {
	out, err := typeImportRe.Replace(source, "", -1, -1)
	if err != nil {
		return source
	}
	return out
}
