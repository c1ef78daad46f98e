package gen

import "golang.org/x/tools/imports"

// Format runs the generated source through goimports-style formatting.
// If formatting fails the raw source is returned together with the error,
// so callers can still write something inspectable to disk.
func Format(filename string, src []byte) ([]byte, error) {
	formatted, err := imports.Process(filename, src, nil)
	if err != nil {
		return src, err
	}
	return formatted, nil
}
