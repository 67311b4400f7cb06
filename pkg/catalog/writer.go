package catalog

import "os"

// Encode renders the catalog in its fixed on-disk form: object keys sorted
// lexicographically, 2-space indentation, ": " between key and value.
func Encode(c MessageCatalog) ([]byte, error) {
	return json.Marshal(c)
}

// WriteFile serializes the catalog to path, overwriting any existing file.
// A trailing newline keeps the output friendly to git and POSIX tools.
func WriteFile(path string, c MessageCatalog) error {
	data, err := Encode(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
