package clipboard

import (
	"fmt"
	"io"
)

// ReadContent returns the bytes to copy. An explicit argument always wins;
// otherwise stdin is read to EOF as raw bytes.
func ReadContent(arg *string, stdin io.Reader) ([]byte, error) {
	if arg != nil {
		return []byte(*arg), nil
	}
	content, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("clipboard: read stdin: %w", err)
	}
	return content, nil
}
