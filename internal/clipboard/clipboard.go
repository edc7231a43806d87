package clipboard

import "github.com/atotto/clipboard"

// Writer is the optional copy-to-clipboard capability. A nil Writer disables
// the copy action entirely.
type Writer interface {
	Set(text string) error
}

// System writes to the OS clipboard.
type System struct{}

func (System) Set(text string) error {
	return clipboard.WriteAll(text)
}
