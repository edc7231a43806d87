package domain

import (
	"fmt"
	"time"
)

// Crate represents one crates.io search result. It is immutable once
// decoded from a registry response.
type Crate struct {
	ID              string
	Name            string
	MaxVersion      string
	NewestVersion   string
	Description     string
	Downloads       uint64
	RecentDownloads uint64
	ExactMatch      bool
	Homepage        string
	Repository      string
	Documentation   string
	UpdatedAt       time.Time
}

// DependencyLine returns the Cargo.toml dependency declaration for the crate,
// e.g. `serde = "1.0.219"`.
func (c Crate) DependencyLine() string {
	return fmt.Sprintf("%s = %q", c.Name, c.MaxVersion)
}
