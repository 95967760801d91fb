package technote

import (
	"github.com/alnah/go-technote/internal/config"
	"github.com/alnah/go-technote/internal/ident"
)

// ValidateORCID checks an ORCID identifier or URL and returns its canonical
// https://orcid.org/ form.
func ValidateORCID(s string) (string, error) {
	return ident.ValidateORCID(s)
}

// ValidateROR checks a ROR URL and returns its canonical https://ror.org/ form.
func ValidateROR(s string) (string, error) {
	return ident.ValidateROR(s)
}

// ParseConfig parses and validates technote.toml content.
func ParseConfig(data []byte) (*Config, error) {
	return config.Parse(data)
}

// LoadConfig reads and validates the technote.toml file at path.
func LoadConfig(path string) (*Config, error) {
	return config.LoadFile(path)
}
