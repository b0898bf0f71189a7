package vault

import (
	"regexp"
	"strings"
	"sync"
)

// Vault is the on-disk audit area: an assessment log and drafted hand-off notes
type Vault struct {
	basePath string
	logLock  sync.Mutex // serializes assessment log appends
}

func NewVault(basePath string) *Vault {
	return &Vault{basePath: basePath}
}

func (v *Vault) BasePath() string {
	return v.basePath
}

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9-]`)
	dashRuns  = regexp.MustCompile(`-+`)
	maxSlugLn = 40
)

// slugify turns a name into a filename-safe token
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "-", "_", "-", ".", "-").Replace(s)
	s = nonSlug.ReplaceAllString(s, "")
	s = dashRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > maxSlugLn {
		s = strings.TrimRight(s[:maxSlugLn], "-")
	}
	if s == "" {
		s = "anon"
	}
	return s
}
