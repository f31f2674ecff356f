package catalog

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/kekaadrenalin/hookedit/pkg/types"
)

// PackagesDatabase is the package catalog webhooks can subscribe to.
type PackagesDatabase struct {
	Packages []types.Package `yaml:"packages"`
	LastRead time.Time       `yaml:"-"`
	Path     string          `yaml:"-"`

	mu sync.Mutex
}

func ReadPackagesFromFile(path string) (*PackagesDatabase, error) {
	packages, err := decodePackagesFromFile(path)
	if err != nil {
		return nil, err
	}

	packages.LastRead = time.Now()
	packages.Path = path

	return packages, nil
}

// Search returns up to limit packages whose name, display name or publisher contains query.
func (d *PackagesDatabase) Search(query string, limit int) []types.Package {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.readFileIfChanged(); err != nil {
		log.Errorf("Error reading packages file: %s", err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	result := make([]types.Package, 0)

	for _, p := range d.Packages {
		if limit > 0 && len(result) >= limit {
			break
		}

		if query == "" || matches(p, query) {
			result = append(result, p)
		}
	}

	return result
}

// Find returns the package with the given id.
func (d *PackagesDatabase) Find(packageID string) *types.Package {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.readFileIfChanged(); err != nil {
		log.Errorf("Error reading packages file: %s", err)
	}

	for _, p := range d.Packages {
		if p.PackageID == packageID {
			found := p
			return &found
		}
	}

	return nil
}

func matches(p types.Package, query string) bool {
	for _, field := range []string{p.Name, p.NormalizedName, p.DisplayName, p.Publisher()} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}

	return false
}

func decodePackagesFromFile(path string) (*PackagesDatabase, error) {
	packages := &PackagesDatabase{}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Warnf("Could not find packages file at %s, the catalog is empty", path)

		return packages, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(packages); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return packages, nil
}

func (d *PackagesDatabase) readFileIfChanged() error {
	if d.Path == "" {
		return nil
	}

	info, err := os.Stat(d.Path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if info.ModTime().After(d.LastRead) {
		log.Infof("Found changes to %s. Updating packages...", d.Path)
		packages, err := decodePackagesFromFile(d.Path)
		if err != nil {
			return err
		}
		d.Packages = packages.Packages
		d.LastRead = time.Now()
	}

	return nil
}
