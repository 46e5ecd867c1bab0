// Package storage implements the project workspace file manager: path
// resolution, directory scanning, manifest-backed item identity, and the
// structural mutation operations exposed over HTTP.
package storage

// Service bundles the file-manager components behind one API used by the
// HTTP handlers. All methods are safe for concurrent use; structural
// mutations and manifest cycles are serialized per project.
type Service struct {
	resolver  *Resolver
	scanner   *Scanner
	manifests *ManifestStore
	cfg       *Config
	cache     *Cache
	versions  *VersionService
}

// NewService wires a file-manager service. versions may be nil to disable
// mutation history.
func NewService(resolver *Resolver, cfg *Config, cache *Cache, versions *VersionService) *Service {
	return &Service{
		resolver:  resolver,
		scanner:   NewScanner(cfg),
		manifests: NewManifestStore(),
		cfg:       cfg,
		cache:     cache,
		versions:  versions,
	}
}

// Resolver exposes the path resolver, mainly for the HTTP layer's own
// validation needs.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}
