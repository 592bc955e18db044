package metastore

import (
	"path/filepath"

	"git.home.luguber.info/inful/devplug/internal/errors"
	"git.home.luguber.info/inful/devplug/internal/logfields"
)

// Lookup resolves a property name to its current value. The event context
// provides the canonical implementation; tests substitute maps.
type Lookup func(name string) (value string, ok bool)

// AddProperty appends a key=value line to dir/properties. Duplicate keys
// are permitted and preserved in order; consumers resolve last-line-wins.
func (s *Store) AddProperty(key, value, dir string) error {
	if err := appendLine(filepath.Join(dir, propertiesFile), key+"="+value); err != nil {
		return err
	}
	s.rec.IncPropertyAdded()
	s.logger.Debug("added property", logfields.Property(key), logfields.MetadataDir(dir))
	return nil
}

// AddProperties records the current value of each named property, resolved
// through lookup. Names whose value is absent or empty are skipped without
// being recorded. On the first write failure the remaining names are not
// attempted and the failing property is reported.
func (s *Store) AddProperties(dir string, names []string, lookup Lookup) error {
	for _, name := range names {
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := s.AddProperty(name, value, dir); err != nil {
			return errors.Wrap(err, errors.KindIO, "record property").
				WithContext("property", name)
		}
	}
	return nil
}
