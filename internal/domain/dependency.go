package domain

import "time"

// Dependency is a directed FS/SS/FF relation between two activities.
// Both ends are weak references resolved by lookup.
type Dependency struct {
	ID             string
	FromActivityID string
	ToActivityID   string
	Type           DependencyType
	CreatedAt      time.Time
}

// Validate checks the type and that both ends differ.
func (d *Dependency) Validate() error {
	if _, err := ParseDependencyType(string(d.Type)); err != nil {
		return err
	}
	if d.FromActivityID == d.ToActivityID {
		return ErrSelfDependency
	}
	return nil
}
