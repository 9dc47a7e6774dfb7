package entities

// Dependency represents a NuGet package declared inline in a project file.
type Dependency struct {
	Name     string // Package identifier (the Include attribute)
	Version  string // Version declared inline
	FilePath string // Project file the declaration was read from
}

// DependencySet holds dependencies keyed by name, keeping the order in which
// each name was first seen. Adding a name twice keeps the later version.
type DependencySet struct {
	order  []string
	byName map[string]Dependency
}

// NewDependencySet creates an empty set.
func NewDependencySet() *DependencySet {
	return &DependencySet{
		byName: make(map[string]Dependency),
	}
}

// Add stores the dependency and returns the record it replaced, if any.
func (it *DependencySet) Add(dep Dependency) (Dependency, bool) {
	previous, exists := it.byName[dep.Name]
	if !exists {
		it.order = append(it.order, dep.Name)
	}
	it.byName[dep.Name] = dep
	return previous, exists
}

// Get returns the dependency stored under name.
func (it *DependencySet) Get(name string) (Dependency, bool) {
	dep, ok := it.byName[name]
	return dep, ok
}

// Len returns the number of unique names.
func (it *DependencySet) Len() int {
	return len(it.order)
}

// All returns the dependencies in first-discovery order.
func (it *DependencySet) All() []Dependency {
	result := make([]Dependency, 0, len(it.order))
	for _, name := range it.order {
		result = append(result, it.byName[name])
	}
	return result
}
