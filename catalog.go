package folders

import (
	"github.com/owservable/folders/metrics"
	"github.com/owservable/folders/storage"
)

// Catalog gives access to the configured sources by name, each with its own
// instrumented Walker.
type Catalog struct {
	names   []string
	sources map[string]*storage.Source
	walkers map[string]*Walker
}

// NewCatalog registers traversal metrics for every source. opts apply to all
// walkers.
func NewCatalog(sources []*storage.Source, opts ...Option) *Catalog {
	c := &Catalog{
		sources: make(map[string]*storage.Source, len(sources)),
		walkers: make(map[string]*Walker, len(sources)),
	}

	for _, source := range sources {
		walkerOpts := append([]Option{WithMetrics(metrics.NewTraversal(source.Name))}, opts...)

		c.names = append(c.names, source.Name)
		c.sources[source.Name] = source
		c.walkers[source.Name] = New(source, walkerOpts...)
	}

	return c
}

// Names returns the source names in configuration order.
func (c *Catalog) Names() []string {
	return append([]string{}, c.names...)
}

// Lookup returns the named source and its walker.
func (c *Catalog) Lookup(name string) (*storage.Source, *Walker, bool) {
	source, ok := c.sources[name]
	if !ok {
		return nil, nil, false
	}
	return source, c.walkers[name], true
}

// Run resolves root inside the source and runs the operation on it.
func (c *Catalog) Run(sourceName string, op Operation, root string, name string) ([]string, error) {
	source, walker, ok := c.Lookup(sourceName)
	if !ok {
		return nil, &UnknownSourceError{Name: sourceName}
	}

	resolved, err := source.Resolve(root)
	if err != nil {
		return nil, err
	}

	return walker.Run(op, resolved, name)
}

// Close unregisters the metrics of all walkers.
func (c *Catalog) Close() {
	for _, walker := range c.walkers {
		walker.metrics.Drop()
	}
}

type UnknownSourceError struct {
	Name string
}

func (e *UnknownSourceError) Error() string {
	return "source '" + e.Name + "' does not exist"
}
