package class

// Default is the process-wide registry used by the package-level helpers.
var Default = NewRegistry()

// Define registers a class in the Default registry.
func Define(name string, d Descriptor) (*Class, error) {
	return Default.Define(name, d)
}

// Lookup finds a class in the Default registry.
func Lookup(name string) (*Class, error) {
	return Default.Lookup(name)
}

// New builds an instance from the Default registry.
func New(name string, cfg map[string]any) (*Instance, error) {
	return Default.New(name, cfg)
}

// Create builds and initializes an instance from the Default registry.
func Create(name string, cfg map[string]any) (*Instance, error) {
	return Default.Create(name, cfg)
}
