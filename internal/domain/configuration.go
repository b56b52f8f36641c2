package domain

// Configuration is the YAML document driving a CLI run.
type Configuration struct {
	Title         string           `yaml:"title,omitempty" json:"title,omitempty"`
	MembersFile   string           `yaml:"members_file" json:"members_file"`
	WaitlistFile  string           `yaml:"waitlist_file,omitempty" json:"waitlist_file,omitempty"`
	ReferenceDate string           `yaml:"reference_date,omitempty" json:"reference_date,omitempty"` // YYYY-MM-DD, empty means today
	Buckets       BucketGeometry   `yaml:"buckets" json:"buckets"`
	Simulation    SimulationConfig `yaml:"simulation" json:"simulation"`
	Output        OutputConfig     `yaml:"output" json:"output"`
}

// OutputConfig selects the report formatter and destination.
type OutputConfig struct {
	Format string `yaml:"format" json:"format"`
	Path   string `yaml:"path,omitempty" json:"path,omitempty"` // empty means stdout
}
