package entities

// Summary is the outcome of a single run over a directory tree.
type Summary struct {
	TotalFiles    int          // Number of project files visited
	Files         []string     // Every visited project file, in walk order
	MigratedFiles []string     // Files whose inline versions were stripped
	Dependencies  []Dependency // Unique packages in first-discovery order
	OutputPath    string       // Central manifest written, empty when none was
}
