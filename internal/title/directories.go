package title

// knownDirectories maps conventional documentation directory names to their
// display titles. Lookups are exact and case-sensitive. Read-only after init.
var knownDirectories = map[string]string{
	"adr":             "Architecture Decision Records",
	"cli":             "CLI Tools",
	"concepts":        "Core Concepts",
	"config":          "Configuration Guide",
	"decision":        "Decision",
	"design":          "Design Documents",
	"dev":             "Developer Guide",
	"getting_started": "Getting Started",
	"getting-started": "Getting Started",
	"guides":          "User Guides",
	"migration":       "Migration Guides",
	"params":          "Parameters Reference",
	"plugins":         "Plugins",
	"reference":       "Reference",
	"schemas":         "Schemas",
	"sinks":           "Sinks",
	"tasks":           "Task Documents",
	"tools":           "Tools",
	"usecases":        "Use Cases",
	"user":            "User Guide",
}

// KnownDirectory returns the fixed display title for a conventional
// directory name.
func KnownDirectory(name string) (string, bool) {
	t, ok := knownDirectories[name]
	return t, ok
}
