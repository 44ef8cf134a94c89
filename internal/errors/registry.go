package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://github.com/iamsufiyan560/QuickCode#"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Config and Registry Errors (E100-E109)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Invalid quickcode.json",
		Detail:   "quickcode.json could not be parsed as JSON.",
		DocURL:   docBase + "E100",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A configuration value is out of range or unsupported.",
		DocURL:   docBase + "E101",
	},
	"E102": {
		Category: CategoryInstall,
		Message:  "Unsafe destination path",
		Detail:   "A component or hook name resolves outside the project directory.",
		DocURL:   docBase + "E102",
	},
	"E103": {
		Category: CategoryRegistry,
		Message:  "Fetch failed",
		Detail:   "A source file could not be downloaded.",
		DocURL:   docBase + "E103",
	},
	"E104": {
		Category: CategoryRegistry,
		Message:  "Failed to fetch component map",
		Detail:   "Unable to download the component registry.",
		DocURL:   docBase + "E104",
	},
	"E105": {
		Category: CategoryRegistry,
		Message:  "Invalid component map",
		Detail:   "The component registry document could not be decoded.",
		DocURL:   docBase + "E105",
	},

	// ============================================
	// Install Errors (E110-E119)
	// ============================================

	"E110": {
		Category: CategoryInstall,
		Message:  "Component not found",
		Detail:   "The requested component is not available in the registry.",
		DocURL:   docBase + "E110",
	},
	"E111": {
		Category: CategoryInstall,
		Message:  "Dependency cycle detected",
		Detail:   "The registry lists components that require each other.",
		DocURL:   docBase + "E111",
	},
	"E112": {
		Category: CategoryInstall,
		Message:  "Dependency install failed",
		Detail:   "The package manager exited with an error.",
		DocURL:   docBase + "E112",
	},
	"E113": {
		Category: CategoryInstall,
		Message:  "Write failed",
		Detail:   "A file could not be written to the project.",
		DocURL:   docBase + "E113",
	},

	// ============================================
	// Setup Errors (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryInstall,
		Message:  "Setup failed",
		Detail:   "The project could not be prepared for QuickCode UI.",
		DocURL:   docBase + "E120",
	},

	// ============================================
	// CLI Errors (E140-E149)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Invalid flag combination",
		Detail:   "Two flags that cannot be used together were given.",
		DocURL:   docBase + "E140",
	},
}

