package version_control

// Version system:
// vMAJOR.MINOR.PATCH

// Centralized version control
const (
	// Executible
	Main_version = "v1.0.0"

	// Modular tools
	Benchmark   = "v1.0.0"
	GHMM_Scan   = "v1.0.0"
	GHMM_Sim    = "v1.0.0"
	GHMM_Report = "v1.0.0"
)
