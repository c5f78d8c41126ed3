package global

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool

	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
