package trackpath

const (
	// TrackDir is the name of the workspace metadata directory
	TrackDir = ".trackit"

	// ObjectsDir is the directory holding content-addressed objects
	ObjectsDir = "objects"

	// RefsDir is the directory holding mutable references
	RefsDir = "refs"

	// LocksDir is the directory holding advisory lock sentinels
	LocksDir = "locks"

	// ConfigFileName is the workspace configuration file name
	ConfigFileName = "config.json"

	// LockSuffix is the suffix for lock sentinel files
	LockSuffix = ".lock"
)

// Well-known reference name prefixes, one per entity kind
const (
	IssuesPrefix   = "issues/"
	ProjectsPrefix = "projects/"
	UsersPrefix    = "users/"
	TeamsPrefix    = "teams/"
	LabelsPrefix   = "labels/"
	RemotesPrefix  = "remotes/"
)
