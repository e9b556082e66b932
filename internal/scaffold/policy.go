package scaffold

// Policy governs how an artifact reconciles against an existing file.
type Policy int

const (
	// CreateOnce writes the artifact only when the file is absent.
	// An existing file is never touched again.
	CreateOnce Policy = iota

	// OverwriteUnlessEmpty replaces the file whenever the source collection
	// has entries. An empty collection leaves any existing file as it is.
	OverwriteUnlessEmpty
)

func (p Policy) String() string {
	switch p {
	case CreateOnce:
		return "create-once"
	case OverwriteUnlessEmpty:
		return "overwrite-unless-empty"
	default:
		return "unknown"
	}
}

// Action is the filesystem operation a reconciliation step will perform.
type Action int

const (
	ActionSkip Action = iota
	ActionCreate
	ActionOverwrite
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionOverwrite:
		return "overwrite"
	default:
		return "skip"
	}
}

// Observed is the current on-disk state of one artifact.
type Observed struct {
	Exists  bool
	Content []byte
}

// Decide maps an artifact's policy and the observed file state to an action
// and a short reason suitable for logging.
func Decide(a Artifact, obs Observed) (Action, string) {
	switch a.Policy {
	case CreateOnce:
		if obs.Exists {
			return ActionSkip, "scaffold present"
		}
		return ActionCreate, "scaffold missing"

	case OverwriteUnlessEmpty:
		if a.Empty {
			return ActionSkip, "source empty"
		}
		if !obs.Exists {
			return ActionCreate, "file missing"
		}
		if string(obs.Content) == string(a.Content) {
			return ActionSkip, "unchanged"
		}
		return ActionOverwrite, "content differs"
	}

	return ActionSkip, "unknown policy"
}
