package workflow

// Action is a repository operation that is currently applicable. The set is
// derived fresh on every inspection and never stored.
type Action int

const (
	ActionInit Action = iota
	ActionAddRemote
	ActionCommit
	ActionPush
)

func (a Action) String() string {
	switch a {
	case ActionInit:
		return "init"
	case ActionAddRemote:
		return "add-remote"
	case ActionCommit:
		return "commit"
	case ActionPush:
		return "push"
	default:
		return "unknown"
	}
}

// Choice is a menu entry. Dispatch happens on these values, never on the
// displayed labels, so presentation text can change freely.
type Choice int

const (
	ChoiceInit Choice = iota
	ChoiceAddRemote
	ChoiceCommit
	ChoicePush
	ChoiceStatus
	ChoiceSwitchAccount
	ChoiceReset
	ChoiceExit
	ChoiceCreateNew
	ChoiceConnectExisting
	ChoiceCancel
)

// Label returns the menu text for a choice.
func (c Choice) Label() string {
	switch c {
	case ChoiceInit:
		return "Initialize a git repository here"
	case ChoiceAddRemote:
		return "Connect a GitHub repository (add remote)"
	case ChoiceCommit:
		return "Stage and commit changes"
	case ChoicePush:
		return "Push to origin"
	case ChoiceStatus:
		return "Show status"
	case ChoiceSwitchAccount:
		return "Switch GitHub account"
	case ChoiceReset:
		return "Reset saved credentials"
	case ChoiceExit:
		return "Exit"
	case ChoiceCreateNew:
		return "Create a NEW GitHub repository"
	case ChoiceConnectExisting:
		return "Connect an EXISTING repository"
	case ChoiceCancel:
		return "Cancel"
	default:
		return "unknown"
	}
}

var actionChoices = map[Action]Choice{
	ActionInit:      ChoiceInit,
	ActionAddRemote: ChoiceAddRemote,
	ActionCommit:    ChoiceCommit,
	ActionPush:      ChoicePush,
}

// Inspect derives the applicable actions from the current repository state.
// Outside a work tree only Init applies and no other probe runs. Inside one,
// the three remaining predicates are independent; several actions may apply
// at once.
func Inspect(git GitClient) ([]Action, error) {
	if !git.IsRepository() {
		return []Action{ActionInit}, nil
	}

	var actions []Action

	remotes, err := git.Remotes()
	if err != nil {
		return nil, err
	}
	if remotes == "" {
		actions = append(actions, ActionAddRemote)
	}

	dirty, err := git.HasChanges()
	if err != nil {
		return nil, err
	}
	if dirty {
		actions = append(actions, ActionCommit)
	}

	// Push shows up only once remote-tracking history exists, which the
	// first push itself establishes. Immediately after an initial commit
	// the action is therefore still absent.
	pushable, err := git.HasRemoteHistory()
	if err != nil {
		return nil, err
	}
	if pushable {
		actions = append(actions, ActionPush)
	}

	return actions, nil
}
