package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort        = "Materialize dotfiles from a configuration repository"
	MsgMaterializeShort = "Render templates and link them into the home directory"
	MsgMaterializeLong  = `Materialize resolves secrets, renders every template declared in the
repository manifest, stages the results, and links them into your home
directory. Files already present at a destination are backed up before
they are replaced.

The source may be a local directory or a git URL, in which case the
repository is cloned to a temporary location for the run.`
	MsgVersionShort    = "Print version information"
	MsgDocsShort       = "Display documentation topics"
	MsgDocsLong        = "Display one of the bundled documentation topics, rendered for the terminal."
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Preview changes without touching the home directory"
	MsgFlagHome     = "Target home directory (defaults to $DOTSTRAP_HOME, then $HOME)"
	MsgFlagSkipBrew = "Skip Homebrew package installation"
	MsgFlagWorkers  = "Number of entries processed concurrently"
	MsgFlagFormat   = "Output format: auto, term, text, or json"

	// Status messages
	MsgRunFailed = "materialization completed with failures"
)
