// Package brew installs Homebrew taps, formulae, and casks declared by
// the configuration repository. It sits outside the materialization
// core: the run's correctness never depends on its result.
package brew

import (
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/config"
	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/types"
)

// Install executes the Homebrew commands required by the spec, in a
// stable order: update, taps, formulae, casks. It returns the command
// list, which in dry-run mode is planned but not executed.
func Install(spec *config.BrewSpec, executor types.Executor, dryRun bool) ([]string, error) {
	logger := logging.GetLogger("brew")

	var executed []string
	if spec == nil || spec.Empty() {
		return executed, nil
	}

	if err := ensureAvailable(executor); err != nil {
		return nil, err
	}

	run := func(args ...string) error {
		executed = append(executed, "brew "+strings.Join(args, " "))
		if dryRun {
			return nil
		}
		return executor.Run("brew", args...)
	}

	if err := run("update"); err != nil {
		return executed, err
	}
	for _, tap := range spec.Taps {
		if err := run("tap", tap, "--force"); err != nil {
			return executed, err
		}
	}
	for _, formula := range spec.Formulae {
		if err := run("install", formula); err != nil {
			return executed, err
		}
	}
	for _, cask := range spec.Casks {
		if err := run("install", "--cask", cask); err != nil {
			return executed, err
		}
	}

	logger.Info().
		Int("commands", len(executed)).
		Bool("dryRun", dryRun).
		Msg("homebrew installation finished")

	return executed, nil
}

func ensureAvailable(executor types.Executor) error {
	if err := executor.Run("brew", "--version"); err != nil {
		return errors.Wrap(err, errors.ErrBrewMissing,
			"Homebrew is not installed or not executable")
	}
	return nil
}
