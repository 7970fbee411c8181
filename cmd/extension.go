package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/rs/zerolog/log"
)

// Environment variables read as flag defaults, and passed to extensions.
const (
	EnvJournal  = "MCALC_JOURNAL"
	EnvConfig   = "MCALC_CONFIG"
	EnvCurrency = "MCALC_CURRENCY"
	EnvVerbose  = "MCALC_VERBOSE"
)

// RunExtension attempts to find and execute an external mcalc-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "mcalc-" + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Debug().Err(err).Str("command", externalCmdName).Msg("no extension found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = output
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvJournal+"="+*journalFile)
	cmd.Env = append(cmd.Env, EnvConfig+"="+*configFile)
	cmd.Env = append(cmd.Env, EnvCurrency+"="+*currency)
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}

	return true, 0
}
