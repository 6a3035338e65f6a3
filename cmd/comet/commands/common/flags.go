// SPDX-License-Identifier: Apache-2.0

package common

import (
	"context"
	"time"

	"github.com/automa-saga/automa"
	"github.com/hashgraph/comet/internal/doctor"
	"github.com/hashgraph/comet/internal/help"
	"github.com/joomcode/errorx"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	FlagSource = FlagDefinition[string]{
		Name:        "source",
		ShortName:   "s",
		Description: "URI of the update package (http, https or file)",
		Default:     "",
	}

	FlagDownloadDir = FlagDefinition[string]{
		Name:        "download-dir",
		ShortName:   "d",
		Description: "Directory the update package is downloaded and extracted to",
		Default:     "",
	}

	FlagExecutable = FlagDefinition[string]{
		Name:        "executable",
		ShortName:   "e",
		Description: "Path of the installed executable to update (defaults to this binary)",
		Default:     "",
	}

	FlagPackageFile = FlagDefinition[string]{
		Name:        "package-file",
		ShortName:   "",
		Description: "File the update package is written to (defaults to the source file name in the download directory)",
		Default:     "",
	}

	FlagAutoUpdate = FlagDefinition[bool]{
		Name:        "auto-update",
		ShortName:   "a",
		Description: help.Lookup("auto-update").Short,
		Default:     false,
	}

	FlagExtract = FlagDefinition[bool]{
		Name:        "extract",
		ShortName:   "x",
		Description: help.Lookup("extract").Short,
		Default:     false,
	}

	FlagInstall = FlagDefinition[bool]{
		Name:        "install",
		ShortName:   "i",
		Description: help.Lookup("install").Short + " (implies --extract)",
		Default:     false,
	}

	FlagTimeout = FlagDefinition[time.Duration]{
		Name:        "timeout",
		ShortName:   "t",
		Description: "Maximum duration of the command",
		Default:     0,
	}

	FlagOutput = FlagDefinition[string]{
		Name:        "output",
		ShortName:   "o",
		Description: "Output format (yaml|json)",
		Default:     "yaml",
	}

	FlagRequest = FlagDefinition[string]{
		Name:        "request",
		ShortName:   "r",
		Description: "Install request file written by 'comet update --install'",
		Default:     "",
	}

	FlagStopOnError = FlagDefinition[bool]{
		Name:        "stop-on-error",
		ShortName:   "",
		Description: "Stop execution on first error",
		Default:     false,
	}

	FlagRollbackOnError = FlagDefinition[bool]{
		Name:        "rollback-on-error",
		ShortName:   "",
		Description: "Remove the download directory if a later step fails",
		Default:     false,
	}

	FlagContinueOnError = FlagDefinition[bool]{
		Name:        "continue-on-error",
		ShortName:   "",
		Description: "Continue executing steps even if some steps fail",
		Default:     false,
	}
)

// FlagDefinition defines a command-line flag typed by T.
// Supported types are string, bool, uint64 and time.Duration.
type FlagDefinition[T any] struct {
	Name        string
	ShortName   string
	Description string
	Default     T
}

// Value extracts the flag value of cmd, including persistent flags inherited from parent commands.
func (fp *FlagDefinition[T]) Value(cmd *cobra.Command) (T, error) {
	var v T
	if cmd == nil {
		return v, errorx.IllegalArgument.New("command for flag %s is nil", fp.Name)
	}

	flags := cmd.Flags()
	var err error
	switch p := any(&v).(type) {
	case *string:
		*p, err = flags.GetString(fp.Name)
	case *bool:
		*p, err = flags.GetBool(fp.Name)
	case *uint64:
		*p, err = flags.GetUint64(fp.Name)
	case *time.Duration:
		*p, err = flags.GetDuration(fp.Name)
	default:
		return v, errorx.IllegalArgument.New("unsupported type %T for flag %s", v, fp.Name)
	}

	if err != nil {
		return v, errorx.IllegalArgument.Wrap(err, "failed to read flag %s", fp.Name)
	}

	return v, nil
}

// Changed returns true if the user set the flag on the command line.
func (fp *FlagDefinition[T]) Changed(cmd *cobra.Command) bool {
	f := cmd.Flags().Lookup(fp.Name)
	return f != nil && f.Changed
}

// SetVar registers the flag on cmd and exits on error.
func (fp *FlagDefinition[T]) SetVar(cmd *cobra.Command, p *T, required bool) {
	if err := fp.register(cmd, cmd.Flags(), p); err != nil {
		doctor.CheckErr(context.Background(), err)
	}

	if required {
		if err := cmd.MarkFlagRequired(fp.Name); err != nil {
			doctor.CheckErr(context.Background(), errorx.InternalError.Wrap(err, "failed to mark flag %s as required", fp.Name))
		}
	}
}

// SetVarP registers the flag as persistent on cmd and exits on error.
func (fp *FlagDefinition[T]) SetVarP(cmd *cobra.Command, p *T, required bool) {
	if err := fp.register(cmd, cmd.PersistentFlags(), p); err != nil {
		doctor.CheckErr(context.Background(), err)
	}

	if required {
		if err := cmd.MarkPersistentFlagRequired(fp.Name); err != nil {
			doctor.CheckErr(context.Background(), errorx.InternalError.Wrap(err, "failed to mark persistent flag %s as required", fp.Name))
		}
	}
}

func (fp *FlagDefinition[T]) register(cmd *cobra.Command, flags *pflag.FlagSet, p *T) error {
	if p == nil {
		return errorx.IllegalArgument.New("pointer for flag %s is nil", fp.Name)
	}
	if cmd == nil {
		return errorx.IllegalArgument.New("command for flag %s is nil", fp.Name)
	}

	switch ptr := any(p).(type) {
	case *string:
		flags.StringVarP(ptr, fp.Name, fp.ShortName, any(fp.Default).(string), fp.Description)
	case *bool:
		flags.BoolVarP(ptr, fp.Name, fp.ShortName, any(fp.Default).(bool), fp.Description)
	case *uint64:
		flags.Uint64VarP(ptr, fp.Name, fp.ShortName, any(fp.Default).(uint64), fp.Description)
	case *time.Duration:
		flags.DurationVarP(ptr, fp.Name, fp.ShortName, any(fp.Default).(time.Duration), fp.Description)
	default:
		return errorx.IllegalArgument.New("unsupported type %T for flag %s", fp.Default, fp.Name)
	}

	return nil
}

// GetExecutionMode determines the execution mode based on the provided flags.
// Only one of the flags may be set; StopOnError is the default.
func GetExecutionMode(continueOnErr bool, stopOnErr bool, rollbackOnErr bool) (automa.TypeMode, error) {
	count := 0
	for _, set := range []bool{continueOnErr, stopOnErr, rollbackOnErr} {
		if set {
			count++
		}
	}

	if count > 1 {
		return automa.StopOnError, errorx.IllegalArgument.New("only one of execution mode can be set; "+
			"found continue-on-error: %t, stop-on-error: %t, rollback-on-error: %t", continueOnErr, stopOnErr, rollbackOnErr)
	}

	switch {
	case continueOnErr:
		return automa.ContinueOnError, nil
	case rollbackOnErr:
		return automa.RollbackOnError, nil
	default:
		return automa.StopOnError, nil
	}
}
