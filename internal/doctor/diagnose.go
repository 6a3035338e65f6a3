// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/hashgraph/comet/internal/config"
	"github.com/hashgraph/comet/internal/updater"
	"github.com/hashgraph/comet/internal/version"
	"github.com/hashgraph/comet/pkg/exit"
	"github.com/joomcode/errorx"
)

// TraceIdKey is the context key holding the trace id of the current command.
const TraceIdKey = "traceId"

// ErrPropertyResolution attaches a resolution hint to an error. It takes precedence over the
// resolutions derived from the error type.
var ErrPropertyResolution = errorx.RegisterPrintableProperty("resolution")

type ErrorDiagnosis struct {
	Error      error    `yaml:"error" json:"error"`
	Message    string   `yaml:"message" json:"message"`
	Cause      string   `yaml:"cause" json:"cause"`
	ErrorType  string   `yaml:"errorType" json:"errorType"`
	TraceId    string   `yaml:"traceId" json:"traceId"`
	Commit     string   `yaml:"commit" json:"commit"`
	Version    string   `yaml:"version" json:"version"`
	Pid        int      `yaml:"pid" json:"pid"`
	Code       int      `yaml:"code" json:"code"`
	Logfile    string   `yaml:"log" json:"log"`
	Stacktrace string   `yaml:"stacktrace" json:"stacktrace"`
	Resolution []string `yaml:"steps" json:"steps"`
}

func toErrorCode(err error) int {
	switch {
	case errorx.IsOfType(err, errorx.IllegalArgument),
		errorx.IsOfType(err, updater.MissingSourceError),
		errorx.IsOfType(err, updater.MalformedSourceError),
		errorx.IsOfType(err, updater.MissingDownloadPathError):
		return 10400
	case errorx.IsOfType(err, updater.ConcurrentOperationError),
		errorx.IsOfType(err, updater.AlreadyCheckedError),
		errorx.IsOfType(err, updater.InvalidTransitionError):
		return 10409
	default:
		if errorx.HasTrait(err, errorx.NotFound()) {
			return 10404
		}
		return 10500
	}
}

func toErrorMessage(err error) (string, string) {
	e := errorx.Cast(err)
	if e == nil {
		return err.Error(), ""
	}

	if e.Cause() == nil {
		return e.Message(), ""
	}

	return e.Message(), fmt.Sprintf("%s", e.Cause())
}

func findResolution(err error) []string {
	if v, ok := errorx.ExtractProperty(err, ErrPropertyResolution); ok {
		if r, ok := v.(string); ok && r != "" {
			return []string{r}
		}
	}

	switch {
	case errorx.IsOfType(err, updater.ConcurrentOperationError):
		return []string{
			"Wait for the running update to finish and retry.",
			"If no update is running, remove a stale lock file configured as 'update.lockFile'.",
		}
	case errorx.IsOfType(err, updater.MissingSourceError):
		return []string{"Provide the update source with --source or 'update.source' in the configuration file."}
	case errorx.IsOfType(err, updater.MalformedSourceError):
		return []string{"Ensure the source is an absolute URI such as https://host/path/app-1.2.3.tar.gz or file:///path/app-1.2.3.zip."}
	case errorx.IsOfType(err, updater.SourceUnreachableError):
		return []string{"Ensure the source exists and is reachable from this host."}
	case errorx.IsOfType(err, updater.MissingDownloadPathError):
		return []string{"Provide a download directory with --download-dir or 'update.downloadDir'."}
	case errorx.IsOfType(err, updater.AlreadyCheckedError):
		return []string{"Start a new update session; a session checks for updates only once."}
	case errorx.IsOfType(err, updater.DownloadFailedError):
		return []string{"Check network connectivity and the checksum configured as 'update.checksum'.", "Run 'comet cleanup' and retry."}
	case errorx.IsOfType(err, updater.ExtractFailedError):
		return []string{"Ensure the package is a valid .tar.gz or .zip archive.", "Run 'comet cleanup' and retry."}
	case errorx.IsOfType(err, updater.InstallFailedError):
		return []string{"Ensure the executable path is writable by the current user."}
	case errorx.IsOfType(err, errorx.IllegalArgument):
		if arg, ok := errorx.ExtractProperty(err, errorx.PropertyPayload()); ok {
			return []string{fmt.Sprintf("Ensure %q is provided.", arg.(string))}
		}
		return []string{"Ensure all required arguments are provided."}
	case errorx.IsOfType(err, errorx.IllegalFormat):
		return []string{"Ensure provided data is in correct format."}
	case errorx.IsOfType(err, config.NotFoundError):
		if arg, ok := errorx.ExtractProperty(err, errorx.PropertyPayload()); ok {
			return []string{fmt.Sprintf("Ensure configuration file %q exists, is correctly formatted and accessible", arg.(string))}
		}
		return []string{"Ensure configuration file exists and is accessible."}
	default:
		return []string{"Check error message for details or contact support"}
	}
}

// writeStacktrace stores the full error trace under dir and returns the file path.
func writeStacktrace(dir string, ex error) string {
	timestamp := time.Now().Format("20060102-150405")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logx.As().Warn().Err(err).Str("dir", dir).Msg("failed to create diagnostics directory")
		return ""
	}

	file := filepath.Join(dir, "stacktrace-"+timestamp+".txt")
	var content []byte
	if ex != nil {
		content = []byte(fmt.Sprintf("%+v\n", ex))
	} else {
		buf := make([]byte, 1<<16)
		content = buf[:runtime.Stack(buf, true)]
	}

	if err := os.WriteFile(file, content, 0o644); err != nil {
		logx.As().Warn().Err(err).Str("file", file).Msg("failed to write stacktrace")
		return ""
	}

	return file
}

// DiagnosticsDir is where stack traces of failed commands are kept.
func DiagnosticsDir() string {
	return filepath.Join(os.TempDir(), "comet", "diagnostics")
}

// Diagnose attempts to find a resolution and provide a human friendly error response
func Diagnose(ctx context.Context, ex error) *ErrorDiagnosis {
	traceId, _ := ctx.Value(TraceIdKey).(string)

	msg, cause := toErrorMessage(ex)
	return &ErrorDiagnosis{
		Error:      ex,
		ErrorType:  errorx.GetTypeName(ex),
		Message:    msg,
		Cause:      cause,
		TraceId:    traceId,
		Code:       toErrorCode(ex),
		Commit:     version.Commit(),
		Version:    version.Number(),
		Pid:        os.Getpid(),
		Logfile:    config.Get().Log.Filename,
		Stacktrace: writeStacktrace(DiagnosticsDir(), ex),
		Resolution: findResolution(ex),
	}
}

// CheckErr prints diagnosis and exits with the code matching the diagnosed error
// Optional instructions can be provided to give additional context to the user
func CheckErr(ctx context.Context, err error, instructions ...string) {
	logx.As().Error().Err(err).Msg("error occurred")
	resp := Diagnose(ctx, err)

	fmt.Printf("\n%s%s************************************** Error Diagnostics ******************************************%s\n", Bold, Red, Reset)
	fmt.Printf("%s*%s\t%sError:%s %s\n", Red, Reset, Bold+White, Reset, resp.Message)
	if resp.Cause != "" {
		fmt.Printf("%s*%s\t%sCause:%s %s\n", Red, Reset, Bold+White, Reset, resp.Cause)
	}
	fmt.Printf("%s*%s\t%sError Type:%s %s\n", Red, Reset, Bold+White, Reset, resp.ErrorType)
	fmt.Printf("%s*%s\t%sError Code:%s %d\n", Red, Reset, Bold+White, Reset, resp.Code)
	fmt.Printf("%s*%s\t%sCommit:%s %s\n", Red, Reset, Gray, Reset, resp.Commit)
	fmt.Printf("%s*%s\t%sPid:%s %d\n", Red, Reset, Gray, Reset, resp.Pid)
	fmt.Printf("%s*%s\t%sTraceId:%s %s\n", Red, Reset, Gray, Reset, resp.TraceId)
	fmt.Printf("%s*%s\t%sVersion:%s %s\n", Red, Reset, Gray, Reset, resp.Version)
	if resp.Logfile != "" {
		fmt.Printf("%s*%s\t%sLogfile:%s %s\n", Red, Reset, Cyan, Reset, resp.Logfile)
	}
	if resp.Stacktrace != "" {
		fmt.Printf("%s*%s\t%sStacktrace:%s %s\n", Red, Reset, Cyan, Reset, resp.Stacktrace)
	}
	fmt.Printf("%s%s***************************************************************************************************%s\n", Bold, Red, Reset)
	fmt.Printf("\n%s%s****************************************** Resolution *********************************************%s\n", Bold, Yellow, Reset)

	if len(instructions) > 0 && instructions[0] != "" {
		for _, line := range strings.Split(instructions[0], "\n") {
			if line == "" {
				fmt.Printf("%s*%s\n", Yellow, Reset)
			} else {
				fmt.Printf("%s*%s\t%s\n", Yellow, Reset, Bold+White+line+Reset)
			}
		}
		if len(resp.Resolution) > 0 {
			fmt.Printf("%s*%s\n", Yellow, Reset)
		}
	}

	for _, r := range resp.Resolution {
		fmt.Printf("%s*%s\t%s\n", Yellow, Reset, White+r+Reset)
	}

	fmt.Printf("%s%s***************************************************************************************************%s\n", Bold, Yellow, Reset)

	exit.ForDiagnosis(resp.Code).TerminateProcess()
}

// CheckReportErr diagnoses the error of a failed workflow or step report and exits.
// Instructions recorded in the report metadata are printed before the resolution steps.
func CheckReportErr(ctx context.Context, report *automa.Report) {
	if report == nil || report.Error == nil {
		return
	}

	CheckErr(ctx, report.Error, GetInstructionsFromReport(report))
}

// GetInstructionsFromReport recursively searches for instructions in report metadata.
// Returns the first non-empty instructions found in the report tree, or an empty string if none exist.
func GetInstructionsFromReport(report *automa.Report) string {
	if report == nil {
		return ""
	}

	if instructions, ok := report.Metadata["instructions"]; ok {
		return instructions
	}

	for _, stepReport := range report.StepReports {
		if instructions := GetInstructionsFromReport(stepReport); instructions != "" {
			return instructions
		}
	}

	return ""
}
