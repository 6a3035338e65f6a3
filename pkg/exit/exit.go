// SPDX-License-Identifier: Apache-2.0

package exit

import (
	"fmt"
	"os"
)

type Code int

func (ec Code) String() string {
	return fmt.Sprintf("%d", ec)
}

func (ec Code) Int() int {
	return int(ec)
}

func (ec Code) TerminateProcess() {
	os.Exit(int(ec))
}

func (ec Code) Is(other int) bool {
	return int(ec) == other
}

const MinValidExitCode Code = 0
const MaxValidExitCode Code = 255

// POSIX standard exit code definitions.

const NormalTermination Code = 0
const GeneralError Code = 1
const UsageError Code = 64
const MissingInputError Code = 66
const InternalError Code = 70
const TemporaryFailure Code = 75

// ForDiagnosis maps a diagnosed error code to the process exit code.
//
//   - 10400 (bad settings or arguments) exits with UsageError
//   - 10404 (missing file or record) exits with MissingInputError
//   - 10409 (busy session or invalid state) exits with TemporaryFailure
//   - 10500 exits with InternalError
func ForDiagnosis(code int) Code {
	switch code {
	case 0:
		return NormalTermination
	case 10400:
		return UsageError
	case 10404:
		return MissingInputError
	case 10409:
		return TemporaryFailure
	case 10500:
		return InternalError
	default:
		return GeneralError
	}
}
