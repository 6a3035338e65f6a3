// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
	"github.com/joomcode/errorx"
)

const resultFile = "result.json"

// Result is the outcome of an applied install request.
type Result struct {
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	ExecutedAt time.Time `json:"executedAt"`
}

// ResultHandler reads and writes the result file of a request directory.
type ResultHandler struct {
	resultFile string
}

func NewResultHandler(dir string) *ResultHandler {
	return &ResultHandler{resultFile: filepath.Join(dir, resultFile)}
}

func (rh *ResultHandler) Path() string {
	return rh.resultFile
}

func (rh *ResultHandler) Write(result Result) error {
	if err := os.MkdirAll(filepath.Dir(rh.resultFile), 0o755); err != nil {
		return errorx.ExternalError.Wrap(err, "failed to create result directory")
	}

	data, err := json.Marshal(result)
	if err != nil {
		return errorx.IllegalFormat.Wrap(err, "failed to encode install result")
	}

	if err := renameio.WriteFile(rh.resultFile, data, 0o644); err != nil {
		return errorx.ExternalError.Wrap(err, "failed to write install result %q", rh.resultFile)
	}

	return nil
}

func (rh *ResultHandler) Read() (Result, error) {
	var result Result

	data, err := os.ReadFile(rh.resultFile)
	if err != nil {
		if os.IsNotExist(err) {
			return result, errorx.DataUnavailable.Wrap(err, "no install result in %q", filepath.Dir(rh.resultFile))
		}
		return result, errorx.ExternalError.Wrap(err, "failed to read install result %q", rh.resultFile)
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return result, errorx.IllegalFormat.Wrap(err, "invalid install result %q", rh.resultFile)
	}

	return result, nil
}

// Cleanup removes the result file if it exists
func (rh *ResultHandler) Cleanup() error {
	if err := os.Remove(rh.resultFile); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// ReadResult reads the result left in dir by Apply.
func ReadResult(dir string) (Result, error) {
	return NewResultHandler(dir).Read()
}
