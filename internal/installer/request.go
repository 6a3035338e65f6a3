// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"os"

	"github.com/google/renameio/v2"
	"github.com/hashgraph/comet/internal/updater"
	"gopkg.in/yaml.v3"
)

// RequestFileName is the file an install request is written to inside the download directory.
const RequestFileName = "install-request.yaml"

// WriteRequest atomically writes req as yaml to path.
func WriteRequest(path string, req updater.InstallRequest) error {
	data, err := yaml.Marshal(req)
	if err != nil {
		return NewRequestError(err, path)
	}

	if err := renameio.WriteFile(path, data, 0o600); err != nil {
		return NewRequestError(err, path)
	}

	return nil
}

// ReadRequest reads an install request written by WriteRequest.
func ReadRequest(path string) (updater.InstallRequest, error) {
	var req updater.InstallRequest

	data, err := os.ReadFile(path)
	if err != nil {
		return req, NewRequestError(err, path)
	}

	if err := yaml.Unmarshal(data, &req); err != nil {
		return req, NewRequestError(err, path)
	}

	return req, nil
}
