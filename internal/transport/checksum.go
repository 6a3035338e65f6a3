// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"crypto/md5"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

const (
	AlgorithmMD5    = "md5"
	AlgorithmSHA256 = "sha256"
	AlgorithmSHA512 = "sha512"
)

// VerifyChecksum verifies the checksum of a file using the specified algorithm
func VerifyChecksum(filePath string, algorithm string, expectedValue string) error {
	switch strings.ToLower(algorithm) {
	case AlgorithmMD5:
		return checksum(filePath, algorithm, expectedValue, md5.New())
	case AlgorithmSHA256:
		return checksum(filePath, algorithm, expectedValue, sha256.New())
	case AlgorithmSHA512:
		return checksum(filePath, algorithm, expectedValue, sha512.New())
	default:
		return NewChecksumError(filePath, algorithm, expectedValue, "")
	}
}

// checksum verifies the hash of a file
// hashFunction is the hash function to use, e.g. md5.New(), sha256.New(), sha512.New()
func checksum(filePath string, algorithm string, expectedHash string, hashFunction hash.Hash) error {
	file, err := os.Open(filePath)
	if err != nil {
		return NewFileNotFoundError(filePath)
	}
	defer func() { _ = file.Close() }()

	if _, err := io.Copy(hashFunction, file); err != nil {
		return NewChecksumError(filePath, algorithm, expectedHash, "")
	}

	calculatedHash := fmt.Sprintf("%x", hashFunction.Sum(nil))
	if !strings.EqualFold(calculatedHash, expectedHash) {
		return NewChecksumError(filePath, algorithm, expectedHash, calculatedHash)
	}

	return nil
}
