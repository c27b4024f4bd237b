//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the hbnb project using Mage.
//
// Usage:
//
//	mage build      Compile the hbnb binary to bin/
//	mage test:all   Run every test
//	mage test:unit  Run tests with the race detector
//	mage test:cover Write a coverage profile to bin/
//	mage lint       Run go vet and golangci-lint
//	mage clean      Remove build artifacts
//	mage install    Install hbnb to GOPATH/bin
//	mage stats      Print Go LOC and documentation word counts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "hbnb"
	binaryDir  = "bin"
	cmdDir     = "./cmd/hbnb"
	versionVar = "github.com/mesh-intelligence/hbnb/internal/cli.Version"
)

// ldflags stamps HBNB_VERSION into the binary when it is set.
func ldflags() string {
	if v := os.Getenv("HBNB_VERSION"); v != "" {
		return "-X " + versionVar + "=" + v
	}
	return ""
}

// Build compiles the hbnb binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags(), "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
