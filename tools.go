// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build tools
// +build tools

// Package main pins test dependencies to go.mod, including those only
// reached from integration-tagged suites.
// See https://go.dev/wiki/Modules#how-can-i-track-tool-dependencies-for-a-module
package main

import (
	// Testing frameworks
	_ "github.com/onsi/ginkgo/v2"
	_ "github.com/onsi/gomega"
	_ "github.com/stretchr/testify/assert"
	_ "github.com/stretchr/testify/mock"
	_ "github.com/stretchr/testify/require"

	// Test doubles and leak checks
	_ "github.com/pashagolub/pgxmock/v4"
	_ "go.uber.org/goleak"

	// Integration environment
	_ "github.com/testcontainers/testcontainers-go/modules/postgres"
)
