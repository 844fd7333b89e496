package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()

	assert.NotNil(t, cmd)
	assert.Equal(t, "taskpool", cmd.Use)

	names := make(map[string]bool)
	for _, c := range cmd.Commands() {
		names[c.Use] = true
	}
	assert.True(t, names["run"], "should register the run command")
	assert.True(t, names["version"], "should register the version command")

	configFlag := cmd.PersistentFlags().Lookup("config")
	assert.NotNil(t, configFlag)
}

func TestNewRunCmd_HasJobsFlag(t *testing.T) {
	cmd := newRunCmd()

	jobsFlag := cmd.Flags().Lookup("jobs")
	assert.NotNil(t, jobsFlag)
	assert.Equal(t, "j", jobsFlag.Shorthand)
	assert.NotNil(t, cmd.RunE)
}
