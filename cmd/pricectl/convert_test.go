package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "to cents", args: []string{"convert", "--to-cents", "10.50", "$1,200", "0.1"}, want: "1050 120000 10\n"},
		{name: "flags pass through to cents", args: []string{"convert", "--to-cents", "true", "1"}, want: "true 100\n"},
		{name: "to decimal", args: []string{"convert", "--to-decimal", "1050", "5", "false"}, want: "10.50 0.05 false\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestConvertErrors(t *testing.T) {
	_, err := runCLI(t, "convert", "10")
	assert.Error(t, err, "a direction is required")

	_, err = runCLI(t, "convert", "--to-cents", "--to-decimal", "10")
	assert.Error(t, err)

	_, err = runCLI(t, "convert", "--to-decimal", "10.5")
	assert.ErrorContains(t, err, "whole number of cents")

	_, err = runCLI(t, "convert", "--to-cents", "ten")
	assert.ErrorContains(t, err, "not an amount")
}
