package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
)

func TestRegisterBooleanFlagParsesValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		defaultValue bool
		arguments    []string
		expected     bool
	}{
		{name: "defaults_to_false", defaultValue: false, arguments: []string{}, expected: false},
		{name: "sets_true_without_value", defaultValue: false, arguments: []string{"--no-gitignore"}, expected: true},
		{name: "sets_false_with_equals", defaultValue: true, arguments: []string{"--no-gitignore=false"}, expected: false},
		{name: "sets_false_with_no_literal", defaultValue: true, arguments: []string{"--no-gitignore", "no"}, expected: false},
		{name: "sets_true_with_on_literal", defaultValue: false, arguments: []string{"--no-gitignore", "on"}, expected: true},
		{name: "ignores_non_boolean_trailing_value", defaultValue: false, arguments: []string{"--no-gitignore", "src"}, expected: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			command := &cobra.Command{Use: "boolean-test"}
			flagValue := !testCase.defaultValue
			registerBooleanFlag(command.Flags(), &flagValue, "no-gitignore", testCase.defaultValue, "skip .gitignore")
			if err := command.ParseFlags(normalizeBooleanFlagArguments(command, testCase.arguments)); err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			if flagValue != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, flagValue)
			}
		})
	}
}

func TestRegisterBooleanFlagRejectsUnknownLiteral(t *testing.T) {
	t.Parallel()

	command := &cobra.Command{Use: "boolean-test"}
	var flagValue bool
	registerBooleanFlag(command.Flags(), &flagValue, "summary", false, "print a summary")
	if err := command.ParseFlags([]string{"--summary=maybe"}); err == nil {
		t.Fatalf("expected an error for an unknown boolean literal")
	}
}

func TestNormalizeBooleanFlagArgumentsLeavesOtherArgumentsAlone(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "root"}
	child := &cobra.Command{Use: "list"}
	var summary bool
	registerBooleanFlag(child.Flags(), &summary, "summary", false, "print a summary")
	root.AddCommand(child)

	arguments := []string{"list", "--summary", "yes", "--format", "no", "--", "--summary", "off"}
	expected := []string{"list", "--summary=yes", "--format", "no", "--", "--summary", "off"}
	if diff := cmp.Diff(expected, normalizeBooleanFlagArguments(root, arguments)); diff != "" {
		t.Fatalf("unexpected arguments (-want +got):\n%s", diff)
	}
}
