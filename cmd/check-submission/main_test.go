package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{name: "Empty", value: "", expected: []string{}},
		{name: "Trims and drops blanks", value: " #A, ,#B ", expected: []string{"#A", "#B"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitList(tt.value))
		})
	}
}

func TestURLList(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected []string
	}{
		{name: "Flag not given", value: "", expected: nil},
		{name: "Blank flag", value: "  ", expected: nil},
		{name: "Single URL", value: "base.org/batches", expected: []string{"base.org/batches"}},
		{name: "Several URLs", value: "base.org/batches, docs.base.org", expected: []string{"base.org/batches", "docs.base.org"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, urlList(tt.value))
		})
	}
}
