package flashing

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/mflash/pkg/errors"
)

// Document is the parsed representation of a flashing document.
type Document struct {
	Header *Header  `json:"header,omitempty" yaml:"header,omitempty"`
	Steps  StepList `json:"steps" yaml:"steps"`
}

// Header carries descriptive metadata. The interpreter never reads it.
type Header struct {
	PhoneModel      string      `json:"phone_model,omitempty" yaml:"phone_model,omitempty"`
	SoftwareVersion string      `json:"software_version,omitempty" yaml:"software_version,omitempty"`
	Sparsing        *Sparsing   `json:"sparsing,omitempty" yaml:"sparsing,omitempty"`
	Interfaces      []Interface `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
}

// Sparsing describes the sparse image configuration of the firmware.
type Sparsing struct {
	Enabled       bool  `json:"enabled" yaml:"enabled"`
	MaxSparseSize int64 `json:"max_sparse_size" yaml:"max_sparse_size"`
}

// Interface names a logical transport.
type Interface struct {
	Name string `json:"name" yaml:"name"`
}

// StepList is the ordered list of steps. Order defines execution order.
type StepList struct {
	Interface string `json:"interface,omitempty" yaml:"interface,omitempty"`
	Steps     []Step `json:"list" yaml:"list"`
}

// Step is one flashing operation. Only Operation is required; empty
// optional fields are treated as absent.
type Step struct {
	Operation      string `json:"operation" yaml:"operation"`
	Partition      string `json:"partition,omitempty" yaml:"partition,omitempty"`
	Filename       string `json:"filename,omitempty" yaml:"filename,omitempty"`
	ExpectedDigest string `json:"md5,omitempty" yaml:"md5,omitempty"`
	Var            string `json:"var,omitempty" yaml:"var,omitempty"`
}

// Len returns the number of steps in the document.
func (d *Document) Len() int {
	return len(d.Steps.Steps)
}

// Validate rejects documents that cannot be executed. It runs before any
// step does, so a bad step late in the list never leaves a half-flashed
// device behind.
func (d *Document) Validate() error {
	for i, step := range d.Steps.Steps {
		if strings.TrimSpace(step.Operation) == "" {
			return errors.Newf(errors.ErrMalformedDocument, "step %d has no operation", i+1).
				WithDetail("step", i+1)
		}
	}
	return nil
}

// HasFile reports whether the step references a firmware file.
func (s Step) HasFile() bool {
	return s.Filename != ""
}

// WantsVerification reports whether the step carries a digest for its file.
// A digest without a file is ignored.
func (s Step) WantsVerification() bool {
	return s.Filename != "" && s.ExpectedDigest != ""
}

// Describe renders the step on one line for logs and diagnostics.
func (s Step) Describe() string {
	parts := []string{s.Operation}
	if s.Partition != "" {
		parts = append(parts, s.Partition)
	}
	if s.Filename != "" {
		parts = append(parts, s.Filename)
	}
	if s.Var != "" {
		parts = append(parts, s.Var)
	}
	desc := strings.Join(parts, " ")
	if s.ExpectedDigest != "" {
		desc = fmt.Sprintf("%s (md5 %s)", desc, s.ExpectedDigest)
	}
	return desc
}
