package command_test

import (
	"testing"

	"github.com/arthur-debert/mflash/pkg/command"
	"github.com/arthur-debert/mflash/pkg/flashing"
	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		step     flashing.Step
		resolved string
		want     []string
	}{
		{
			name:     "flash_partition_with_file",
			step:     flashing.Step{Operation: "flash", Partition: "boot", Filename: "boot.img"},
			resolved: "/fw/boot.img",
			want:     []string{"mfastboot", "flash", "boot", "/fw/boot.img"},
		},
		{
			name: "erase_partition",
			step: flashing.Step{Operation: "erase", Partition: "userdata"},
			want: []string{"mfastboot", "erase", "userdata"},
		},
		{
			name: "getvar_with_var",
			step: flashing.Step{Operation: "getvar", Var: "max-sparse-size"},
			want: []string{"mfastboot", "getvar", "max-sparse-size"},
		},
		{
			name:     "every_field",
			step:     flashing.Step{Operation: "flash", Partition: "system", Filename: "system.img_sparsechunk.0", Var: "extra"},
			resolved: "/fw/system.img_sparsechunk.0",
			want:     []string{"mfastboot", "flash", "system", "/fw/system.img_sparsechunk.0", "extra"},
		},
		{
			name: "operation_only",
			step: flashing.Step{Operation: "reboot"},
			want: []string{"mfastboot", "reboot"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, command.Build(command.DefaultTool, tt.step, tt.resolved))
		})
	}
}

func TestBuildIgnoresDigest(t *testing.T) {
	step := flashing.Step{Operation: "flash", Partition: "boot", Filename: "boot.img", ExpectedDigest: "AB"}
	assert.Equal(t, []string{"fastboot", "flash", "boot", "/fw/boot.img"},
		command.Build("fastboot", step, "/fw/boot.img"))
}

func TestRender(t *testing.T) {
	assert.Equal(t, `"mfastboot" "flash" "boot" "/my fw/boot.img"`,
		command.Render([]string{"mfastboot", "flash", "boot", "/my fw/boot.img"}))
	assert.Equal(t, `"mfastboot" "oem" "say \"hi\""`,
		command.Render([]string{"mfastboot", "oem", `say "hi"`}))
	assert.Equal(t, "", command.Render(nil))
}
