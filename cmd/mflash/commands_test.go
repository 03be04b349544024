package mflash_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/arthur-debert/mflash/cmd/mflash"
	"github.com/arthur-debert/mflash/pkg/errors"
	"github.com/arthur-debert/mflash/pkg/interpreter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MD5 of "hello world"
const helloMD5 = "5EB63BBBE01EEED093CB22BB8F5ACDC3"

const serviceFile = `<?xml version="1.0"?>
<flashing>
  <header>
    <phone_model model="falcon"/>
    <software_version version="falcon-user 5.1"/>
  </header>
  <steps interface="AP">
    <step operation="getvar" var="max-sparse-size"/>
    <step operation="flash" partition="boot" filename="boot.img" MD5="` + helloMD5 + `"/>
    <step operation="reboot"/>
  </steps>
</flashing>
`

const flashFile = `<flashing>
  <steps>
    <step operation="erase" partition="cache"/>
  </steps>
</flashing>
`

// setupFirmware creates a firmware directory with both documents, a step
// file and a fake flashing tool that appends its arguments to a log.
func setupFirmware(t *testing.T) (dir, tool, calls string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool is a POSIX shell script")
	}

	t.Setenv("MFLASH_LOG_FILE", filepath.Join(t.TempDir(), "mflash.log"))
	t.Setenv("NO_COLOR", "1")

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "servicefile.xml"), []byte(serviceFile), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flashfile.xml"), []byte(flashFile), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boot.img"), []byte("hello world"), 0644))

	bin := t.TempDir()
	calls = filepath.Join(bin, "calls")
	tool = filepath.Join(bin, "fakeboot")
	script := "#!/bin/sh\necho \"$*\" >> '" + calls + "'\n"
	require.NoError(t, os.WriteFile(tool, []byte(script), 0755))
	return dir, tool, calls
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd := mflash.NewRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func readCalls(t *testing.T, calls string) []string {
	t.Helper()
	data, err := os.ReadFile(calls)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestRunServiceFile(t *testing.T) {
	dir, tool, calls := setupFirmware(t)

	out, err := execute(t, "--tool", tool, dir)
	require.NoError(t, err)

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"getvar max-sparse-size",
		"flash boot " + filepath.Join(resolved, "boot.img"),
		"reboot",
	}, readCalls(t, calls))

	assert.Contains(t, out, "Running step 1/3: getvar")
	assert.Contains(t, out, `..Shell: "`+tool+`" "reboot"`)
	assert.Contains(t, out, "Success! 3 step(s)")
}

func TestRunFlashDocument(t *testing.T) {
	dir, tool, calls := setupFirmware(t)

	_, err := execute(t, "--flash", "--tool", tool, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"erase cache"}, readCalls(t, calls))
}

func TestRunNamedDocument(t *testing.T) {
	dir, tool, calls := setupFirmware(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.xml"),
		[]byte(`<flashing><steps><step operation="oem" var="fb_mode_clear"/></steps></flashing>`), 0644))

	_, err := execute(t, "-f", "custom.xml", "--tool", tool, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"oem fb_mode_clear"}, readCalls(t, calls))
}

func TestFlashAndNamedDocumentAreExclusive(t *testing.T) {
	dir, tool, _ := setupFirmware(t)

	_, err := execute(t, "--flash", "-f", "custom.xml", "--tool", tool, dir)
	assert.Error(t, err)
}

func TestTestModeDoesNotInvokeTool(t *testing.T) {
	dir, tool, calls := setupFirmware(t)

	out, err := execute(t, "-t", "--tool", tool, dir)
	require.NoError(t, err)
	assert.Empty(t, readCalls(t, calls))
	assert.Contains(t, out, "(dry run)")
	assert.Contains(t, out, "DRY RUN MODE")
}

func TestDigestMismatchAbortsRun(t *testing.T) {
	dir, tool, calls := setupFirmware(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boot.img"), []byte("tampered"), 0644))

	out, err := execute(t, "--tool", tool, dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIntegrityMismatch))

	var stepErr *interpreter.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, 1, stepErr.Index)

	assert.Equal(t, []string{"getvar max-sparse-size"}, readCalls(t, calls))
	assert.Contains(t, out, "Aborted at step 2 of 3")
}

func TestNoMD5SkipsVerification(t *testing.T) {
	dir, tool, calls := setupFirmware(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boot.img"), []byte("tampered"), 0644))

	_, err := execute(t, "--no-md5", "--tool", tool, dir)
	require.NoError(t, err)
	assert.Len(t, readCalls(t, calls), 3)
}

func TestIntegrityDisabledFromEnvironment(t *testing.T) {
	dir, tool, calls := setupFirmware(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boot.img"), []byte("tampered"), 0644))
	t.Setenv("MFLASH_INTEGRITY__ENABLED", "false")

	_, err := execute(t, "--tool", tool, dir)
	require.NoError(t, err)
	assert.Len(t, readCalls(t, calls), 3)
}

func TestToolFromConfigFile(t *testing.T) {
	dir, tool, calls := setupFirmware(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".mflash.toml"), []byte("tool = '"+tool+"'\n"), 0644))

	_, err := execute(t, dir)
	require.NoError(t, err)
	assert.Len(t, readCalls(t, calls), 3)
}

func TestMissingFirmwareDirectory(t *testing.T) {
	_, _, _ = setupFirmware(t)

	_, err := execute(t, filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathNotFound))
}

func TestMissingDocument(t *testing.T) {
	dir, tool, _ := setupFirmware(t)

	_, err := execute(t, "-f", "nope.xml", "--tool", tool, dir)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathNotFound))
}

func TestDebugDumpsDocument(t *testing.T) {
	dir, tool, _ := setupFirmware(t)

	out, err := execute(t, "-d", "-t", "--tool", tool, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Parsed flashing document")
	assert.Contains(t, out, "phone_model: falcon")
}

func TestShowJSON(t *testing.T) {
	dir, _, calls := setupFirmware(t)

	out, err := execute(t, "show", "-o", "json", dir)
	require.NoError(t, err)
	assert.Empty(t, readCalls(t, calls))

	var decoded struct {
		Flashing struct {
			Steps struct {
				Interface string `json:"interface"`
				List      []struct {
					Operation string `json:"operation"`
					MD5       string `json:"md5"`
				} `json:"list"`
			} `json:"steps"`
		} `json:"flashing"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "AP", decoded.Flashing.Steps.Interface)
	require.Len(t, decoded.Flashing.Steps.List, 3)
	assert.Equal(t, helloMD5, decoded.Flashing.Steps.List[1].MD5)
}

func TestShowRejectsUnknownOutput(t *testing.T) {
	dir, _, _ := setupFirmware(t)

	_, err := execute(t, "show", "-o", "xml", dir)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestConfigShowsEffectiveValues(t *testing.T) {
	dir, _, _ := setupFirmware(t)

	out, err := execute(t, "config", "--tool", "/opt/bin/fastboot", "--no-md5", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "/opt/bin/fastboot")
	assert.Contains(t, out, "enabled = false")
}

func TestConfigDefaults(t *testing.T) {
	_, _, _ = setupFirmware(t)

	out, err := execute(t, "config", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, `# tool = "mfastboot"`)
	assert.Contains(t, out, "[integrity]")
}

func TestVersion(t *testing.T) {
	_, _, _ = setupFirmware(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "mflash dev"))
}
