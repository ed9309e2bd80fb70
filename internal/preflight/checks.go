// Package preflight evaluates whether the environment can support a batch
// run: the catalog file, the asset tree, and the transcription binary.
// Checks report rather than fail; callers decide the consequence.
package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"

	"refscribe/internal/config"
)

// Result describes one environment check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckCatalog verifies the catalog file exists and is readable and writable.
func CheckCatalog(path string) Result {
	const name = "Catalog"
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckAssetsDir verifies the asset base directory exists and is traversable.
func CheckAssetsDir(path string) Result {
	const name = "Assets directory"
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read ok)", path)}
}

// CheckWhisperBinary verifies the transcription command is on PATH.
func CheckWhisperBinary(binary string) Result {
	const name = "Whisper binary"
	trimmed := strings.TrimSpace(binary)
	if trimmed == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	resolved, err := exec.LookPath(trimmed)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not found on PATH)", trimmed)}
	}
	return Result{Name: name, Passed: true, Detail: resolved}
}

// CheckAll runs every environment check for the given configuration.
func CheckAll(cfg *config.Config) []Result {
	return []Result{
		CheckCatalog(cfg.Paths.CatalogPath),
		CheckAssetsDir(cfg.Paths.AssetsDir),
		CheckWhisperBinary(cfg.Whisper.Binary),
	}
}
