// Package paths initializes vidpick's filepaths, directories, etc.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"vidpick/internal/domain/consts"
)

// File and directory path strings.
var (
	HomeVidpickDir string
	StateFilePath  string
	DBFilePath     string
	LogFilePath    string
	ThumbsDir      string
)

// InitProgFilesDirs initializes necessary program directories and filepaths.
//
// A ".portable" marker next to the executable switches every path to live
// beside the binary instead of under the user's home directory.
func InitProgFilesDirs() error {
	baseDir, err := resolveBaseDir()
	if err != nil {
		return err
	}

	// Program dir (~/.vidpick or <exe dir>/.vidpick)
	HomeVidpickDir = filepath.Join(baseDir, consts.AppDirName)
	if _, err := os.Stat(HomeVidpickDir); os.IsNotExist(err) {
		if err := os.MkdirAll(HomeVidpickDir, consts.PermsHomeProgDir); err != nil {
			return fmt.Errorf("failed to make directories: %w", err)
		}
	}

	// Main files
	StateFilePath = filepath.Join(HomeVidpickDir, consts.StateFilename)
	DBFilePath = filepath.Join(HomeVidpickDir, consts.CacheDBFilename)
	LogFilePath = filepath.Join(HomeVidpickDir, consts.LogFilename)

	// Thumbnail directory
	ThumbsDir = filepath.Join(HomeVidpickDir, consts.ThumbsDirName)
	if _, err := os.Stat(ThumbsDir); os.IsNotExist(err) {
		if err := os.MkdirAll(ThumbsDir, consts.PermsThumbsDir); err != nil {
			return fmt.Errorf("failed to make thumbnail directory: %w", err)
		}
	}
	return nil
}

// resolveBaseDir returns the executable's directory when running in
// portable mode, otherwise the user's home directory.
func resolveBaseDir() (string, error) {
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		if _, err := os.Stat(filepath.Join(exeDir, consts.PortableMarker)); err == nil {
			return exeDir, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("failed to get home directory")
	}
	return home, nil
}
