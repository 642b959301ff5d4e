package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	cmtos "github.com/cometbft/cometbft/libs/os"
	"github.com/tessellated-io/txpipe/log"
)

// ReadFile reads a config file from a short path (ex. ~/.txpipe/config.yaml => /home/tessellated/.txpipe/config.yaml)
func ReadFile(configFile string) ([]byte, error) {
	expandedConfigFile, err := ExpandHomeDir(configFile)
	if err != nil {
		return nil, err
	}
	if !cmtos.FileExists(expandedConfigFile) {
		return nil, fmt.Errorf("failed to load config file at: %s", configFile)
	}
	return os.ReadFile(expandedConfigFile)
}

func CreateDirectoryIfNeeded(configurationDirectory string, logger *log.Logger) error {
	expanded, err := ExpandHomeDir(configurationDirectory)
	if err != nil {
		return err
	}

	exists, err := folderExists(expanded)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := os.MkdirAll(expanded, 0o755); err != nil {
		return err
	}
	logger.Info("created configuration directory", "configuration_dir", expanded)

	return nil
}

// SafeWrite writes contents to file, creating parent directories. An existing file is left alone.
func SafeWrite(file string, contents []byte, logger *log.Logger) error {
	expanded, err := ExpandHomeDir(file)
	if err != nil {
		return err
	}
	if cmtos.FileExists(expanded) {
		logger.Warn("skipping overwriting existing file", "file", expanded)
		return nil
	}

	if err := CreateDirectoryIfNeeded(filepath.Dir(expanded), logger); err != nil {
		return err
	}
	if err := cmtos.WriteFile(expanded, contents, 0o600); err != nil {
		return err
	}
	logger.Info("wrote file", "file", expanded)

	return nil
}

func ExpandHomeDir(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	usr, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get user's home directory: %w", err)
	}
	return strings.Replace(path, "~", usr.HomeDir, 1), nil
}

func FileExists(filePath string) (bool, error) {
	expanded, err := ExpandHomeDir(filePath)
	if err != nil {
		return false, err
	}
	return cmtos.FileExists(expanded), nil
}

func folderExists(folderPath string) (bool, error) {
	fileInfo, err := os.Stat(folderPath)
	if err != nil {
		if os.IsNotExist(err) {
			// The folder does not exist
			return false, nil
		}
		// Some other error occurred when trying to access the folder
		return false, err
	}
	// Check if the path is indeed a folder/directory
	return fileInfo.IsDir(), nil
}
