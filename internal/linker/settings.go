package linker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/RyanLiu6/setup/internal/manifest"
	"github.com/RyanLiu6/setup/internal/platform"
)

// ensureSettings creates the settings file inside the tool directory from its
// template when it does not exist yet. In interactive mode the user is asked
// first, and declining returns ErrSettingsDeclined.
func (l *Linker) ensureSettings(toolDir string, r manifest.SettingsTemplateRule, logger *log.Logger) error {
	templatePath := filepath.Join(toolDir, r.Template)
	targetPath := filepath.Join(toolDir, r.Target)

	if platform.Exists(targetPath) {
		logger.Debug("settings file already exists", "file", r.Target)
		return nil
	}

	if _, err := os.Stat(templatePath); err != nil {
		return fmt.Errorf("template %s not found at %s", r.Template, templatePath)
	}

	if l.interactive {
		ok, err := l.confirm(fmt.Sprintf("No %s found. Create it from %s?", r.Target, r.Template))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSettingsDeclined, err)
		}
		if !ok {
			return fmt.Errorf("%w: create %s manually and re-run setup", ErrSettingsDeclined, targetPath)
		}
	} else {
		logger.Info("non-interactive, creating settings from template", "file", r.Target)
	}

	if err := platform.CopyFile(templatePath, targetPath); err != nil {
		return err
	}
	logger.Info("created settings file", "file", r.Target, "template", r.Template)
	logger.Info("edit it to customise your settings", "path", targetPath)
	return nil
}
