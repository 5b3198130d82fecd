package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	domaincapture "github.com/ivanlukomskiy/chrono-capture/internal/domain/capture"
	"github.com/ivanlukomskiy/chrono-capture/internal/infra/logger"

	"github.com/sirupsen/logrus"
)

// CommandProvider shells out to an external grabber (fswebcam, ffmpeg,
// libcamera-still, ...) to produce a JPEG in the scratch directory.
// The {file} placeholder in the command line is replaced with the
// target path.
type CommandProvider struct {
	command    string
	scratchDir string
	log        *logrus.Entry
	now        func() time.Time
}

func NewCommandProvider(command, scratchDir string) *CommandProvider {
	return &CommandProvider{
		command:    command,
		scratchDir: scratchDir,
		log:        logger.Log.WithField("component", "capture"),
		now:        time.Now,
	}
}

// Capture runs the configured command once and hands back the produced
// image. Failures are mapped onto the capture error taxonomy: file
// system permission problems surface as ErrPermissionDenied, everything
// else the device can do wrong as ErrDeviceFailure.
func (p *CommandProvider) Capture(ctx context.Context) (*domaincapture.Attachment, error) {
	if err := os.MkdirAll(p.scratchDir, 0o755); err != nil {
		if errors.Is(err, os.ErrPermission) {
			return nil, fmt.Errorf("%w: scratch dir %s: %v", domaincapture.ErrPermissionDenied, p.scratchDir, err)
		}
		return nil, fmt.Errorf("%w: create scratch dir: %v", domaincapture.ErrDeviceFailure, err)
	}

	att := domaincapture.NewAttachment(p.scratchDir, p.now())
	cmdLine := strings.ReplaceAll(p.command, "{file}", att.Path)

	p.log.Debugf("running capture command: %s", cmdLine)
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", cmdLine)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return nil, fmt.Errorf("%w: %v", domaincapture.ErrPermissionDenied, err)
		}
		return nil, fmt.Errorf("%w: command failed: %v: %s", domaincapture.ErrDeviceFailure, err, strings.TrimSpace(string(output)))
	}

	info, err := os.Stat(att.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: capture command produced no image at %s: %v", domaincapture.ErrDeviceFailure, att.Path, err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: capture command produced an empty image at %s", domaincapture.ErrDeviceFailure, att.Path)
	}

	p.log.Infof("image saved: %s (%d bytes)", att.Path, info.Size())
	return att, nil
}
