package scheduler

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivanlukomskiy/chrono-capture/internal/infra/logger"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const defaultMaxAge = 24 * time.Hour

// Janitor periodically sweeps the scratch directory for images the
// delivery path left behind (e.g. after a crash between capture and
// cleanup). Delivered images are ephemeral and never need to survive
// past the delivery attempt.
type Janitor struct {
	cronEngine *cron.Cron
	dir        string
	spec       string
	maxAge     time.Duration
	log        *logrus.Entry
	now        func() time.Time
}

func NewJanitor(dir, spec string) *Janitor {
	return &Janitor{
		cronEngine: cron.New(cron.WithLocation(time.Local)),
		dir:        dir,
		spec:       spec,
		maxAge:     defaultMaxAge,
		log:        logger.Log.WithField("component", "janitor"),
		now:        time.Now,
	}
}

func (j *Janitor) Start() error {
	_, err := j.cronEngine.AddFunc(j.spec, func() {
		removed, err := j.Sweep()
		if err != nil {
			j.log.Errorf("scratch sweep failed: %v", err)
			return
		}
		if removed > 0 {
			j.log.Infof("scratch sweep removed %d stale image(s)", removed)
		}
	})
	if err != nil {
		return err
	}
	j.cronEngine.Start()
	j.log.Infof("janitor started with spec %q for %s", j.spec, j.dir)
	return nil
}

// Sweep removes .jpg files in the scratch dir older than the max age
// and returns how many were deleted.
func (j *Janitor) Sweep() (int, error) {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := j.now().Add(-j.maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jpg") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(j.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			j.log.Warnf("could not remove stale image %s: %v", path, err)
			continue
		}
		removed++
	}
	return removed, nil
}

func (j *Janitor) Stop() {
	ctx := j.cronEngine.Stop()
	<-ctx.Done()
	j.log.Info("janitor stopped")
}
