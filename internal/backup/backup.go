// Package backup periodically dumps every record collection to JSON files.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"cmsapi/internal/config"
)

const dumpTimeout = 5 * time.Minute

// Runner dumps the configured collections on a cron schedule. Collection
// handles are passed in explicitly; a failed dump is logged and the next run
// proceeds normally.
type Runner struct {
	colls []*mongo.Collection
	cfg   config.BackupConfig
	log   *logrus.Logger
	cron  *cron.Cron
}

func NewRunner(colls []*mongo.Collection, cfg config.BackupConfig, log *logrus.Logger) *Runner {
	return &Runner{colls: colls, cfg: cfg, log: log}
}

// Start registers the schedule and starts the cron loop. It is a no-op when
// backups are disabled.
func (r *Runner) Start() error {
	if !r.cfg.Enabled {
		r.log.Info("collection backup disabled")
		return nil
	}
	r.cron = cron.New()
	if _, err := r.cron.AddFunc(r.cfg.Schedule, r.runOnce); err != nil {
		return fmt.Errorf("backup: invalid schedule %q: %w", r.cfg.Schedule, err)
	}
	r.cron.Start()
	r.log.WithField("schedule", r.cfg.Schedule).Info("collection backup scheduled")
	return nil
}

// Stop halts the cron loop, waiting for a running dump to finish.
func (r *Runner) Stop() {
	if r.cron != nil {
		<-r.cron.Stop().Done()
	}
}

func (r *Runner) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), dumpTimeout)
	defer cancel()

	if err := os.MkdirAll(r.cfg.Dir, 0o755); err != nil {
		r.log.WithError(err).Error("backup: create directory")
		return
	}

	for _, coll := range r.colls {
		if err := r.dump(ctx, coll); err != nil {
			r.log.WithError(err).WithField("collection", coll.Name()).Error("backup: dump failed")
			continue
		}
		r.log.WithField("collection", coll.Name()).Info("backup: dump written")
	}
}

func (r *Runner) dump(ctx context.Context, coll *mongo.Collection) error {
	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return err
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return err
	}

	name := fmt.Sprintf("%s_%s.json", coll.Name(), time.Now().Format("2006-01-02"))
	return os.WriteFile(filepath.Join(r.cfg.Dir, name), data, 0o644)
}
