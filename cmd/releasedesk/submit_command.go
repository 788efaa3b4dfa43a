package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"releasedesk/internal/draft"
	"releasedesk/internal/manifest"
	"releasedesk/internal/notifications"
	"releasedesk/internal/services"
	"releasedesk/internal/services/assets"
	"releasedesk/internal/services/distribution"
	"releasedesk/internal/session"
	"releasedesk/internal/steps"
	"releasedesk/internal/uploads"
)

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <manifest.toml>",
		Short: "Author and submit a release from a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}

			lock := flock.New(filepath.Join(cfg.Paths.StateDir, "authoring.lock"))
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire authoring lock: %w", err)
			}
			if !ok {
				return errors.New("another authoring run is already in progress")
			}
			defer func() { _ = lock.Unlock() }()

			notifier := notifications.NewService(cfg)
			coord := steps.NewCoordinator(distribution.NewClient(cfg), notifier, logger)
			pipeline := uploads.NewPipeline(assets.NewClient(cfg), cfg.Uploads, logger)

			sess, err := session.New(m.Category, coord, pipeline, notifier, logger)
			if err != nil {
				return err
			}

			runCtx := cmd.Context()
			out := cmd.OutOrStdout()

			if err := sess.Start(runCtx); err != nil {
				return fmt.Errorf("create draft: %w", err)
			}
			fmt.Fprintf(out, "Draft created: %s\n", sess.ReleaseID())

			slots, err := m.Apply(sess)
			if err != nil {
				return fmt.Errorf("apply manifest: %w", err)
			}

			slotKeys := make([]string, 0, len(slots))
			for slot := range slots {
				slotKeys = append(slotKeys, slot)
			}
			sort.Strings(slotKeys)
			for _, slot := range slotKeys {
				file := slots[slot]
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read %s: %w", file, err)
				}
				if _, err := sess.Upload(runCtx, slot, filepath.Base(file), data); err != nil {
					return fmt.Errorf("upload %s: %w", file, err)
				}
				fmt.Fprintf(out, "Uploaded %s (%s)\n", filepath.Base(file), slot)
			}

			for step := 0; step < draft.StepCount; step++ {
				if err := sess.SaveStep(runCtx, step); err != nil {
					return describeStepError(step, err)
				}
				fmt.Fprintf(out, "Saved %s\n", draft.StepName(step))
			}

			if err := sess.Submit(runCtx); err != nil {
				return fmt.Errorf("submit release: %w", err)
			}
			fmt.Fprintf(out, "Release %s submitted\n", sess.ReleaseID())
			return nil
		},
	}
}

// describeStepError surfaces field-level rejections one per line.
func describeStepError(step int, err error) error {
	details, ok := services.Details(err)
	if !ok {
		return fmt.Errorf("save %s: %w", draft.StepName(step), err)
	}

	fields := make([]string, 0, len(details.Fields))
	for field := range details.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msg := fmt.Sprintf("save %s: payload rejected", draft.StepName(step))
	for _, field := range fields {
		if field == "" {
			msg += fmt.Sprintf("\n  %s", details.Fields[field])
			continue
		}
		msg += fmt.Sprintf("\n  %s: %s", field, details.Fields[field])
	}
	return errors.New(msg)
}
