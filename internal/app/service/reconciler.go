package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/internal/metrics"
)

// GroupReconciler repairs group entries whose task no longer exists. Empty
// groups are reported and kept.
type GroupReconciler struct {
	taskRepository  ports.TaskRepository
	groupRepository ports.GroupRepository
}

func NewGroupReconciler(taskRepository ports.TaskRepository, groupRepository ports.GroupRepository) *GroupReconciler {
	return &GroupReconciler{taskRepository: taskRepository, groupRepository: groupRepository}
}

func (r *GroupReconciler) Reconcile(ctx context.Context, dryRun bool) (domain.ReconcileReport, error) {
	report := domain.ReconcileReport{DryRun: dryRun}

	groups, err := r.groupRepository.List(ctx)
	if err != nil {
		return report, err
	}

	for _, group := range groups {
		report.GroupsChecked++
		if len(group.Users) == 0 {
			report.EmptyGroups = append(report.EmptyGroups, group.ID)
			continue
		}

		for _, entry := range group.Users {
			report.EntriesChecked++
			ref, err := r.verify(ctx, group.ID, entry)
			if err != nil {
				return report, err
			}
			if ref.State != domain.ReferenceDangling {
				continue
			}
			current, err := r.stillReferenced(ctx, group.ID, entry)
			if err != nil {
				return report, err
			}
			if !current {
				continue
			}

			report.Dangling = append(report.Dangling, ref)
			metrics.ReconciledEntries.WithLabelValues("reported").Inc()
			if dryRun {
				continue
			}

			err = r.groupRepository.RemoveUser(ctx, group.ID, entry.UserID)
			if err != nil && !errors.Is(err, domain.ErrGroupEntryNotFound) {
				return report, err
			}
			report.Repaired++
			metrics.ReconciledEntries.WithLabelValues("removed").Inc()
			zap.L().Info("removed dangling group entry",
				zap.String("group_id", group.ID),
				zap.String("task_id", entry.TaskID),
				zap.String("user_id", entry.UserID),
			)
		}
	}

	return report, nil
}

func (r *GroupReconciler) verify(ctx context.Context, groupID string, entry domain.GroupEntry) (domain.EntryReference, error) {
	ref := domain.EntryReference{GroupID: groupID, Entry: entry, State: domain.ReferenceUnverified}
	_, err := r.taskRepository.Get(ctx, entry.TaskID)
	switch {
	case err == nil:
		ref.State = domain.ReferenceValid
	case errors.Is(err, domain.ErrTaskNotFound):
		ref.State = domain.ReferenceDangling
	default:
		return ref, err
	}
	return ref, nil
}

// stillReferenced re-reads the group and reports whether entry is still the
// user's entry. An entry replaced since the listing is left alone.
func (r *GroupReconciler) stillReferenced(ctx context.Context, groupID string, entry domain.GroupEntry) (bool, error) {
	group, err := r.groupRepository.Get(ctx, groupID)
	if errors.Is(err, domain.ErrGroupNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	latest, ok := group.EntryForUser(entry.UserID)
	if !ok || latest.TaskID != entry.TaskID {
		zap.L().Info("skipped group entry replaced since listing",
			zap.String("group_id", groupID),
			zap.String("user_id", entry.UserID),
			zap.String("stale_task_id", entry.TaskID),
		)
		return false, nil
	}
	return true, nil
}

// Run reconciles every interval until ctx is done.
func (r *GroupReconciler) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := r.Reconcile(ctx, false)
			if err != nil {
				zap.L().Error("group reconciliation failed", zap.Error(err))
				continue
			}
			zap.L().Info("group reconciliation finished",
				zap.Int("groups", report.GroupsChecked),
				zap.Int("entries", report.EntriesChecked),
				zap.Int("dangling", len(report.Dangling)),
				zap.Int("repaired", report.Repaired),
				zap.Int("empty_groups", len(report.EmptyGroups)),
			)
		}
	}
}

var _ ports.Reconciler = (*GroupReconciler)(nil)
