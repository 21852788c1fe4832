package mapper

import (
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

func ToGroupItem(group domain.TaskGroup) dto.GroupItem {
	return dto.GroupItem{
		ID:        group.ID,
		CreatedBy: group.CreatedBy,
		Users:     ToGroupEntryItems(group.Users),
		CreatedAt: group.CreatedAt.Format(TimestampLayout),
		UpdatedAt: group.UpdatedAt.Format(TimestampLayout),
	}
}

func ToGroupItems(groups []domain.TaskGroup) []dto.GroupItem {
	items := make([]dto.GroupItem, 0, len(groups))
	for _, group := range groups {
		items = append(items, ToGroupItem(group))
	}
	return items
}

func ToGroupEntryItem(entry domain.GroupEntry) dto.GroupEntryItem {
	return dto.GroupEntryItem(entry)
}

func ToGroupEntryItems(entries []domain.GroupEntry) []dto.GroupEntryItem {
	items := make([]dto.GroupEntryItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, ToGroupEntryItem(entry))
	}
	return items
}

func FromGroupEntryItem(item dto.GroupEntryItem) domain.GroupEntry {
	return domain.GroupEntry(item)
}

func FromGroupEntryItems(items []dto.GroupEntryItem) []domain.GroupEntry {
	entries := make([]domain.GroupEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, FromGroupEntryItem(item))
	}
	return entries
}

func FromGroupItem(item dto.GroupItem) (domain.TaskGroup, error) {
	group := domain.TaskGroup{
		ID:        item.ID,
		CreatedBy: item.CreatedBy,
		Users:     FromGroupEntryItems(item.Users),
	}

	var err error
	if group.CreatedAt, err = time.Parse(TimestampLayout, item.CreatedAt); err != nil {
		return domain.TaskGroup{}, err
	}
	if group.UpdatedAt, err = time.Parse(TimestampLayout, item.UpdatedAt); err != nil {
		return domain.TaskGroup{}, err
	}
	return group, nil
}

func ToReconcileReportItem(report domain.ReconcileReport) dto.ReconcileReportItem {
	item := dto.ReconcileReportItem{
		DryRun:         report.DryRun,
		GroupsChecked:  report.GroupsChecked,
		EntriesChecked: report.EntriesChecked,
		Dangling:       make([]dto.EntryReferenceItem, 0, len(report.Dangling)),
		Repaired:       report.Repaired,
		EmptyGroups:    append([]string{}, report.EmptyGroups...),
	}
	for _, ref := range report.Dangling {
		item.Dangling = append(item.Dangling, dto.EntryReferenceItem{
			GroupID: ref.GroupID,
			Entry:   ToGroupEntryItem(ref.Entry),
			State:   string(ref.State),
		})
	}
	return item
}

func FromReconcileReportItem(item dto.ReconcileReportItem) domain.ReconcileReport {
	report := domain.ReconcileReport{
		DryRun:         item.DryRun,
		GroupsChecked:  item.GroupsChecked,
		EntriesChecked: item.EntriesChecked,
		Repaired:       item.Repaired,
		EmptyGroups:    append([]string(nil), item.EmptyGroups...),
	}
	for _, ref := range item.Dangling {
		report.Dangling = append(report.Dangling, domain.EntryReference{
			GroupID: ref.GroupID,
			Entry:   FromGroupEntryItem(ref.Entry),
			State:   domain.ReferenceState(ref.State),
		})
	}
	return report
}
